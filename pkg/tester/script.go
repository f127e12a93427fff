package tester

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/ohler55/ojg/jp"
)

// EvaluateScript runs an assertion script against a test result and returns
// whether the assertion passed. Scripts are boolean expressions with access
// to:
//
//	status        HTTP status code (0 on transport failure)
//	duration      request time in milliseconds
//	body          decoded response body
//	jsonpath(p)   first value matching JSONPath p in the body, or nil
//
// Example: `status == 200 && jsonpath("$.drivers[0].id") != nil`.
func EvaluateScript(script string, res Result) (bool, error) {
	env := map[string]interface{}{
		"status":   res.Status,
		"duration": res.Duration,
		"body":     res.Data,
		"jsonpath": func(path string) interface{} {
			x, err := jp.ParseString(path)
			if err != nil {
				return nil
			}
			values := x.Get(res.Data)
			if len(values) == 0 {
				return nil
			}
			return values[0]
		},
	}

	program, err := expr.Compile(script, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("compile assertion script: %w", err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("run assertion script: %w", err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("assertion script returned %T, want bool", out)
	}
	return ok, nil
}

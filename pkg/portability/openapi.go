package portability

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// parseOpenAPI parses an OpenAPI 3.x document into endpoint definitions.
// Paths are emitted in sorted order so repeated imports of the same document
// produce endpoints in the same order.
func parseOpenAPI(data []byte) ([]*endpoint.Definition, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &ImportError{Format: FormatOpenAPI, Message: "failed to parse OpenAPI document", Cause: err}
	}
	if doc.Paths == nil {
		return nil, nil
	}

	pathItems := doc.Paths.Map()
	paths := make([]string, 0, len(pathItems))
	for p := range pathItems {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var defs []*endpoint.Definition
	for _, p := range paths {
		item := pathItems[p]
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, m := range methods {
			op := ops[m]
			method := endpoint.Method(strings.ToUpper(m))
			if !method.IsValid() {
				continue
			}
			defs = append(defs, &endpoint.Definition{
				Method:      method,
				Path:        convertOpenAPIPath(p),
				Description: operationDescription(op),
				Status:      endpoint.StatusTesting,
				Owner:       endpoint.OwnerUser,
				Auth:        endpoint.NoAuth(),
			})
		}
	}
	return defs, nil
}

// operationDescription picks a human-readable label for an operation.
func operationDescription(op *openapi3.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	if op.Description != "" {
		return op.Description
	}
	return op.OperationID
}

// convertOpenAPIPath rewrites {param} template segments into :param form.
func convertOpenAPIPath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			segments[i] = ":" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}

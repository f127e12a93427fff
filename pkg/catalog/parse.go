package catalog

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// Line shapes of the generated TypeScript constants listing. The parser and
// the generator in pkg/codegen share this grammar; generator output must
// always parse back into an equivalent table.
var (
	rootLine      = regexp.MustCompile(`^export const ([A-Za-z_][A-Za-z0-9_]*) = \{$`)
	namespaceLine = regexp.MustCompile(`^([A-Z][A-Z0-9_]*): \{$`)
	constantLine  = regexp.MustCompile(`^([A-Z][A-Z0-9_]*): '([^']*)',?(?:\s*// used-by: (.+))?$`)
)

// ParseTypeScript parses a generated endpoint-constants listing back into a
// Table. Comment lines outside the used-by convention and blank lines are
// skipped; anything structurally unexpected is an error.
func ParseTypeScript(src string) (*Table, error) {
	table := &Table{}
	var current *Namespace
	inRoot := false
	lineNo := 0

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if !inRoot {
			m := rootLine.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("line %d: expected constants table declaration, got %q", lineNo, line)
			}
			table.Root = m[1]
			inRoot = true
			continue
		}

		if line == "} as const;" || line == "};" {
			if current != nil {
				return nil, fmt.Errorf("line %d: table closed inside namespace %s", lineNo, current.Name)
			}
			inRoot = false
			continue
		}

		if current == nil {
			m := namespaceLine.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("line %d: expected namespace, got %q", lineNo, line)
			}
			table.Namespaces = append(table.Namespaces, Namespace{Name: m[1]})
			current = &table.Namespaces[len(table.Namespaces)-1]
			continue
		}

		if line == "}," || line == "}" {
			current = nil
			continue
		}

		m := constantLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: expected constant entry, got %q", lineNo, line)
		}
		current.Constants = append(current.Constants, Constant{
			Name:  m[1],
			Path:  m[2],
			Usage: parseUsage(m[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if table.Root == "" {
		return nil, fmt.Errorf("no constants table found")
	}
	if inRoot {
		return nil, fmt.Errorf("constants table is not closed")
	}
	return table, nil
}

// parseUsage parses the "Page — note; Page2" trailing comment form.
func parseUsage(s string) []Usage {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var usage []Usage
	for _, part := range strings.Split(s, "; ") {
		page, note, found := strings.Cut(part, " — ")
		u := Usage{Page: strings.TrimSpace(page)}
		if found {
			u.Note = strings.TrimSpace(note)
		}
		usage = append(usage, u)
	}
	return usage
}

// Package codegen renders endpoint registries and constants tables as
// TypeScript source. The output is the canonical endpoint-constants listing
// consumed by the fleet console, and it parses back through
// catalog.ParseTypeScript (round-trip contract).
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/routefleet/fleetd/pkg/catalog"
	"github.com/routefleet/fleetd/pkg/endpoint"
)

// TypeScript renders a constants table as a TypeScript declaration.
func TypeScript(t *catalog.Table) string {
	var b strings.Builder
	b.WriteString("// Endpoint constants for the fleet console.\n")
	b.WriteString("// Regenerate from the endpoint registry instead of editing by hand.\n")
	fmt.Fprintf(&b, "export const %s = {\n", t.Root)
	for _, ns := range t.Namespaces {
		fmt.Fprintf(&b, "  %s: {\n", ns.Name)
		for _, c := range ns.Constants {
			fmt.Fprintf(&b, "    %s: '%s',", c.Name, c.Path)
			if comment := usageComment(c.Usage); comment != "" {
				b.WriteString(" // used-by: " + comment)
			}
			b.WriteString("\n")
		}
		b.WriteString("  },\n")
	}
	b.WriteString("} as const;\n")
	return b.String()
}

// TableFromEndpoints projects the endpoint registry onto a constants table,
// grouping definitions by their first path segment. Constant names are
// derived from method and remaining path segments, deduplicated with numeric
// suffixes.
func TableFromEndpoints(defs []*endpoint.Definition) *catalog.Table {
	groups := make(map[string][]catalog.Constant)
	var order []string

	for _, def := range defs {
		ns := namespaceFor(def.Path)
		if _, seen := groups[ns]; !seen {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], catalog.Constant{
			Name: constantNameFor(def),
			Path: def.Path,
		})
	}
	sort.Strings(order)

	table := &catalog.Table{Root: "API_ENDPOINTS"}
	for _, ns := range order {
		constants := dedupeNames(groups[ns])
		table.Namespaces = append(table.Namespaces, catalog.Namespace{Name: ns, Constants: constants})
	}
	return table
}

// namespaceFor derives the namespace from the first path segment:
// "/drivers/:id" becomes "DRIVERS". Empty paths land in "ROOT".
func namespaceFor(path string) string {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return "ROOT"
	}
	return identifier(segments[0])
}

// constantNameFor derives a constant name from method and path remainder:
// GET /drivers/:id becomes "GET_BY_ID". The verb prefixes are chosen so the
// mapping deriver's keyword inference recovers the original method where the
// inference table allows it.
func constantNameFor(def *endpoint.Definition) string {
	verb := map[endpoint.Method]string{
		endpoint.MethodGet:    "GET",
		endpoint.MethodPost:   "CREATE",
		endpoint.MethodPut:    "UPDATE",
		endpoint.MethodPatch:  "UPDATE",
		endpoint.MethodDelete: "DELETE",
	}[def.Method]
	if verb == "" {
		verb = "GET"
	}

	parts := []string{verb}
	segments := splitSegments(def.Path)
	for i, seg := range segments {
		if i == 0 {
			continue // first segment is the namespace
		}
		if strings.HasPrefix(seg, ":") {
			parts = append(parts, "BY_"+identifier(strings.TrimPrefix(seg, ":")))
			continue
		}
		parts = append(parts, identifier(seg))
	}
	return strings.Join(parts, "_")
}

// dedupeNames appends numeric suffixes to repeated constant names within a
// namespace so the generated table stays a valid object literal.
func dedupeNames(constants []catalog.Constant) []catalog.Constant {
	counts := make(map[string]int)
	result := make([]catalog.Constant, len(constants))
	for i, c := range constants {
		counts[c.Name]++
		if n := counts[c.Name]; n > 1 {
			c.Name = fmt.Sprintf("%s_%d", c.Name, n)
		}
		result[i] = c
	}
	return result
}

func splitSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// identifier converts a path segment to an uppercase identifier:
// "bulk-upload" becomes "BULK_UPLOAD".
func identifier(seg string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(seg) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "X"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "N" + out
	}
	return out
}

func usageComment(usage []catalog.Usage) string {
	if len(usage) == 0 {
		return ""
	}
	parts := make([]string, 0, len(usage))
	for _, u := range usage {
		if u.Note != "" {
			parts = append(parts, u.Page+" — "+u.Note)
		} else {
			parts = append(parts, u.Page)
		}
	}
	return strings.Join(parts, "; ")
}

// Package catalog models the canonical endpoint-constants table: the nested
// mapping of symbolic constant names to path templates that the consuming
// application compiles in. Mappings derived from the table are a pure
// computed view and are regenerated on every read; they are never stored.
package catalog

import "strings"

// Usage records one consumer of a constant: the page or feature that calls
// the endpoint, with an optional free-text note.
type Usage struct {
	// Page is the consuming page or feature ("Drivers", "Dashboard").
	Page string `json:"page"`

	// Note is an optional sub-description of the usage.
	Note string `json:"note,omitempty"`
}

// Constant is one leaf of the table: a symbolic name bound to a path
// template. Templates may contain a ":id" parameter marker.
type Constant struct {
	// Name is the constant's own name segment ("LIST", "BULK_UPLOAD").
	Name string `json:"name"`

	// Path is the path template ("/drivers/:id").
	Path string `json:"path"`

	// Usage lists the recorded consumers. Empty means the constant is
	// declared but unused.
	Usage []Usage `json:"usage,omitempty"`
}

// Namespace groups constants under one symbolic prefix ("DRIVERS").
type Namespace struct {
	Name      string     `json:"name"`
	Constants []Constant `json:"constants"`
}

// Table is the full constants table. Order is preserved so generated code
// and derived mappings are stable.
type Table struct {
	// Root is the exported identifier of the table ("API_ENDPOINTS").
	Root string `json:"root"`

	Namespaces []Namespace `json:"namespaces"`
}

// QualifiedName returns the fully-qualified constant name
// ("API_ENDPOINTS.DRIVERS.LIST").
func (t *Table) QualifiedName(ns, name string) string {
	return t.Root + "." + ns + "." + name
}

// Len returns the number of leaf constants.
func (t *Table) Len() int {
	n := 0
	for _, ns := range t.Namespaces {
		n += len(ns.Constants)
	}
	return n
}

// Pairs returns every (qualified name, path) pair in table order. The
// round-trip contract between the code generator and ParseTypeScript is
// stated over these pairs.
func (t *Table) Pairs() [][2]string {
	pairs := make([][2]string, 0, t.Len())
	for _, ns := range t.Namespaces {
		for _, c := range ns.Constants {
			pairs = append(pairs, [2]string{t.QualifiedName(ns.Name, c.Name), c.Path})
		}
	}
	return pairs
}

// HasIDParam reports whether a path template carries the ":id" marker.
func HasIDParam(path string) bool {
	return strings.Contains(path, ":id")
}

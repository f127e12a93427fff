package catalog

import (
	"fmt"
	"strings"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// Mapping is a derived link between a source-code constant and its inferred
// endpoint metadata. Mappings are computed fresh from the table on every
// read and never hand-edited.
type Mapping struct {
	// ID is a stable identifier derived from the qualified name.
	ID string `json:"id"`

	// SourceConstant is the fully-qualified constant name, suffixed with
	// the "(:id)" marker when the path template is parameterized.
	SourceConstant string `json:"sourceConstant"`

	// EndpointPath is the path template.
	EndpointPath string `json:"endpointPath"`

	// Method is the HTTP method inferred from the constant name.
	Method endpoint.Method `json:"method"`

	// Description is a humanized form of the constant name.
	Description string `json:"description"`

	// Functionality names the consuming page, optionally followed by an
	// em-dash separated note ("Drivers — roster table").
	Functionality string `json:"functionality"`
}

// Method inference keyword groups, checked in precedence order. The first
// group whose keyword appears in the constant name decides the method.
var methodKeywords = []struct {
	method   endpoint.Method
	keywords []string
}{
	{endpoint.MethodPost, []string{"LOGIN", "UPLOAD", "GENERATE", "VERIFY", "RESEND", "FORGOT", "RESET", "FLAG", "DUPLICATE", "BULK_UPLOAD", "CREATE"}},
	{endpoint.MethodPut, []string{"UPDATE", "STATUS", "READ", "READ_ALL"}},
	{endpoint.MethodDelete, []string{"DELETE", "DISABLE"}},
}

// InferMethod derives the HTTP method from a constant name using keyword
// heuristics. Groups are checked in precedence order (POST before PUT before
// DELETE) so names carrying keywords from several groups resolve
// deterministically; anything without a recognized keyword is a GET.
func InferMethod(name string) endpoint.Method {
	upper := strings.ToUpper(name)
	for _, group := range methodKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(upper, kw) {
				return group.method
			}
		}
	}
	return endpoint.MethodGet
}

// AutoMappings derives one mapping per leaf constant in the table.
func AutoMappings(t *Table) []Mapping {
	mappings := make([]Mapping, 0, t.Len())
	for _, ns := range t.Namespaces {
		for _, c := range ns.Constants {
			qualified := t.QualifiedName(ns.Name, c.Name)
			source := qualified
			if HasIDParam(c.Path) {
				source += "(:id)"
			}
			mappings = append(mappings, Mapping{
				ID:             "map-" + strings.ToLower(strings.ReplaceAll(ns.Name+"-"+c.Name, "_", "-")),
				SourceConstant: source,
				EndpointPath:   c.Path,
				Method:         InferMethod(c.Name),
				Description:    humanize(c.Name),
				Functionality:  functionality(c.Usage),
			})
		}
	}
	return mappings
}

// WarningType classifies a usage warning.
type WarningType string

// Warning types.
const (
	WarningUnused   WarningType = "unused"
	WarningConflict WarningType = "conflict"
)

// Warning flags a constant with no recorded consumers or a path claimed by
// more than one constant.
type Warning struct {
	Type   WarningType `json:"type"`
	Detail string      `json:"detail"`
}

// UsageWarnings scans the table for unused constants and conflicting path
// claims. Conflicts key on the path alone, so two constants sharing a path
// under different methods are still flagged.
func UsageWarnings(t *Table) []Warning {
	var warnings []Warning
	claims := make(map[string][]string)

	for _, ns := range t.Namespaces {
		for _, c := range ns.Constants {
			qualified := t.QualifiedName(ns.Name, c.Name)
			if len(c.Usage) == 0 {
				warnings = append(warnings, Warning{
					Type:   WarningUnused,
					Detail: fmt.Sprintf("%s (%s) has no recorded consumers", qualified, c.Path),
				})
			}
			claims[c.Path] = append(claims[c.Path], qualified)
		}
	}

	// Report conflicts in table order for stable output.
	seen := make(map[string]bool)
	for _, ns := range t.Namespaces {
		for _, c := range ns.Constants {
			owners := claims[c.Path]
			if len(owners) > 1 && !seen[c.Path] {
				seen[c.Path] = true
				warnings = append(warnings, Warning{
					Type:   WarningConflict,
					Detail: fmt.Sprintf("path %s is claimed by %s", c.Path, strings.Join(owners, ", ")),
				})
			}
		}
	}
	return warnings
}

// humanize turns "BULK_UPLOAD_STUDENTS" into "Bulk upload students".
func humanize(name string) string {
	words := strings.Split(strings.ToLower(name), "_")
	if len(words) == 0 {
		return name
	}
	if len(words[0]) > 0 {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}

// functionality renders usage metadata as "Page — note", joining multiple
// consumers with "; ".
func functionality(usage []Usage) string {
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

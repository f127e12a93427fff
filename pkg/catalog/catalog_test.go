package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

func TestInferMethod(t *testing.T) {
	tests := []struct {
		name string
		want endpoint.Method
	}{
		{"LOGIN", endpoint.MethodPost},
		{"UPLOAD_LICENSE", endpoint.MethodPost},
		{"GENERATE_ROSTER", endpoint.MethodPost},
		{"VERIFY_OTP", endpoint.MethodPost},
		{"RESEND_OTP", endpoint.MethodPost},
		{"FORGOT_PASSWORD", endpoint.MethodPost},
		{"RESET_PASSWORD", endpoint.MethodPost},
		{"FLAG", endpoint.MethodPost},
		{"DUPLICATE", endpoint.MethodPost},
		{"CREATE", endpoint.MethodPost},
		{"UPDATE", endpoint.MethodPut},
		{"UPDATE_STATUS", endpoint.MethodPut},
		{"READ_ALL_NOTIFICATIONS", endpoint.MethodPut},
		{"DELETE", endpoint.MethodDelete},
		{"DISABLE", endpoint.MethodDelete},
		{"LIST", endpoint.MethodGet},
		{"DETAIL", endpoint.MethodGet},
		{"SUMMARY", endpoint.MethodGet},

		// Precedence: POST keywords beat PUT/DELETE keywords when a name
		// carries both.
		{"BULK_UPLOAD_STUDENTS", endpoint.MethodPost},
		{"CREATE_STATUS", endpoint.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMethod(tt.name))
		})
	}
}

func TestInferMethodIdempotent(t *testing.T) {
	for _, name := range []string{"BULK_UPLOAD_STUDENTS", "UPDATE_STATUS", "LIST"} {
		first := InferMethod(name)
		assert.Equal(t, first, InferMethod(name), "inference must be idempotent for %s", name)
	}
}

func TestAutoMappings(t *testing.T) {
	table := &Table{
		Root: "API_ENDPOINTS",
		Namespaces: []Namespace{
			{Name: "DRIVERS", Constants: []Constant{
				{Name: "LIST", Path: "/drivers", Usage: []Usage{{Page: "Drivers", Note: "roster table"}}},
				{Name: "DETAIL", Path: "/drivers/:id", Usage: []Usage{{Page: "Drivers"}}},
			}},
		},
	}

	mappings := AutoMappings(table)
	require.Len(t, mappings, 2)

	list := mappings[0]
	assert.Equal(t, "API_ENDPOINTS.DRIVERS.LIST", list.SourceConstant)
	assert.Equal(t, "/drivers", list.EndpointPath)
	assert.Equal(t, endpoint.MethodGet, list.Method)
	assert.Equal(t, "List", list.Description)
	assert.Equal(t, "Drivers — roster table", list.Functionality)

	detail := mappings[1]
	assert.Equal(t, "API_ENDPOINTS.DRIVERS.DETAIL(:id)", detail.SourceConstant, "parameterized templates carry the (:id) marker")
	assert.Equal(t, "Drivers", detail.Functionality)
}

func TestAutoMappingsRegeneratedFromTable(t *testing.T) {
	table := Default()
	first := AutoMappings(table)
	second := AutoMappings(table)
	assert.Equal(t, first, second, "mappings are a pure function of the table")
	assert.Equal(t, table.Len(), len(first))
}

func TestUsageWarnings(t *testing.T) {
	table := &Table{
		Root: "API_ENDPOINTS",
		Namespaces: []Namespace{
			{Name: "DRIVERS", Constants: []Constant{
				{Name: "LIST", Path: "/drivers", Usage: []Usage{{Page: "Drivers"}}},
				{Name: "EXPORT", Path: "/drivers/export"},
			}},
			{Name: "REPORTS", Constants: []Constant{
				// Same path as DRIVERS.EXPORT under another name.
				{Name: "DRIVER_EXPORT", Path: "/drivers/export", Usage: []Usage{{Page: "Reports"}}},
			}},
		},
	}

	warnings := UsageWarnings(table)

	var unused, conflicts []Warning
	for _, w := range warnings {
		switch w.Type {
		case WarningUnused:
			unused = append(unused, w)
		case WarningConflict:
			conflicts = append(conflicts, w)
		}
	}

	require.Len(t, unused, 1)
	assert.Contains(t, unused[0].Detail, "API_ENDPOINTS.DRIVERS.EXPORT")

	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "/drivers/export")
	assert.Contains(t, conflicts[0].Detail, "API_ENDPOINTS.DRIVERS.EXPORT")
	assert.Contains(t, conflicts[0].Detail, "API_ENDPOINTS.REPORTS.DRIVER_EXPORT")
}

func TestUsageWarningsCleanTable(t *testing.T) {
	table := &Table{
		Root: "API_ENDPOINTS",
		Namespaces: []Namespace{
			{Name: "SHIFTS", Constants: []Constant{
				{Name: "LIST", Path: "/shifts", Usage: []Usage{{Page: "Shifts"}}},
				{Name: "CREATE", Path: "/shifts/new", Usage: []Usage{{Page: "Shifts"}}},
			}},
		},
	}
	assert.Empty(t, UsageWarnings(table))
}

func TestParseTypeScript(t *testing.T) {
	src := `// Endpoint constants for the fleet console.
export const API_ENDPOINTS = {
  DRIVERS: {
    LIST: '/drivers', // used-by: Drivers — roster table
    DETAIL: '/drivers/:id',
  },
  SHIFTS: {
    CREATE: '/shifts', // used-by: Shifts
  },
} as const;
`
	table, err := ParseTypeScript(src)
	require.NoError(t, err)

	assert.Equal(t, "API_ENDPOINTS", table.Root)
	require.Len(t, table.Namespaces, 2)
	require.Len(t, table.Namespaces[0].Constants, 2)

	list := table.Namespaces[0].Constants[0]
	assert.Equal(t, "LIST", list.Name)
	assert.Equal(t, "/drivers", list.Path)
	require.Len(t, list.Usage, 1)
	assert.Equal(t, Usage{Page: "Drivers", Note: "roster table"}, list.Usage[0])

	detail := table.Namespaces[0].Constants[1]
	assert.Empty(t, detail.Usage)
}

func TestParseTypeScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"not a table", "const x = 1;"},
		{"unclosed", "export const API_ENDPOINTS = {\n  DRIVERS: {\n"},
		{"entry outside namespace", "export const API_ENDPOINTS = {\n  LIST: '/drivers',\n} as const;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeScript(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Bulk upload students", humanize("BULK_UPLOAD_STUDENTS"))
	assert.Equal(t, "List", humanize("LIST"))
}

func TestDefaultTableIsWellFormed(t *testing.T) {
	table := Default()
	assert.Equal(t, "API_ENDPOINTS", table.Root)
	assert.Greater(t, table.Len(), 10)
	for _, ns := range table.Namespaces {
		for _, c := range ns.Constants {
			assert.True(t, strings.HasPrefix(c.Path, "/"), "%s.%s path must start with /", ns.Name, c.Name)
		}
	}
}

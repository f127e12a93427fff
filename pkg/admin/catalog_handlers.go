package admin

import (
	"net/http"

	"github.com/routefleet/fleetd/pkg/catalog"
	"github.com/routefleet/fleetd/pkg/codegen"
)

// MappingListResponse is the body of GET /mappings.
type MappingListResponse struct {
	Mappings []catalog.Mapping `json:"mappings"`
	Count    int               `json:"count"`
}

// handleListMappings handles GET /mappings: the endpoint mappings derived
// from the constants table.
func (a *AdminAPI) handleListMappings(w http.ResponseWriter, r *http.Request) {
	mappings := catalog.AutoMappings(a.table)
	writeJSON(w, http.StatusOK, MappingListResponse{
		Mappings: mappings,
		Count:    len(mappings),
	})
}

// WarningListResponse is the body of GET /mappings/warnings.
type WarningListResponse struct {
	Warnings []catalog.Warning `json:"warnings"`
	Count    int               `json:"count"`
}

// handleMappingWarnings handles GET /mappings/warnings: unused constants and
// path conflicts in the constants table.
func (a *AdminAPI) handleMappingWarnings(w http.ResponseWriter, r *http.Request) {
	warnings := catalog.UsageWarnings(a.table)
	writeJSON(w, http.StatusOK, WarningListResponse{
		Warnings: warnings,
		Count:    len(warnings),
	})
}

// handleCodegenTypeScript handles GET /codegen/typescript: the constants
// table rendered as a TypeScript module. With ?source=endpoints the table is
// derived from the stored endpoint definitions instead.
func (a *AdminAPI) handleCodegenTypeScript(w http.ResponseWriter, r *http.Request) {
	table := a.table
	if r.URL.Query().Get("source") == "endpoints" {
		_, defs := a.reg.Snapshot()
		table = codegen.TableFromEndpoints(defs)
	}

	w.Header().Set("Content-Type", "application/typescript")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(codegen.TypeScript(table)))
}

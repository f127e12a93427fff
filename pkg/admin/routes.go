// Route registration for the admin API.

package admin

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (a *AdminAPI) registerRoutes(mux *http.ServeMux) {
	// Health and status
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /status", a.handleStatus)

	// Environment management
	mux.HandleFunc("GET /environments", a.handleListEnvironments)
	mux.HandleFunc("POST /environments", a.handleCreateEnvironment)
	mux.HandleFunc("GET /environments/{id}", a.handleGetEnvironment)
	mux.HandleFunc("PUT /environments/{id}", a.handleUpdateEnvironment)
	mux.HandleFunc("DELETE /environments/{id}", a.handleDeleteEnvironment)

	// Client-config diff and apply
	mux.HandleFunc("GET /client-config", a.handleGetClientConfig)
	mux.HandleFunc("GET /environments/{id}/diff", a.handleDiffEnvironment)
	mux.HandleFunc("POST /environments/{id}/apply", a.handleApplyEnvironment)

	// Endpoint management
	mux.HandleFunc("GET /endpoints", a.handleListEndpoints)
	mux.HandleFunc("POST /endpoints", a.handleCreateEndpoint)
	mux.HandleFunc("GET /endpoints/{id}", a.handleGetEndpoint)
	mux.HandleFunc("PUT /endpoints/{id}", a.handleUpdateEndpoint)
	mux.HandleFunc("DELETE /endpoints/{id}", a.handleDeleteEndpoint)
	mux.HandleFunc("POST /endpoints/{id}/toggle", a.handleToggleEndpoint)
	mux.HandleFunc("POST /endpoints/{id}/test", a.handleTestEndpoint)

	// Configuration import/export
	mux.HandleFunc("GET /config", a.handleExportConfig)
	mux.HandleFunc("POST /config", a.handleImportConfig)
	mux.HandleFunc("POST /config/validate", a.handleValidateConfig)
	mux.HandleFunc("POST /config/postman", a.handleImportPostman)
	mux.HandleFunc("POST /config/openapi", a.handleImportOpenAPI)

	// Endpoint-constants catalog
	mux.HandleFunc("GET /mappings", a.handleListMappings)
	mux.HandleFunc("GET /mappings/warnings", a.handleMappingWarnings)
	mux.HandleFunc("GET /codegen/typescript", a.handleCodegenTypeScript)
}

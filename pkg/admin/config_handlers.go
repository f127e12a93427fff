package admin

import (
	"io"
	"net/http"

	"github.com/routefleet/fleetd/pkg/portability"
)

// maxImportBytes caps import payload size.
const maxImportBytes = 10 << 20 // 10 MB

// handleExportConfig handles GET /config: the full native export document.
func (a *AdminAPI) handleExportConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.porter.Export())
}

// ImportResponse is the body of a successful import.
type ImportResponse struct {
	Format       portability.Format `json:"format"`
	Environments int                `json:"environments,omitempty"`
	Endpoints    int                `json:"endpoints"`
}

// handleImportConfig handles POST /config: a native import replacing the
// full store contents, all-or-nothing.
func (a *AdminAPI) handleImportConfig(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readImportBody(w, r)
	if !ok {
		return
	}

	envs, eps, err := a.porter.ImportNative(data)
	if err != nil {
		a.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Format:       portability.FormatNative,
		Environments: envs,
		Endpoints:    eps,
	})
}

// handleValidateConfig handles POST /config/validate: a dry-run preview of
// what an import payload would do. Never mutates the stores.
func (a *AdminAPI) handleValidateConfig(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readImportBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.porter.ValidateImport(data))
}

// handleImportPostman handles POST /config/postman?environment=<id>.
func (a *AdminAPI) handleImportPostman(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readImportBody(w, r)
	if !ok {
		return
	}

	count, err := a.porter.ImportPostman(data, r.URL.Query().Get("environment"))
	if err != nil {
		a.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Format:    portability.FormatPostman,
		Endpoints: count,
	})
}

// handleImportOpenAPI handles POST /config/openapi?environment=<id>.
func (a *AdminAPI) handleImportOpenAPI(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readImportBody(w, r)
	if !ok {
		return
	}

	count, err := a.porter.ImportOpenAPI(data, r.URL.Query().Get("environment"))
	if err != nil {
		a.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Format:    portability.FormatOpenAPI,
		Endpoints: count,
	})
}

// readImportBody reads and size-limits an import payload. Writes the error
// response itself and returns ok=false on failure.
func (a *AdminAPI) readImportBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read_error", "Failed to read request body")
		return nil, false
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty_body", "Request body is empty")
		return nil, false
	}
	return data, true
}

// writeImportError maps import failures to 400 responses. Import errors
// describe the payload, not internals, so the message passes through.
func (a *AdminAPI) writeImportError(w http.ResponseWriter, err error) {
	a.log.Warn("import rejected", "error", err)
	writeError(w, http.StatusBadRequest, "import_error", err.Error())
}

package admin

import (
	"encoding/json"
	"net/http"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
)

// EnvironmentListResponse is the body of GET /environments.
type EnvironmentListResponse struct {
	Environments []*endpoint.Environment `json:"environments"`
	Count        int                     `json:"count"`
}

// handleListEnvironments handles GET /environments.
func (a *AdminAPI) handleListEnvironments(w http.ResponseWriter, r *http.Request) {
	envs := a.reg.ListEnvironments()
	writeJSON(w, http.StatusOK, EnvironmentListResponse{
		Environments: envs,
		Count:        len(envs),
	})
}

// handleCreateEnvironment handles POST /environments.
func (a *AdminAPI) handleCreateEnvironment(w http.ResponseWriter, r *http.Request) {
	var env endpoint.Environment
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.log))
		return
	}
	env.ID = "" // ids are always generated server-side

	id, err := a.reg.SaveEnvironment(&env)
	if err != nil {
		a.writeStoreError(w, err, "create environment")
		return
	}

	created := a.reg.GetEnvironment(id)
	a.log.Info("environment created", "id", id, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetEnvironment handles GET /environments/{id}.
func (a *AdminAPI) handleGetEnvironment(w http.ResponseWriter, r *http.Request) {
	env := a.reg.GetEnvironment(r.PathValue("id"))
	if env == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// handleUpdateEnvironment handles PUT /environments/{id}.
func (a *AdminAPI) handleUpdateEnvironment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch storage.EnvironmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.log))
		return
	}

	if err := a.reg.UpdateEnvironment(id, patch); err != nil {
		a.writeStoreError(w, err, "update environment")
		return
	}
	writeJSON(w, http.StatusOK, a.reg.GetEnvironment(id))
}

// handleDeleteEnvironment handles DELETE /environments/{id}. Endpoints bound
// to the environment are removed in the same operation.
func (a *AdminAPI) handleDeleteEnvironment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !a.reg.DeleteEnvironment(id) {
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}
	a.log.Info("environment deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetClientConfig handles GET /client-config.
func (a *AdminAPI) handleGetClientConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.active.Config())
}

// handleDiffEnvironment handles GET /environments/{id}/diff.
func (a *AdminAPI) handleDiffEnvironment(w http.ResponseWriter, r *http.Request) {
	preview, err := a.differ.Preview(r.PathValue("id"))
	if err != nil {
		a.writeStoreError(w, err, "diff environment")
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// ApplyResponse is the body of POST /environments/{id}/apply.
type ApplyResponse struct {
	Applied bool                `json:"applied"`
	Config  endpoint.BaseConfig `json:"config"`
}

// handleApplyEnvironment handles POST /environments/{id}/apply.
func (a *AdminAPI) handleApplyEnvironment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if a.reg.GetEnvironment(id) == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}
	applied := a.differ.Apply(id)
	writeJSON(w, http.StatusOK, ApplyResponse{
		Applied: applied,
		Config:  a.active.Config(),
	})
}

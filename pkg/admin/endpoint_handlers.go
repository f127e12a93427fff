package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/tester"
)

// EndpointListItem is one endpoint in a list response, with its resolved
// request URL attached.
type EndpointListItem struct {
	*endpoint.Definition
	URL string `json:"url"`
}

// EndpointListResponse is the body of GET /endpoints.
type EndpointListResponse struct {
	Endpoints []EndpointListItem `json:"endpoints"`
	Count     int                `json:"count"`
}

// handleListEndpoints handles GET /endpoints. Supports filtering by
// ?environment=, ?status= and ?owner=.
func (a *AdminAPI) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	envs, defs := a.reg.Snapshot()
	active := a.active.Config()

	envFilter := r.URL.Query().Get("environment")
	statusFilter := r.URL.Query().Get("status")
	ownerFilter := r.URL.Query().Get("owner")

	items := make([]EndpointListItem, 0, len(defs))
	for _, def := range defs {
		if envFilter != "" && def.EnvironmentID != envFilter {
			continue
		}
		if statusFilter != "" && string(def.Status) != statusFilter {
			continue
		}
		if ownerFilter != "" && string(def.Owner) != ownerFilter {
			continue
		}
		items = append(items, EndpointListItem{
			Definition: def,
			URL:        endpoint.BuildURL(def, envs, active),
		})
	}
	writeJSON(w, http.StatusOK, EndpointListResponse{
		Endpoints: items,
		Count:     len(items),
	})
}

// handleCreateEndpoint handles POST /endpoints.
func (a *AdminAPI) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	var def endpoint.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.log))
		return
	}
	def.ID = ""
	def.Owner = endpoint.OwnerUser // only seeding creates system endpoints

	id, err := a.reg.SaveEndpoint(&def)
	if err != nil {
		a.writeStoreError(w, err, "create endpoint")
		return
	}

	created := a.reg.GetEndpoint(id)
	a.log.Info("endpoint created", "id", id, "method", created.Method, "path", created.Path)
	writeJSON(w, http.StatusCreated, a.withURL(created))
}

// handleGetEndpoint handles GET /endpoints/{id}.
func (a *AdminAPI) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	def := a.reg.GetEndpoint(r.PathValue("id"))
	if def == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.withURL(def))
}

// handleUpdateEndpoint handles PUT /endpoints/{id}.
func (a *AdminAPI) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch storage.DefinitionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.log))
		return
	}

	if err := a.reg.UpdateEndpoint(id, patch); err != nil {
		a.writeStoreError(w, err, "update endpoint")
		return
	}
	writeJSON(w, http.StatusOK, a.withURL(a.reg.GetEndpoint(id)))
}

// handleDeleteEndpoint handles DELETE /endpoints/{id}.
func (a *AdminAPI) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := a.reg.DeleteEndpoint(id); err != nil {
		a.writeStoreError(w, err, "delete endpoint")
		return
	}
	a.log.Info("endpoint deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleResponse is the body of POST /endpoints/{id}/toggle.
type ToggleResponse struct {
	ID     string          `json:"id"`
	Status endpoint.Status `json:"status"`
}

// handleToggleEndpoint handles POST /endpoints/{id}/toggle.
func (a *AdminAPI) handleToggleEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status, err := a.reg.ToggleStatus(id)
	if err != nil {
		a.writeStoreError(w, err, "toggle endpoint")
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{ID: id, Status: status})
}

// TestResponse is the body of POST /endpoints/{id}/test.
type TestResponse struct {
	URL     string               `json:"url"`
	Outcome endpoint.TestOutcome `json:"outcome"`
	Result  tester.Result        `json:"result"`
}

// handleTestEndpoint handles POST /endpoints/{id}/test: fires one live
// request at the endpoint's resolved URL and records the outcome.
func (a *AdminAPI) handleTestEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	def := a.reg.GetEndpoint(id)
	if def == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}

	envs, _ := a.reg.Snapshot()
	url := endpoint.BuildURL(def, envs, a.active.Config())

	res := a.tester.Test(r.Context(), def.Method, url, def.Body)
	outcome := a.tester.Outcome(res, def.Script)

	// The timestamp is taken after the request finishes so that when tests
	// overlap, the one that completes last is the one that sticks.
	completedAt := time.Now()
	if err := a.reg.RecordTestResult(id, completedAt, outcome); err != nil {
		a.writeStoreError(w, err, "record test result")
		return
	}

	writeJSON(w, http.StatusOK, TestResponse{
		URL:     url,
		Outcome: outcome,
		Result:  res,
	})
}

// withURL wraps a definition with its resolved request URL.
func (a *AdminAPI) withURL(def *endpoint.Definition) EndpointListItem {
	envs, _ := a.reg.Snapshot()
	return EndpointListItem{
		Definition: def,
		URL:        endpoint.BuildURL(def, envs, a.active.Config()),
	}
}

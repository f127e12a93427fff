package admin

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of non-validation error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// StatusResponse is the body of the status endpoint.
type StatusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       int    `json:"uptime"`
	Environments int    `json:"environments"`
	Endpoints    int    `json:"endpoints"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleHealth handles GET /health.
func (a *AdminAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: a.Uptime(),
	})
}

// handleStatus handles GET /status.
func (a *AdminAPI) handleStatus(w http.ResponseWriter, r *http.Request) {
	version := a.version
	if version == "" {
		version = "dev"
	}
	envs, defs := a.reg.Snapshot()
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:       "ok",
		Version:      version,
		Uptime:       a.Uptime(),
		Environments: len(envs),
		Endpoints:    len(defs),
	})
}

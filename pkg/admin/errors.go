// Error handling utilities for the admin API. Internal errors are logged in
// full server-side; clients get generic messages.

package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/validation"
)

// Safe error messages for client responses.
const (
	// ErrMsgInternalError is returned for unexpected internal errors.
	ErrMsgInternalError = "An internal error occurred"

	// ErrMsgInvalidJSON is returned for JSON parsing errors.
	ErrMsgInvalidJSON = "Invalid JSON in request body"

	// ErrMsgNotFound is returned when a resource is not found.
	ErrMsgNotFound = "Resource not found"

	// ErrMsgProtected is returned when a system endpoint is edited.
	ErrMsgProtected = "System endpoints only accept status changes"

	// ErrMsgOperationFailed is returned for generic operation failures.
	ErrMsgOperationFailed = "Operation failed"
)

// sanitizeError logs the full error and returns a safe client message.
func sanitizeError(err error, log *slog.Logger, operation string, details ...any) string {
	if log != nil {
		args := []any{"operation", operation, "error", err}
		args = append(args, details...)
		log.Error("operation failed", args...)
	}
	return ErrMsgOperationFailed
}

// sanitizeJSONError returns a safe error message for JSON parsing errors.
func sanitizeJSONError(err error, log *slog.Logger) string {
	if log != nil {
		log.Debug("JSON parsing failed", "error", err)
	}
	return ErrMsgInvalidJSON
}

// writeStoreError maps store errors onto HTTP responses. Validation errors
// carry their field details; sentinel errors map to 404/403; everything
// else is sanitized to a generic 500.
func (a *AdminAPI) writeStoreError(w http.ResponseWriter, err error, operation string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		validation.NewErrorResponse(verr.Result, http.StatusBadRequest).WriteResponse(w)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
	case errors.Is(err, storage.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "protected", ErrMsgProtected)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error",
			sanitizeError(err, a.log, operation))
	}
}

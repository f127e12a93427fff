package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode constants for machine-readable error identification
const (
	ErrCodeRequired    = "required"
	ErrCodePattern     = "pattern"
	ErrCodeEnum        = "enum"
	ErrCodeInvalidJSON = "invalid_json"
	ErrCodeReference   = "reference"
)

// ErrorLocation constants
const (
	LocationBody  = "body"
	LocationPath  = "path"
	LocationQuery = "query"
)

// FieldError represents a detailed validation error for a single field.
type FieldError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Location indicates where the field is: body, path, query
	Location string `json:"location"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Received is the actual value that was received (may be omitted for security)
	Received interface{} `json:"received,omitempty"`

	// Expected describes what was expected
	Expected string `json:"expected,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return e.Message
}

// Result contains the outcome of validation.
type Result struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false)
	Errors []*FieldError `json:"errors,omitempty"`
}

// OK returns a passing result.
func OK() *Result {
	return &Result{Valid: true}
}

// AddError adds a validation error to the result
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// HasErrors returns true if there are any validation errors
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Merge combines another result into this one
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// Err converts the result to an error value, or nil if the result is valid.
func (r *Result) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return &Error{Result: r}
}

// Error is the error type returned by store-level writes that fail validation.
// It carries the full field-level Result for API responses.
type Error struct {
	Result *Result
}

// Error implements the error interface, joining all field messages.
func (e *Error) Error() string {
	if e.Result == nil || len(e.Result.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Result.Errors))
	for i, fe := range e.Result.Errors {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ErrorResponse is the HTTP response body for validation failures.
// It follows RFC 7807 Problem Details format.
type ErrorResponse struct {
	// Type identifies the error type
	Type string `json:"type"`

	// Title is a short summary
	Title string `json:"title"`

	// Status is the HTTP status code
	Status int `json:"status"`

	// Detail provides additional context
	Detail string `json:"detail,omitempty"`

	// Errors lists all validation errors
	Errors []*FieldError `json:"errors"`
}

// NewErrorResponse creates an ErrorResponse from a Result
func NewErrorResponse(result *Result, status int) *ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}

	detail := ""
	if len(result.Errors) == 1 {
		detail = result.Errors[0].Message
	} else if len(result.Errors) > 1 {
		detail = fmt.Sprintf("%d validation errors", len(result.Errors))
	}

	return &ErrorResponse{
		Type:   "validation_error",
		Title:  "Request Validation Failed",
		Status: status,
		Detail: detail,
		Errors: result.Errors,
	}
}

// WriteResponse writes the error response as JSON to the http.ResponseWriter
func (e *ErrorResponse) WriteResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// NewRequiredError creates an error for a missing required field
func NewRequiredError(field, location string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeRequired,
		Message:  fmt.Sprintf("field '%s' is required", field),
		Expected: "non-empty value",
	}
}

// NewPatternError creates an error for regex pattern mismatch
func NewPatternError(field, location, pattern string, received interface{}) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodePattern,
		Message:  fmt.Sprintf("must match pattern '%s'", pattern),
		Received: received,
		Expected: fmt.Sprintf("pattern: %s", pattern),
	}
}

// NewEnumError creates an error for value not in enum
func NewEnumError(field, location string, allowed []string, received interface{}) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeEnum,
		Message:  fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		Received: received,
		Expected: fmt.Sprintf("one of: %s", strings.Join(allowed, ", ")),
	}
}

// NewReferenceError creates an error for a dangling cross-reference
func NewReferenceError(field, location string, received interface{}) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeReference,
		Message:  fmt.Sprintf("field '%s' references an unknown record", field),
		Received: received,
		Expected: "id of an existing record",
	}
}

// NewInvalidJSONError creates an error for malformed JSON
func NewInvalidJSONError(message string) *FieldError {
	return &FieldError{
		Field:    "",
		Location: LocationBody,
		Code:     ErrCodeInvalidJSON,
		Message:  fmt.Sprintf("invalid JSON: %s", message),
	}
}

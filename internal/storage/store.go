// Package storage provides the in-memory registry backing the endpoint
// configuration subsystem. Environments and endpoint definitions live behind
// a single lock so cross-collection operations (cascade deletes, atomic
// imports) never expose partial state.
package storage

import (
	"errors"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when operating on an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when a system-owned endpoint is
	// edited or deleted. Only status toggles and test results are allowed.
	ErrPermissionDenied = errors.New("system endpoint is protected")
)

// EnvironmentPatch is a partial update to an environment. Nil fields are
// left unchanged.
type EnvironmentPatch struct {
	Name        *string                   `json:"name,omitempty"`
	Description *string                   `json:"description,omitempty"`
	Kind        *endpoint.EnvironmentKind `json:"kind,omitempty"`
	Protocol    *endpoint.Protocol        `json:"protocol,omitempty"`
	BaseURL     *string                   `json:"baseUrl,omitempty"`
	APIPrefix   *bool                     `json:"apiPrefix,omitempty"`
	Version     *string                   `json:"version,omitempty"`
}

// DefinitionPatch is a partial update to an endpoint definition. Nil fields
// are left unchanged.
type DefinitionPatch struct {
	Method        *endpoint.Method `json:"method,omitempty"`
	EnvironmentID *string          `json:"environmentId,omitempty"`
	Path          *string          `json:"path,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Status        *endpoint.Status `json:"status,omitempty"`
	Parameters    *string          `json:"parameters,omitempty"`
	Auth          *endpoint.Auth   `json:"authentication,omitempty"`
	Body          *string          `json:"body,omitempty"`
	Script        *string          `json:"script,omitempty"`
}

// StatusOnly reports whether the patch touches nothing but the status field.
// System endpoints accept status-only patches and reject everything else.
func (p *DefinitionPatch) StatusOnly() bool {
	return p.Method == nil &&
		p.EnvironmentID == nil &&
		p.Path == nil &&
		p.Description == nil &&
		p.Parameters == nil &&
		p.Auth == nil &&
		p.Body == nil &&
		p.Script == nil
}

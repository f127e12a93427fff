// Package endpoint defines the core types of the endpoint configuration
// registry: API environments, endpoint definitions, and the pure URL builder
// that combines them with the active client configuration.
package endpoint

import (
	"regexp"
	"strings"
	"time"

	"github.com/routefleet/fleetd/pkg/validation"
)

// Method is an HTTP request method supported by endpoint definitions.
type Method string

// Supported methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists all supported methods in display order.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}
}

// IsValid returns true if the method is one of the supported methods.
func (m Method) IsValid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	default:
		return false
	}
}

// Status is the lifecycle state of an endpoint definition.
type Status string

// Endpoint statuses.
const (
	StatusActive     Status = "ACTIVE"
	StatusTesting    Status = "TESTING"
	StatusDeprecated Status = "DEPRECATED"
	StatusDisabled   Status = "DISABLED"
)

// IsValid returns true if the status is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusTesting, StatusDeprecated, StatusDisabled:
		return true
	default:
		return false
	}
}

// Owner distinguishes seeded system endpoints from user-created ones.
// System endpoints cannot be edited or deleted, only toggled and tested.
type Owner string

// Ownership variants.
const (
	OwnerSystem Owner = "system"
	OwnerUser   Owner = "user"
)

// EnvironmentKind classifies a target API deployment.
type EnvironmentKind string

// Environment kinds.
const (
	KindDevelopment EnvironmentKind = "development"
	KindStaging     EnvironmentKind = "staging"
	KindProduction  EnvironmentKind = "production"
	KindCustom      EnvironmentKind = "custom"
)

// IsValid returns true if the kind is a known environment kind.
func (k EnvironmentKind) IsValid() bool {
	switch k {
	case KindDevelopment, KindStaging, KindProduction, KindCustom:
		return true
	default:
		return false
	}
}

// Protocol is the URL scheme prefix for an environment.
// Values include the scheme separator so URL construction is plain
// concatenation ("https://" + baseUrl).
type Protocol string

// Protocols.
const (
	ProtocolHTTPS Protocol = "https://"
	ProtocolHTTP  Protocol = "http://"
)

// ParseProtocol normalizes a protocol string, accepting both "https" and
// "https://" spellings. Unrecognized values default to HTTPS.
func ParseProtocol(s string) Protocol {
	switch s {
	case "http", "http://":
		return ProtocolHTTP
	default:
		return ProtocolHTTPS
	}
}

// TestOutcome is the recorded result of the most recent live test.
type TestOutcome string

// Test outcomes.
const (
	TestSuccess TestOutcome = "success"
	TestFailure TestOutcome = "failure"
)

// baseURLPattern restricts environment hosts to a URL-safe character set.
// The first character must be alphanumeric so schemes and leading slashes
// cannot sneak into the host field.
var baseURLPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:/-]*$`)

// Environment is a named target API deployment (host plus path conventions).
type Environment struct {
	// ID is a unique identifier, generated on create.
	ID string `json:"id" yaml:"id"`

	// Name is a human-readable label, required.
	Name string `json:"name" yaml:"name"`

	// Description is an optional longer description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Kind classifies the deployment (development, staging, production, custom).
	Kind EnvironmentKind `json:"kind" yaml:"kind"`

	// Protocol is the URL scheme ("https://" or "http://").
	Protocol Protocol `json:"protocol" yaml:"protocol"`

	// BaseURL is the host, optionally with a path ("api.example.com/fleet").
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// APIPrefix includes the "/api" segment after the host when true.
	APIPrefix bool `json:"apiPrefix" yaml:"apiPrefix"`

	// Version is an optional version path fragment ("/v1/").
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// CreatedAt is when the environment was created.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`

	// UpdatedAt is when the environment was last modified.
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Validate checks the environment invariants: name and baseUrl must be
// non-empty and baseUrl must match the restricted URL character set.
func (e *Environment) Validate() *validation.Result {
	result := validation.OK()
	if e.Name == "" {
		result.AddError(validation.NewRequiredError("name", validation.LocationBody))
	}
	if e.BaseURL == "" {
		result.AddError(validation.NewRequiredError("baseUrl", validation.LocationBody))
	} else if !baseURLPattern.MatchString(e.BaseURL) {
		result.AddError(validation.NewPatternError("baseUrl", validation.LocationBody, baseURLPattern.String(), e.BaseURL))
	}
	if e.Kind != "" && !e.Kind.IsValid() {
		result.AddError(validation.NewEnumError("kind", validation.LocationBody,
			[]string{string(KindDevelopment), string(KindStaging), string(KindProduction), string(KindCustom)}, string(e.Kind)))
	}
	return result
}

// Clone returns a deep copy of the environment.
func (e *Environment) Clone() *Environment {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Definition is one HTTP route definition, optionally bound to an
// Environment. Unbound definitions fall back to the active client
// configuration when a URL is built for them.
type Definition struct {
	// ID is a unique identifier, generated on create.
	ID string `json:"id" yaml:"id"`

	// Method is the HTTP method.
	Method Method `json:"method" yaml:"method"`

	// EnvironmentID references the bound environment ("" = active client config).
	EnvironmentID string `json:"environmentId,omitempty" yaml:"environmentId,omitempty"`

	// Path is the route path, required ("/drivers/:id").
	Path string `json:"path" yaml:"path"`

	// Description is an optional human-readable summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Status is the lifecycle state.
	Status Status `json:"status" yaml:"status"`

	// Owner marks seeded system endpoints, which are immutable apart from
	// status and test-result fields.
	Owner Owner `json:"owner" yaml:"owner"`

	// Parameters is raw JSON text describing request parameters.
	Parameters string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Auth is the authentication requirement for this endpoint.
	Auth Auth `json:"authentication" yaml:"authentication"`

	// Body is raw JSON text used as the request body when testing.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Script is an optional assertion script evaluated against live test
	// results to decide success (see pkg/tester).
	Script string `json:"script,omitempty" yaml:"script,omitempty"`

	// LastTested is the timestamp of the most recent live test, if any.
	LastTested *time.Time `json:"lastTested,omitempty" yaml:"lastTested,omitempty"`

	// LastTestResult is the outcome of the most recent live test, if any.
	LastTestResult TestOutcome `json:"lastTestResult,omitempty" yaml:"lastTestResult,omitempty"`

	// CreatedAt is when the definition was created.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`

	// UpdatedAt is when the definition was last modified.
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// System returns true for seeded system endpoints.
func (d *Definition) System() bool {
	return d.Owner == OwnerSystem
}

// Validate checks the definition invariants: path must be non-empty and
// method/status must be recognized when set.
func (d *Definition) Validate() *validation.Result {
	result := validation.OK()
	if strings.TrimSpace(d.Path) == "" {
		result.AddError(validation.NewRequiredError("path", validation.LocationBody))
	}
	if d.Method != "" && !d.Method.IsValid() {
		allowed := make([]string, 0, len(Methods()))
		for _, m := range Methods() {
			allowed = append(allowed, string(m))
		}
		result.AddError(validation.NewEnumError("method", validation.LocationBody, allowed, string(d.Method)))
	}
	if d.Status != "" && !d.Status.IsValid() {
		result.AddError(validation.NewEnumError("status", validation.LocationBody,
			[]string{string(StatusActive), string(StatusTesting), string(StatusDeprecated), string(StatusDisabled)}, string(d.Status)))
	}
	return result
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	cp := *d
	if d.LastTested != nil {
		t := *d.LastTested
		cp.LastTested = &t
	}
	return &cp
}

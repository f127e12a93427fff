// Package diff computes and applies changes to the active HTTP client
// configuration. Preview is read-only; Apply is the single place in the
// subsystem that mutates process-wide shared state, and it does so as one
// atomic swap.
package diff

import (
	"log/slog"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/httpclient"
	"github.com/routefleet/fleetd/pkg/logging"
)

// Preview shows the active client configuration next to the configuration
// an environment would apply. Nothing is mutated to produce it.
type Preview struct {
	Current  endpoint.BaseConfig `json:"current"`
	Proposed endpoint.BaseConfig `json:"proposed"`
}

// Changed reports whether applying would change anything.
func (p *Preview) Changed() bool {
	return p.Current != p.Proposed
}

// Engine diffs and applies environment configurations against the active
// client configuration.
type Engine struct {
	reg    *storage.Registry
	active *httpclient.Active
	log    *slog.Logger
}

// NewEngine creates an Engine over the given registry and active config.
func NewEngine(reg *storage.Registry, active *httpclient.Active, log *slog.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{reg: reg, active: active, log: log}
}

// Preview returns the current and proposed base configurations for the named
// environment. Returns storage.ErrNotFound for an unknown environment.
func (e *Engine) Preview(envID string) (*Preview, error) {
	env := e.reg.GetEnvironment(envID)
	if env == nil {
		return nil, storage.ErrNotFound
	}
	return &Preview{
		Current:  e.active.Config(),
		Proposed: env.Base(),
	}, nil
}

// Apply swaps the active client configuration to match the named
// environment. Returns false, never an error, when the environment cannot be
// found or its constructed configuration is unusable.
func (e *Engine) Apply(envID string) bool {
	env := e.reg.GetEnvironment(envID)
	if env == nil {
		e.log.Warn("apply skipped, environment not found", "environmentId", envID)
		return false
	}
	proposed := env.Base()
	if proposed.BaseURL == "" || !env.Validate().Valid {
		e.log.Warn("apply skipped, environment has invalid base configuration", "environmentId", envID)
		return false
	}
	e.active.Swap(proposed)
	e.log.Info("active client configuration applied",
		"environmentId", envID,
		"name", env.Name,
		"baseURL", proposed.BaseURL,
		"apiPrefix", proposed.APIPrefix)
	return true
}

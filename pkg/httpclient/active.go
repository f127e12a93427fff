// Package httpclient holds the process-wide base configuration of the
// application's HTTP client. The configuration is set once at startup and
// swapped only by the environment apply operation, always as a single
// indivisible assignment.
package httpclient

import (
	"sync/atomic"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// Active is the mutable holder of the client base configuration. Reads and
// swaps go through an atomic pointer, so observers never see a state where
// the base URL and the prefix disagree.
type Active struct {
	cfg atomic.Pointer[endpoint.BaseConfig]
}

// NewActive creates an Active holder with the given initial configuration.
func NewActive(cfg endpoint.BaseConfig) *Active {
	a := &Active{}
	a.cfg.Store(&cfg)
	return a
}

// Config returns the current base configuration.
func (a *Active) Config() endpoint.BaseConfig {
	return *a.cfg.Load()
}

// Swap replaces the base configuration in one atomic step.
func (a *Active) Swap(cfg endpoint.BaseConfig) {
	a.cfg.Store(&cfg)
}

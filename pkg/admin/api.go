// Package admin provides the REST API for managing endpoint configuration:
// environments, endpoint definitions, live tests, client-config diff/apply,
// import/export, and the endpoint-constants catalog.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/catalog"
	"github.com/routefleet/fleetd/pkg/diff"
	"github.com/routefleet/fleetd/pkg/httpclient"
	"github.com/routefleet/fleetd/pkg/logging"
	"github.com/routefleet/fleetd/pkg/portability"
	"github.com/routefleet/fleetd/pkg/tester"
)

// AdminAPI exposes the endpoint configuration REST API.
type AdminAPI struct {
	reg    *storage.Registry
	active *httpclient.Active
	differ *diff.Engine
	porter *portability.Engine
	tester *tester.Tester
	table  *catalog.Table

	httpServer *http.Server
	addr       string
	startTime  time.Time
	version    string
	testClient *http.Client
	log        *slog.Logger
}

// Option configures the AdminAPI.
type Option func(*AdminAPI)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *AdminAPI) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVersion sets the version string reported by the status endpoint.
func WithVersion(v string) Option {
	return func(a *AdminAPI) {
		a.version = v
	}
}

// WithCatalog replaces the built-in endpoint-constants table.
func WithCatalog(t *catalog.Table) Option {
	return func(a *AdminAPI) {
		if t != nil {
			a.table = t
		}
	}
}

// WithTestClient sets the HTTP client used for live endpoint tests.
func WithTestClient(c *http.Client) Option {
	return func(a *AdminAPI) {
		a.testClient = c
	}
}

// New creates an AdminAPI bound to the given registry and active client
// configuration.
func New(addr string, reg *storage.Registry, active *httpclient.Active, opts ...Option) *AdminAPI {
	a := &AdminAPI{
		reg:    reg,
		active: active,
		addr:   addr,
		table:  catalog.Default(),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.differ = diff.NewEngine(reg, active, a.log)
	a.porter = portability.NewEngine(reg, a.log)
	a.tester = tester.New(a.testClient, a.log)

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	a.httpServer = &http.Server{
		Addr:         addr,
		Handler:      a.withMiddleware(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return a
}

// Handler returns the fully wired HTTP handler. Used by tests to exercise
// the API without a listener.
func (a *AdminAPI) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start starts the admin API server in the background.
func (a *AdminAPI) Start() error {
	a.startTime = time.Now()
	a.log.Info("starting admin API", "addr", a.addr)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("admin API error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the admin API server.
func (a *AdminAPI) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.httpServer.Shutdown(ctx)
}

// Uptime returns the API uptime in seconds.
func (a *AdminAPI) Uptime() int {
	return int(time.Since(a.startTime).Seconds())
}

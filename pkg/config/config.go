// Package config loads the fleetd server configuration from JSON or YAML
// files: admin listener settings, logging, the initial active client
// configuration, and seed environments plus system endpoints.
package config

import (
	"fmt"
	"strings"

	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/validation"
)

// Config is the full server configuration.
type Config struct {
	// Admin configures the admin API listener.
	Admin AdminConfig `json:"admin" yaml:"admin"`

	// Log configures structured logging.
	Log LogConfig `json:"log" yaml:"log"`

	// Client is the initial active client configuration. Diff/apply swaps
	// it at runtime; this is only the boot value.
	Client endpoint.BaseConfig `json:"client" yaml:"client"`

	// Environments are seeded into the registry at startup.
	Environments []*endpoint.Environment `json:"environments" yaml:"environments"`

	// SystemEndpoints are seeded as system-owned endpoints. The owner field
	// is forced to "system" regardless of what the file says.
	SystemEndpoints []*endpoint.Definition `json:"systemEndpoints" yaml:"systemEndpoints"`
}

// AdminConfig configures the admin API listener.
type AdminConfig struct {
	// Host is the bind address. Empty binds all interfaces.
	Host string `json:"host" yaml:"host"`

	// Port is the admin API port.
	Port int `json:"port" yaml:"port"`
}

// Addr returns the host:port bind address.
func (a AdminConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// LogConfig configures structured logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`

	// File duplicates log output to the given path when set.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Admin: AdminConfig{
			Host: "127.0.0.1",
			Port: 4780,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Client: endpoint.BaseConfig{
			BaseURL:   "http://localhost:8080",
			APIPrefix: "/api/v1",
		},
	}
}

// Validate checks the configuration for structural problems. Seed records
// are validated with the same rules the registry applies, so a config that
// validates here also seeds cleanly.
func (c *Config) Validate() error {
	result := validation.OK()

	if c.Admin.Port < 1 || c.Admin.Port > 65535 {
		result.AddError(validation.NewEnumError("admin.port", validation.LocationBody,
			[]string{"1-65535"}, fmt.Sprintf("%d", c.Admin.Port)))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		result.AddError(validation.NewEnumError("log.level", validation.LocationBody,
			[]string{"debug", "info", "warn", "error"}, c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		result.AddError(validation.NewEnumError("log.format", validation.LocationBody,
			[]string{"text", "json"}, c.Log.Format))
	}
	if strings.TrimSpace(c.Client.BaseURL) == "" {
		result.AddError(validation.NewRequiredError("client.baseURL", validation.LocationBody))
	}

	seen := make(map[string]bool, len(c.Environments))
	for i, env := range c.Environments {
		result.Merge(prefixFields(env.Validate(), fmt.Sprintf("environments[%d]", i)))
		if env.ID != "" && seen[env.ID] {
			result.AddError(validation.NewPatternError(
				fmt.Sprintf("environments[%d].id", i), validation.LocationBody, "unique id", env.ID))
		}
		seen[env.ID] = true
	}
	for i, def := range c.SystemEndpoints {
		result.Merge(prefixFields(def.Validate(), fmt.Sprintf("systemEndpoints[%d]", i)))
	}

	return result.Err()
}

// prefixFields rewrites each field error's field name under the given prefix.
func prefixFields(r *validation.Result, prefix string) *validation.Result {
	for _, fe := range r.Errors {
		fe.Field = prefix + "." + fe.Field
	}
	return r
}

// Normalize applies defaults and forces the invariants the loader
// guarantees: system endpoints are owned by the system, environment
// protocols are canonical.
func (c *Config) Normalize() {
	for _, env := range c.Environments {
		env.Protocol = endpoint.ParseProtocol(string(env.Protocol))
	}
	for _, def := range c.SystemEndpoints {
		def.Owner = endpoint.OwnerSystem
		if def.Status == "" {
			def.Status = endpoint.StatusActive
		}
	}
}

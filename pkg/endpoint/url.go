package endpoint

import "strings"

// BaseConfig is the base URL pair of the application's HTTP client: the
// host part and the prefix inserted between host and endpoint path.
type BaseConfig struct {
	// BaseURL is the scheme plus host ("https://api.example.com").
	BaseURL string `json:"baseURL" yaml:"baseURL"`

	// APIPrefix is the path fragment between host and endpoint path ("/api/v1").
	APIPrefix string `json:"apiPrefix" yaml:"apiPrefix"`
}

// Base returns the constructed base configuration for an environment:
// protocol + host as BaseURL, "/api" segment plus version fragment as the
// prefix. BuildURL for an environment-bound endpoint and a fallback URL
// built from this config agree by construction.
func (e *Environment) Base() BaseConfig {
	prefix := ""
	if e.APIPrefix {
		prefix = "/api"
	}
	if v := normalizeVersion(e.Version); v != "" {
		prefix += v
	}
	return BaseConfig{
		BaseURL:   string(e.Protocol) + e.BaseURL,
		APIPrefix: prefix,
	}
}

// BuildURL constructs the full request URL for a definition. When the
// definition is bound to a known environment, the URL is assembled from that
// environment's fields; otherwise the active client configuration is used.
// Pure and deterministic: no network or state access.
func BuildURL(d *Definition, envs []*Environment, active BaseConfig) string {
	if d.EnvironmentID != "" {
		for _, env := range envs {
			if env.ID == d.EnvironmentID {
				base := env.Base()
				return base.BaseURL + base.APIPrefix + d.Path
			}
		}
	}
	return active.BaseURL + active.APIPrefix + d.Path
}

// normalizeVersion turns a version fragment like "v1", "/v1" or "/v1/" into
// "/v1". A bare "/" or empty fragment yields "".
func normalizeVersion(v string) string {
	v = strings.Trim(strings.TrimSpace(v), "/")
	if v == "" {
		return ""
	}
	return "/" + v
}

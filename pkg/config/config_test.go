package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:4780", cfg.Admin.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, "/api/v1", cfg.Client.APIPrefix)
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeTemp(t, "fleetd.yaml", `
admin:
  host: 0.0.0.0
  port: 9090
log:
  level: debug
  format: json
client:
  baseURL: https://api.example.com
  apiPrefix: /api/v1
environments:
  - id: prod
    name: Production
    baseUrl: api.example.com
    kind: production
    protocol: https
    apiPrefix: true
    version: v1
systemEndpoints:
  - method: GET
    path: /health
    owner: user
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Admin.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Environments, 1)
	assert.Equal(t, endpoint.ProtocolHTTPS, cfg.Environments[0].Protocol)

	// The loader forces system ownership on seeded endpoints.
	require.Len(t, cfg.SystemEndpoints, 1)
	assert.Equal(t, endpoint.OwnerSystem, cfg.SystemEndpoints[0].Owner)
	assert.Equal(t, endpoint.StatusActive, cfg.SystemEndpoints[0].Status)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeTemp(t, "fleetd.json", `{
		"admin": {"host": "127.0.0.1", "port": 4780},
		"client": {"baseURL": "https://api.example.com", "apiPrefix": ""}
	}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Client.BaseURL)
	// Unset sections keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFromFile(writeTemp(t, "empty.json", ""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = LoadFromFile(writeTemp(t, "bad.json", "{not json"))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = LoadFromFile(writeTemp(t, "bad.yaml", "admin: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Admin.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Client.BaseURL = "  "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Environments = []*endpoint.Environment{{Name: "", BaseURL: "x.example.com"}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsDuplicateEnvironmentIDs(t *testing.T) {
	cfg := Default()
	cfg.Environments = []*endpoint.Environment{
		{ID: "e1", Name: "One", BaseURL: "one.example.com"},
		{ID: "e1", Name: "Two", BaseURL: "two.example.com"},
	}
	assert.Error(t, cfg.Validate())
}

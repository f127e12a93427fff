package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/httpclient"
)

func TestPreviewDoesNotMutate(t *testing.T) {
	reg := storage.NewRegistry()
	id, err := reg.SaveEnvironment(&endpoint.Environment{
		Name:      "Prod",
		BaseURL:   "api.example.com",
		APIPrefix: true,
		Version:   "/v1/",
	})
	require.NoError(t, err)

	initial := endpoint.BaseConfig{BaseURL: "http://localhost:8080", APIPrefix: "/api"}
	active := httpclient.NewActive(initial)
	engine := NewEngine(reg, active, nil)

	preview, err := engine.Preview(id)
	require.NoError(t, err)
	assert.Equal(t, initial, preview.Current)
	assert.Equal(t, endpoint.BaseConfig{BaseURL: "https://api.example.com", APIPrefix: "/api/v1"}, preview.Proposed)
	assert.True(t, preview.Changed())

	assert.Equal(t, initial, active.Config(), "preview must not mutate the active config")
}

func TestPreviewUnknownEnvironment(t *testing.T) {
	engine := NewEngine(storage.NewRegistry(), httpclient.NewActive(endpoint.BaseConfig{}), nil)
	_, err := engine.Preview("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestApplySwapsAtomically(t *testing.T) {
	reg := storage.NewRegistry()
	id, err := reg.SaveEnvironment(&endpoint.Environment{
		Name:      "Staging",
		Protocol:  endpoint.ProtocolHTTP,
		BaseURL:   "staging.example.com",
		APIPrefix: true,
	})
	require.NoError(t, err)

	active := httpclient.NewActive(endpoint.BaseConfig{BaseURL: "http://localhost", APIPrefix: ""})
	engine := NewEngine(reg, active, nil)

	require.True(t, engine.Apply(id))
	got := active.Config()
	assert.Equal(t, "http://staging.example.com", got.BaseURL)
	assert.Equal(t, "/api", got.APIPrefix)
}

func TestApplyUnknownEnvironmentReturnsFalse(t *testing.T) {
	initial := endpoint.BaseConfig{BaseURL: "http://localhost", APIPrefix: "/api"}
	active := httpclient.NewActive(initial)
	engine := NewEngine(storage.NewRegistry(), active, nil)

	assert.False(t, engine.Apply("missing"))
	assert.Equal(t, initial, active.Config(), "failed apply must leave the config untouched")
}

package cli

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/admin"
	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/httpclient"
)

// newTestServer runs the admin API behind an httptest server.
func newTestServer(t *testing.T) (*httptest.Server, *storage.Registry) {
	t.Helper()
	reg := storage.NewRegistry()
	active := httpclient.NewActive(endpoint.BaseConfig{BaseURL: "http://localhost:8080"})
	api := admin.New("127.0.0.1:0", reg, active)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return srv, reg
}

func TestClientHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(srv.URL)
	require.NoError(t, client.Health())

	bad := NewClient("http://127.0.0.1:1")
	assert.Error(t, bad.Health())
}

func TestClientExportValidateImport(t *testing.T) {
	srv, reg := newTestServer(t)
	_, err := reg.SaveEnvironment(&endpoint.Environment{Name: "Prod", BaseURL: "api.example.com"})
	require.NoError(t, err)

	client := NewClient(srv.URL)
	data, err := client.Export()
	require.NoError(t, err)

	preview, err := client.Validate(data)
	require.NoError(t, err)
	assert.True(t, preview.Valid)
	require.Len(t, preview.Environments, 1)
	assert.Equal(t, "Prod", preview.Environments[0].Name)

	srv2, reg2 := newTestServer(t)
	result, err := NewClient(srv2.URL).Import(data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Environments)

	envs, _ := reg2.Snapshot()
	require.Len(t, envs, 1)
	assert.Equal(t, "Prod", envs[0].Name)
}

func TestClientCreateEndpointAndListEnvironments(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(srv.URL)

	created, err := client.CreateEndpoint(&endpoint.Definition{
		Method: endpoint.MethodPost,
		Path:   "/drivers",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Validation errors surface with the server's detail message.
	_, err = client.CreateEndpoint(&endpoint.Definition{Method: endpoint.MethodGet, Path: ""})
	require.Error(t, err)

	envs, err := client.ListEnvironments()
	require.NoError(t, err)
	assert.Empty(t, envs)
}

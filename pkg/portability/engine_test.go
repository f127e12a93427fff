package portability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
)

func seededRegistry(t *testing.T) (*storage.Registry, string) {
	t.Helper()
	reg := storage.NewRegistry()
	envID, err := reg.SaveEnvironment(&endpoint.Environment{
		Name:    "Production",
		BaseURL: "api.example.com",
		Kind:    endpoint.KindProduction,
	})
	require.NoError(t, err)
	_, err = reg.SaveEndpoint(&endpoint.Definition{
		Method:        endpoint.MethodGet,
		Path:          "/drivers",
		EnvironmentID: envID,
	})
	require.NoError(t, err)
	return reg, envID
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"native by tag", `{"format":"fleetd-config","version":"1.0"}`, FormatNative},
		{"native by shape", `{"version":"1.0","environments":[],"endpoints":[]}`, FormatNative},
		{"openapi", `{"openapi":"3.0.0","paths":{}}`, FormatOpenAPI},
		{"swagger", `{"swagger":"2.0"}`, FormatOpenAPI},
		{"postman", `{"info":{"name":"c"},"item":[]}`, FormatPostman},
		{"unknown object", `{"foo":"bar"}`, FormatUnknown},
		{"not json", `not json`, FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.data)))
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	reg, _ := seededRegistry(t)
	eng := NewEngine(reg, nil)

	doc := eng.Export()
	assert.Equal(t, NativeFormatTag, doc.Format)
	assert.Equal(t, NativeVersion, doc.Version)
	require.Len(t, doc.Environments, 1)
	require.Len(t, doc.Endpoints, 1)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	fresh := storage.NewRegistry()
	envs, eps, err := NewEngine(fresh, nil).ImportNative(data)
	require.NoError(t, err)
	assert.Equal(t, 1, envs)
	assert.Equal(t, 1, eps)

	gotEnvs, gotEps := fresh.Snapshot()
	require.Len(t, gotEnvs, 1)
	assert.Equal(t, "Production", gotEnvs[0].Name)
	require.Len(t, gotEps, 1)
	assert.Equal(t, "/drivers", gotEps[0].Path)
	assert.Equal(t, gotEnvs[0].ID, gotEps[0].EnvironmentID)
}

func TestImportNativeAllOrNothing(t *testing.T) {
	reg, _ := seededRegistry(t)
	eng := NewEngine(reg, nil)

	// Second endpoint has an empty path, so nothing must change.
	payload := `{
		"format": "fleetd-config",
		"version": "1.0",
		"environments": [{"id": "e1", "name": "Stage", "baseUrl": "stage.example.com"}],
		"endpoints": [
			{"method": "GET", "path": "/a", "environmentId": "e1"},
			{"method": "GET", "path": " ", "environmentId": "e1"}
		]
	}`
	_, _, err := eng.ImportNative([]byte(payload))
	require.Error(t, err)

	envs, eps := reg.Snapshot()
	assert.Len(t, envs, 1)
	require.Len(t, eps, 1)
	assert.Equal(t, "/drivers", eps[0].Path)
}

func TestImportNativeRejectsDanglingReference(t *testing.T) {
	reg := storage.NewRegistry()
	payload := `{
		"format": "fleetd-config",
		"version": "1.0",
		"environments": [],
		"endpoints": [{"method": "GET", "path": "/a", "environmentId": "missing"}]
	}`
	_, _, err := NewEngine(reg, nil).ImportNative([]byte(payload))
	require.Error(t, err)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, FormatNative, importErr.Format)
}

func TestValidateImportNeverMutates(t *testing.T) {
	reg, _ := seededRegistry(t)
	eng := NewEngine(reg, nil)

	payload, err := json.Marshal(eng.Export())
	require.NoError(t, err)

	preview := eng.ValidateImport(payload)
	assert.True(t, preview.Valid)
	assert.Equal(t, FormatNative, preview.Format)
	require.Len(t, preview.Environments, 1)
	assert.Equal(t, "Production", preview.Environments[0].Name)
	require.Len(t, preview.Endpoints, 1)
	assert.Equal(t, "/drivers", preview.Endpoints[0].Path)
	assert.Equal(t, []string{"GET /drivers"}, preview.Duplicates)

	envs, eps := reg.Snapshot()
	assert.Len(t, envs, 1)
	assert.Len(t, eps, 1)
}

func TestValidateImportMirrorsCommit(t *testing.T) {
	eng := NewEngine(storage.NewRegistry(), nil)

	// A whitespace-only path previews invalid, exactly as ImportNative
	// would reject it.
	blankPath := `{
		"format": "fleetd-config",
		"version": "1.0",
		"environments": [],
		"endpoints": [{"method": "GET", "path": " "}]
	}`
	preview := eng.ValidateImport([]byte(blankPath))
	assert.False(t, preview.Valid)
	assert.Contains(t, preview.Error, "path")
	_, _, err := eng.ImportNative([]byte(blankPath))
	require.Error(t, err)

	// So does an endpoint referencing an environment the document does not
	// carry.
	dangling := `{
		"format": "fleetd-config",
		"version": "1.0",
		"environments": [],
		"endpoints": [{"method": "GET", "path": "/a", "environmentId": "missing"}]
	}`
	preview = eng.ValidateImport([]byte(dangling))
	assert.False(t, preview.Valid)
	assert.Contains(t, preview.Error, "environmentId")
	_, _, err = eng.ImportNative([]byte(dangling))
	require.Error(t, err)
}

func TestValidateImportBadPayload(t *testing.T) {
	eng := NewEngine(storage.NewRegistry(), nil)

	preview := eng.ValidateImport([]byte(`{"format":"fleetd-config"}`))
	assert.False(t, preview.Valid)
	assert.Equal(t, FormatNative, preview.Format)
	assert.NotEmpty(t, preview.Error)

	preview = eng.ValidateImport([]byte(`{"mystery":true}`))
	assert.False(t, preview.Valid)
	assert.Equal(t, FormatUnknown, preview.Format)
}

const postmanCollection = `{
	"info": {
		"name": "Fleet API",
		"schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
	},
	"variable": [{"key": "base", "value": "api.example.com"}],
	"item": [
		{
			"name": "Drivers",
			"item": [
				{
					"name": "List drivers",
					"request": {
						"method": "GET",
						"url": {"raw": "https://{{base}}/api/v1/drivers", "path": ["api", "v1", "drivers"]}
					}
				},
				{
					"name": "Create driver",
					"request": {
						"method": "POST",
						"url": {"path": ["api", "v1", "drivers"]},
						"body": {"mode": "raw", "raw": "{\"host\":\"{{base}}\"}"},
						"auth": {"type": "bearer", "bearer": [{"key": "token", "value": "tok-123"}]}
					}
				}
			]
		},
		{
			"name": "Health",
			"request": {
				"method": "GET",
				"url": {"raw": "https://{{base}}/health"}
			}
		}
	]
}`

func TestImportPostman(t *testing.T) {
	reg, envID := seededRegistry(t)
	eng := NewEngine(reg, nil)

	count, err := eng.ImportPostman([]byte(postmanCollection), envID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, eps := reg.Snapshot()
	byPath := make(map[string]*endpoint.Definition)
	for _, def := range eps {
		byPath[string(def.Method)+" "+def.Path] = def
	}

	list, ok := byPath["GET /api/v1/drivers"]
	require.True(t, ok)
	assert.Equal(t, envID, list.EnvironmentID)
	assert.Equal(t, endpoint.StatusTesting, list.Status)

	create, ok := byPath["POST /api/v1/drivers"]
	require.True(t, ok)
	assert.Equal(t, endpoint.AuthBearer, create.Auth.Type)
	assert.Equal(t, "tok-123", create.Auth.Value)
	assert.Equal(t, `{"host":"api.example.com"}`, create.Body)

	health, ok := byPath["GET /health"]
	require.True(t, ok)
	assert.Equal(t, "Health", health.Description)
}

func TestImportPostmanUnknownEnvironment(t *testing.T) {
	reg, _ := seededRegistry(t)
	_, err := NewEngine(reg, nil).ImportPostman([]byte(postmanCollection), "nope")
	require.Error(t, err)

	_, eps := reg.Snapshot()
	assert.Len(t, eps, 1)
}

func TestImportPostmanRejectsForeignSchema(t *testing.T) {
	_, err := parsePostman([]byte(`{"info":{"name":"x","schema":"https://example.com/other"},"item":[]}`))
	require.Error(t, err)
}

const openAPIDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "Fleet", "version": "1"},
	"paths": {
		"/drivers/{driverId}": {
			"get": {"summary": "Get driver"},
			"delete": {"operationId": "deleteDriver"}
		},
		"/drivers": {
			"post": {"summary": "Create driver"}
		}
	}
}`

func TestImportOpenAPI(t *testing.T) {
	reg, envID := seededRegistry(t)
	count, err := NewEngine(reg, nil).ImportOpenAPI([]byte(openAPIDoc), envID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, eps := reg.Snapshot()
	paths := make(map[string]endpoint.Method)
	descs := make(map[string]string)
	for _, def := range eps {
		if def.EnvironmentID != envID || def.Path == "/drivers" && def.Method == endpoint.MethodGet {
			continue
		}
		paths[string(def.Method)+" "+def.Path] = def.Method
		descs[string(def.Method)+" "+def.Path] = def.Description
	}

	assert.Contains(t, paths, "GET /drivers/:driverId")
	assert.Contains(t, paths, "DELETE /drivers/:driverId")
	assert.Contains(t, paths, "POST /drivers")
	assert.Equal(t, "Get driver", descs["GET /drivers/:driverId"])
	assert.Equal(t, "deleteDriver", descs["DELETE /drivers/:driverId"])
}

func TestPreviewDuplicatesForPostman(t *testing.T) {
	reg, envID := seededRegistry(t)
	eng := NewEngine(reg, nil)

	count, err := eng.ImportPostman([]byte(postmanCollection), envID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	preview := eng.ValidateImport([]byte(postmanCollection))
	assert.True(t, preview.Valid)
	assert.Equal(t, FormatPostman, preview.Format)
	assert.Len(t, preview.Endpoints, 3)
	assert.Len(t, preview.Duplicates, 3)
}

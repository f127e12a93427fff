package tester

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

func TestTestSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"drivers":[{"id":"d1"}]}`))
	}))
	defer srv.Close()

	res := New(srv.Client(), nil).Test(context.Background(), endpoint.MethodGet, srv.URL+"/drivers", "")
	assert.Equal(t, 200, res.Status)
	assert.True(t, res.OK())
	assert.GreaterOrEqual(t, res.Duration, int64(0))

	body, ok := res.Data.(map[string]interface{})
	require.True(t, ok, "JSON body should be decoded")
	assert.Contains(t, body, "drivers")
}

func TestTestSendsJSONBody(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	res := New(srv.Client(), nil).Test(context.Background(), endpoint.MethodPost, srv.URL, `{"name":"Ada"}`)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.JSONEq(t, `{"name":"Ada"}`, string(gotBody))
	assert.Equal(t, "application/json", gotContentType)
}

func TestTestTransportFailureNeverErrors(t *testing.T) {
	res := New(nil, nil).Test(context.Background(), endpoint.MethodGet, "http://unreachable.invalid/x", "")

	assert.Equal(t, 0, res.Status)
	assert.False(t, res.OK())
	assert.GreaterOrEqual(t, res.Duration, int64(0))

	payload, ok := res.Data.(map[string]string)
	require.True(t, ok)
	assert.NotEmpty(t, payload["error"])
}

func TestTestNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	res := New(srv.Client(), nil).Test(context.Background(), endpoint.MethodGet, srv.URL, "")
	assert.Equal(t, "plain text", res.Data)
}

func TestResultOK(t *testing.T) {
	tests := []struct {
		status int
		ok     bool
	}{
		{200, true},
		{201, true},
		{399, true},
		{400, false},
		{404, false},
		{500, false},
		{0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, Result{Status: tt.status}.OK(), "status %d", tt.status)
	}
}

func resultWithJSON(t *testing.T, status int, body string) Result {
	t.Helper()
	var data interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	return Result{Status: status, Data: data}
}

func TestEvaluateScript(t *testing.T) {
	res := resultWithJSON(t, 200, `{"drivers":[{"id":"d1","active":true}]}`)

	tests := []struct {
		name   string
		script string
		want   bool
	}{
		{"status check", `status == 200`, true},
		{"status mismatch", `status == 404`, false},
		{"jsonpath hit", `jsonpath("$.drivers[0].id") == "d1"`, true},
		{"jsonpath miss is nil", `jsonpath("$.vehicles") == nil`, true},
		{"combined", `status < 400 && jsonpath("$.drivers[0].active") == true`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateScript(tt.script, res)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateScriptErrors(t *testing.T) {
	res := Result{Status: 200}
	_, err := EvaluateScript(`status ==`, res)
	assert.Error(t, err, "unparseable script must error, not panic")
}

func TestOutcome(t *testing.T) {
	tr := New(nil, nil)

	assert.Equal(t, endpoint.TestSuccess, tr.Outcome(Result{Status: 201}, ""))
	assert.Equal(t, endpoint.TestFailure, tr.Outcome(Result{Status: 503}, ""))
	assert.Equal(t, endpoint.TestFailure, tr.Outcome(Result{Status: 0}, ""))

	// Script overrides the HTTP success window.
	assert.Equal(t, endpoint.TestFailure, tr.Outcome(Result{Status: 200}, `status == 418`))
	assert.Equal(t, endpoint.TestSuccess, tr.Outcome(Result{Status: 418}, `status == 418`))

	// Broken scripts count as failure.
	assert.Equal(t, endpoint.TestFailure, tr.Outcome(Result{Status: 200}, `nonsense(`))
}

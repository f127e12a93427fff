// Package tester issues live HTTP requests against configured endpoints and
// reports status, body, and wall-clock latency. Transport failures are
// captured into the result payload instead of being returned as errors, so
// callers always get a result with a measurable duration.
package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/logging"
)

// maxBodyBytes caps how much of a response body is read into a test result.
const maxBodyBytes = 1 << 20

// Result is the outcome of a single live test.
type Result struct {
	// Status is the HTTP status code, or 0 when the request never produced
	// a response (DNS failure, connection refused, timeout).
	Status int `json:"status"`

	// Data is the parsed JSON response body when the body is valid JSON,
	// the raw body string otherwise, or an error payload on transport
	// failure.
	Data interface{} `json:"data"`

	// Duration is the wall-clock request time in milliseconds.
	Duration int64 `json:"duration"`
}

// OK reports whether the status indicates success. Statuses outside
// [200,400) are failures, including the 0 transport-failure case.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 400
}

// Tester performs live endpoint tests. One attempt per invocation, no
// retries; concurrent invocations are independent.
type Tester struct {
	client *http.Client
	log    *slog.Logger
}

// New creates a Tester. A nil client falls back to http.DefaultClient.
func New(client *http.Client, log *slog.Logger) *Tester {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Tester{client: client, log: log}
}

// Test issues one HTTP request and returns the result. Transport-level
// failures yield Status 0 with the error captured in Data; Test itself
// never returns an error for them.
func (t *Tester) Test(ctx context.Context, method endpoint.Method, url string, body string) Result {
	start := time.Now()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequestWithContext(ctx, string(method), url, reader)
	if err != nil {
		return Result{
			Status:   0,
			Data:     map[string]string{"error": err.Error()},
			Duration: time.Since(start).Milliseconds(),
		}
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		t.log.Debug("live test transport failure", "method", method, "url", url, "error", err)
		return Result{
			Status:   0,
			Data:     map[string]string{"error": err.Error()},
			Duration: duration,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		raw = nil
	}

	t.log.Debug("live test completed", "method", method, "url", url, "status", resp.StatusCode, "durationMs", duration)
	return Result{
		Status:   resp.StatusCode,
		Data:     parseBody(raw),
		Duration: duration,
	}
}

// Outcome decides the recorded test outcome for a definition: the HTTP
// success window, overridden by the definition's assertion script when one
// is set. Script compile or runtime errors count as failure.
func (t *Tester) Outcome(res Result, script string) endpoint.TestOutcome {
	if strings.TrimSpace(script) == "" {
		if res.OK() {
			return endpoint.TestSuccess
		}
		return endpoint.TestFailure
	}

	ok, err := EvaluateScript(script, res)
	if err != nil {
		t.log.Debug("assertion script failed", "error", err)
		return endpoint.TestFailure
	}
	if ok {
		return endpoint.TestSuccess
	}
	return endpoint.TestFailure
}

// parseBody decodes the body as JSON when possible, otherwise returns it as
// a string. Empty bodies decode to nil.
func parseBody(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}
	return string(raw)
}

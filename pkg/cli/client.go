package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/portability"
)

// Client is a thin HTTP client for the fleetd admin API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the admin API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Health checks whether the admin API is reachable.
func (c *Client) Health() error {
	resp, err := c.http.Get(c.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("cannot reach fleetd at %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fleetd at %s returned status %d", c.baseURL, resp.StatusCode)
	}
	return nil
}

// Export fetches the native configuration export.
func (c *Client) Export() ([]byte, error) {
	resp, err := c.http.Get(c.baseURL + "/config")
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

// Validate previews what importing data would do, without mutating anything.
func (c *Client) Validate(data []byte) (*portability.Preview, error) {
	var preview portability.Preview
	if err := c.post("/config/validate", data, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// ImportResult mirrors the admin API import response.
type ImportResult struct {
	Format       string `json:"format"`
	Environments int    `json:"environments"`
	Endpoints    int    `json:"endpoints"`
}

// Import performs a native import, replacing the server's configuration.
func (c *Client) Import(data []byte) (*ImportResult, error) {
	var result ImportResult
	if err := c.post("/config", data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ImportPostman imports a Postman Collection into the target environment.
func (c *Client) ImportPostman(data []byte, envID string) (*ImportResult, error) {
	var result ImportResult
	path := "/config/postman"
	if envID != "" {
		path += "?environment=" + url.QueryEscape(envID)
	}
	if err := c.post(path, data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ImportOpenAPI imports an OpenAPI document into the target environment.
func (c *Client) ImportOpenAPI(data []byte, envID string) (*ImportResult, error) {
	var result ImportResult
	path := "/config/openapi"
	if envID != "" {
		path += "?environment=" + url.QueryEscape(envID)
	}
	if err := c.post(path, data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateEndpoint creates an endpoint definition.
func (c *Client) CreateEndpoint(def *endpoint.Definition) (*endpoint.Definition, error) {
	body, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var created endpoint.Definition
	if err := c.post("/endpoints", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListEnvironments fetches all environments.
func (c *Client) ListEnvironments() ([]*endpoint.Environment, error) {
	resp, err := c.http.Get(c.baseURL + "/environments")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, data)
	}
	var list struct {
		Environments []*endpoint.Environment `json:"environments"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list.Environments, nil
}

func (c *Client) post(path string, body []byte, out any) error {
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, data)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// apiError extracts the error message from an admin API error body.
func apiError(status int, body []byte) error {
	var e struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return fmt.Errorf("server returned %d: %s", status, e.Message)
		}
		if e.Detail != "" {
			return fmt.Errorf("server returned %d: %s", status, e.Detail)
		}
	}
	return fmt.Errorf("server returned %d", status)
}

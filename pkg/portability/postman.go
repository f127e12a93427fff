package portability

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// Postman Collection v2.x types, limited to the fields the import needs.

// PostmanCollection represents a Postman Collection v2.x.
type PostmanCollection struct {
	Info     PostmanInfo       `json:"info"`
	Item     []PostmanItem     `json:"item"`
	Variable []PostmanVariable `json:"variable,omitempty"`
}

// PostmanInfo contains collection metadata.
type PostmanInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

// PostmanItem represents an item in the collection (request or folder).
type PostmanItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Request     *PostmanRequest `json:"request,omitempty"`
	Item        []PostmanItem   `json:"item,omitempty"` // Nested items (folders)
}

// PostmanRequest represents a Postman request.
type PostmanRequest struct {
	Method string       `json:"method"`
	URL    PostmanURL   `json:"url"`
	Body   *PostmanBody `json:"body,omitempty"`
	Auth   *PostmanAuth `json:"auth,omitempty"`
}

// PostmanURL represents a URL in Postman format.
type PostmanURL struct {
	Raw      string   `json:"raw,omitempty"`
	Protocol string   `json:"protocol,omitempty"`
	Host     []string `json:"host,omitempty"`
	Path     []string `json:"path,omitempty"`
}

// PostmanBody represents a request body.
type PostmanBody struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw,omitempty"`
}

// PostmanAuth represents authentication configuration.
type PostmanAuth struct {
	Type   string `json:"type"`
	Bearer []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"bearer,omitempty"`
	APIKey []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"apikey,omitempty"`
}

// PostmanVariable represents a collection variable.
type PostmanVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// parsePostman parses a Postman Collection into endpoint definitions. The
// definitions carry no environment binding; the import engine binds them to
// the caller's target environment before committing.
func parsePostman(data []byte) ([]*endpoint.Definition, error) {
	var collection PostmanCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, &ImportError{Format: FormatPostman, Message: "failed to parse Postman Collection", Cause: err}
	}

	if collection.Info.Schema == "" || !strings.Contains(collection.Info.Schema, "postman") {
		return nil, &ImportError{Format: FormatPostman, Message: "not a valid Postman Collection v2.x"}
	}

	// Build variable map for substitution
	variables := make(map[string]string)
	for _, v := range collection.Variable {
		variables[v.Key] = v.Value
	}

	var defs []*endpoint.Definition
	collectItems(collection.Item, variables, &defs)
	return defs, nil
}

// collectItems recursively walks items, flattening folders.
func collectItems(items []PostmanItem, variables map[string]string, defs *[]*endpoint.Definition) {
	for _, item := range items {
		if len(item.Item) > 0 {
			collectItems(item.Item, variables, defs)
			continue
		}
		if item.Request == nil {
			continue
		}
		*defs = append(*defs, requestToDefinition(item, variables))
	}
}

// requestToDefinition converts one Postman request into a definition.
func requestToDefinition(item PostmanItem, variables map[string]string) *endpoint.Definition {
	req := item.Request

	method := endpoint.Method(strings.ToUpper(req.Method))
	if !method.IsValid() {
		method = endpoint.MethodGet
	}

	description := item.Name
	if item.Description != "" {
		description = item.Description
	}

	def := &endpoint.Definition{
		Method:      method,
		Path:        extractPath(req.URL, variables),
		Description: description,
		Status:      endpoint.StatusTesting,
		Owner:       endpoint.OwnerUser,
		Auth:        extractAuth(req.Auth),
	}
	if req.Body != nil && req.Body.Mode == "raw" {
		def.Body = substituteVariables(req.Body.Raw, variables)
	}
	return def
}

// extractAuth maps Postman auth blocks onto the Auth variant.
func extractAuth(auth *PostmanAuth) endpoint.Auth {
	if auth == nil {
		return endpoint.NoAuth()
	}
	switch auth.Type {
	case "bearer":
		for _, kv := range auth.Bearer {
			if kv.Key == "token" {
				return endpoint.BearerAuth(kv.Value)
			}
		}
		return endpoint.BearerAuth("")
	case "apikey":
		for _, kv := range auth.APIKey {
			if kv.Key == "value" {
				return endpoint.APIKeyAuth(kv.Value)
			}
		}
		return endpoint.APIKeyAuth("")
	default:
		return endpoint.NoAuth()
	}
}

// extractPath extracts the URL path from a Postman URL.
func extractPath(postmanURL PostmanURL, variables map[string]string) string {
	// If path parts are available, use them
	if len(postmanURL.Path) > 0 {
		parts := make([]string, len(postmanURL.Path))
		for idx, part := range postmanURL.Path {
			parts[idx] = substituteVariables(part, variables)
		}
		return "/" + strings.Join(parts, "/")
	}

	// Fall back to parsing raw URL
	if postmanURL.Raw != "" {
		raw := substituteVariables(postmanURL.Raw, variables)
		parsed, err := url.Parse(raw)
		if err == nil && parsed.Path != "" {
			return parsed.Path
		}
	}

	return "/"
}

// substituteVariables replaces Postman variables {{var}} with their values.
func substituteVariables(s string, variables map[string]string) string {
	result := s
	for key, value := range variables {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

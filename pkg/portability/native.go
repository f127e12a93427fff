package portability

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

// Native export document markers.
const (
	// NativeFormatTag identifies a fleetd configuration export.
	NativeFormatTag = "fleetd-config"

	// NativeVersion is the current export document version.
	NativeVersion = "1.0"
)

// Document is the native configuration export: the full environment and
// endpoint collections plus format tag and version marker.
type Document struct {
	Format       string                  `json:"format"`
	Version      string                  `json:"version"`
	ExportedAt   time.Time               `json:"exportedAt"`
	Environments []*endpoint.Environment `json:"environments"`
	Endpoints    []*endpoint.Definition  `json:"endpoints"`
}

// nativeSchema is the structural contract for native import payloads,
// checked before any per-record validation so malformed documents produce
// one precise error instead of a cascade.
const nativeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["format", "version", "environments", "endpoints"],
  "properties": {
    "format": {"const": "fleetd-config"},
    "version": {"type": "string", "minLength": 1},
    "environments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "baseUrl"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "baseUrl": {"type": "string", "minLength": 1, "pattern": "^[A-Za-z0-9][A-Za-z0-9._:/-]*$"},
          "kind": {"enum": ["development", "staging", "production", "custom"]},
          "protocol": {"enum": ["https://", "http://", "https", "http"]},
          "apiPrefix": {"type": "boolean"},
          "version": {"type": "string"}
        }
      }
    },
    "endpoints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path"],
        "properties": {
          "id": {"type": "string"},
          "method": {"enum": ["GET", "POST", "PUT", "PATCH", "DELETE"]},
          "path": {"type": "string", "minLength": 1},
          "environmentId": {"type": "string"},
          "status": {"enum": ["ACTIVE", "TESTING", "DEPRECATED", "DISABLED"]},
          "owner": {"enum": ["system", "user"]},
          "authentication": {"type": "string"}
        }
      }
    }
  }
}`

var (
	nativeSchemaOnce     sync.Once
	compiledNativeSchema *jsonschema.Schema
	nativeSchemaErr      error
)

// compileNativeSchema compiles the embedded schema once.
func compileNativeSchema() (*jsonschema.Schema, error) {
	nativeSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("fleetd-config.schema.json", strings.NewReader(nativeSchema)); err != nil {
			nativeSchemaErr = err
			return
		}
		compiledNativeSchema, nativeSchemaErr = compiler.Compile("fleetd-config.schema.json")
	})
	return compiledNativeSchema, nativeSchemaErr
}

// parseNative parses and schema-validates a native export document.
func parseNative(data []byte) (*Document, error) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &ImportError{Format: FormatNative, Message: "payload is not valid JSON", Cause: err}
	}

	schema, err := compileNativeSchema()
	if err != nil {
		return nil, &ImportError{Format: FormatNative, Message: "internal schema error", Cause: err}
	}
	if err := schema.Validate(decoded); err != nil {
		return nil, &ImportError{Format: FormatNative, Message: "document does not match the export schema", Cause: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{Format: FormatNative, Message: "failed to decode export document", Cause: err}
	}
	for _, env := range doc.Environments {
		env.Protocol = endpoint.ParseProtocol(string(env.Protocol))
	}
	return &doc, nil
}

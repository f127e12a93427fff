// Package portability serializes the endpoint configuration to its native
// JSON document and ingests external API-collection exports. Imports are
// previewed without touching the stores and committed all-or-nothing.
package portability

import (
	"encoding/json"
	"strings"
)

// Format represents a supported import format.
type Format string

// Supported formats.
const (
	FormatUnknown Format = ""
	FormatNative  Format = "native"  // fleetd configuration export
	FormatPostman Format = "postman" // Postman Collection v2.x
	FormatOpenAPI Format = "openapi" // OpenAPI 3.x or Swagger 2.0
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// DetectFormat sniffs the payload structure and returns the recognized
// format, or FormatUnknown when the payload matches none of them.
func DetectFormat(data []byte) Format {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return FormatUnknown
	}

	// Native export: format tag, or version alongside both collections.
	if tag, ok := raw["format"]; ok {
		var s string
		if json.Unmarshal(tag, &s) == nil && s == NativeFormatTag {
			return FormatNative
		}
	}
	if _, hasVersion := raw["version"]; hasVersion {
		_, hasEnvs := raw["environments"]
		_, hasEps := raw["endpoints"]
		if hasEnvs && hasEps {
			return FormatNative
		}
	}

	// OpenAPI 3.x / Swagger 2.0 indicators.
	if _, ok := raw["openapi"]; ok {
		return FormatOpenAPI
	}
	if _, ok := raw["swagger"]; ok {
		return FormatOpenAPI
	}

	// Postman Collection: info block plus item array.
	if _, hasInfo := raw["info"]; hasInfo {
		if _, hasItem := raw["item"]; hasItem {
			return FormatPostman
		}
	}

	return FormatUnknown
}

// ParseFormat parses a format string. Returns FormatUnknown for
// unrecognized values.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "fleetd":
		return FormatNative
	case "postman":
		return FormatPostman
	case "openapi", "swagger", "oas":
		return FormatOpenAPI
	default:
		return FormatUnknown
	}
}

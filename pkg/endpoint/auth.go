package endpoint

import (
	"encoding/json"
	"strings"
)

// AuthType identifies how an endpoint authenticates.
type AuthType string

// Authentication types.
const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthAPIKey AuthType = "apikey"
)

// Display prefixes for the descriptive authentication string. The UI stores
// and shows authentication as a single string; these prefixes are the
// round-trip contract between the string form and the typed form.
const (
	authNoneDisplay  = "None"
	authBearerPrefix = "Bearer Token: "
	authAPIKeyPrefix = "API Key: "
)

// Auth is the authentication requirement of an endpoint, modeled as a tagged
// variant internally and serialized to the descriptive string at the JSON
// boundary ("None", "Bearer Token: …", "API Key: …").
type Auth struct {
	Type  AuthType
	Value string
}

// NoAuth returns the zero authentication requirement.
func NoAuth() Auth {
	return Auth{Type: AuthNone}
}

// BearerAuth returns a bearer-token requirement.
func BearerAuth(token string) Auth {
	return Auth{Type: AuthBearer, Value: token}
}

// APIKeyAuth returns an API-key requirement.
func APIKeyAuth(key string) Auth {
	return Auth{Type: AuthAPIKey, Value: key}
}

// String renders the descriptive form used by the UI and the export format.
func (a Auth) String() string {
	switch a.Type {
	case AuthBearer:
		return authBearerPrefix + a.Value
	case AuthAPIKey:
		return authAPIKeyPrefix + a.Value
	default:
		return authNoneDisplay
	}
}

// ParseAuth parses the descriptive string form back into the typed form.
// Round-tripping through String is lossless for the two supported prefixes;
// anything unrecognized parses as no authentication.
func ParseAuth(s string) Auth {
	switch {
	case strings.HasPrefix(s, authBearerPrefix):
		return BearerAuth(strings.TrimPrefix(s, authBearerPrefix))
	case strings.HasPrefix(s, authAPIKeyPrefix):
		return APIKeyAuth(strings.TrimPrefix(s, authAPIKeyPrefix))
	default:
		return NoAuth()
	}
}

// MarshalJSON serializes the descriptive string form.
func (a Auth) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parses the descriptive string form.
func (a *Auth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAuth(s)
	return nil
}

// MarshalYAML serializes the descriptive string form.
func (a Auth) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML parses the descriptive string form.
func (a *Auth) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*a = ParseAuth(s)
	return nil
}

package endpoint

import "testing"

func TestBuildURLEnvironmentBound(t *testing.T) {
	envs := []*Environment{
		{
			ID:        "env-prod",
			Name:      "Prod",
			Protocol:  ProtocolHTTPS,
			BaseURL:   "api.example.com",
			APIPrefix: true,
			Version:   "/v1/",
		},
	}
	def := &Definition{EnvironmentID: "env-prod", Path: "/drivers"}

	got := BuildURL(def, envs, BaseConfig{BaseURL: "http://localhost", APIPrefix: "/api"})
	want := "https://api.example.com/api/v1/drivers"
	if got != want {
		t.Errorf("BuildURL = %q, want %q", got, want)
	}
}

func TestBuildURLVariants(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
		path string
		want string
	}{
		{
			name: "no prefix no version",
			env:  Environment{ID: "e", Protocol: ProtocolHTTP, BaseURL: "localhost:8080"},
			path: "/shifts",
			want: "http://localhost:8080/shifts",
		},
		{
			name: "version without slashes",
			env:  Environment{ID: "e", Protocol: ProtocolHTTPS, BaseURL: "api.example.com", Version: "v2"},
			path: "/shifts",
			want: "https://api.example.com/v2/shifts",
		},
		{
			name: "bare slash version is ignored",
			env:  Environment{ID: "e", Protocol: ProtocolHTTPS, BaseURL: "api.example.com", APIPrefix: true, Version: "/"},
			path: "/shifts",
			want: "https://api.example.com/api/shifts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &Definition{EnvironmentID: tt.env.ID, Path: tt.path}
			got := BuildURL(def, []*Environment{&tt.env}, BaseConfig{})
			if got != tt.want {
				t.Errorf("BuildURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildURLFallback(t *testing.T) {
	active := BaseConfig{BaseURL: "https://fleet.local", APIPrefix: "/api/v1"}

	// Unbound definition falls back to the active client config.
	def := &Definition{Path: "/assignments"}
	if got := BuildURL(def, nil, active); got != "https://fleet.local/api/v1/assignments" {
		t.Errorf("unbound BuildURL = %q", got)
	}

	// A dangling environment reference also falls back.
	def = &Definition{EnvironmentID: "missing", Path: "/assignments"}
	if got := BuildURL(def, nil, active); got != "https://fleet.local/api/v1/assignments" {
		t.Errorf("dangling BuildURL = %q", got)
	}
}

func TestBuildURLDeterministic(t *testing.T) {
	envs := []*Environment{{ID: "e", Protocol: ProtocolHTTPS, BaseURL: "api.example.com", APIPrefix: true}}
	def := &Definition{EnvironmentID: "e", Path: "/drivers"}
	active := BaseConfig{BaseURL: "http://x", APIPrefix: ""}

	first := BuildURL(def, envs, active)
	second := BuildURL(def, envs, active)
	if first != second {
		t.Errorf("BuildURL not deterministic: %q vs %q", first, second)
	}
}

func TestEnvironmentValidate(t *testing.T) {
	tests := []struct {
		name  string
		env   Environment
		valid bool
	}{
		{"ok", Environment{Name: "Prod", BaseURL: "api.example.com"}, true},
		{"missing name", Environment{BaseURL: "api.example.com"}, false},
		{"missing baseUrl", Environment{Name: "Prod"}, false},
		{"baseUrl with scheme", Environment{Name: "Prod", BaseURL: "https://api.example.com"}, false},
		{"baseUrl with space", Environment{Name: "Prod", BaseURL: "api example.com"}, false},
		{"baseUrl with port and path", Environment{Name: "Dev", BaseURL: "localhost:8080/fleet"}, true},
		{"bad kind", Environment{Name: "X", BaseURL: "api.example.com", Kind: "qa"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.Validate().Valid; got != tt.valid {
				t.Errorf("Validate().Valid = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestDefinitionValidate(t *testing.T) {
	ok := Definition{Method: MethodGet, Path: "/drivers", Status: StatusActive}
	if !ok.Validate().Valid {
		t.Error("expected valid definition")
	}

	empty := Definition{Method: MethodGet}
	if empty.Validate().Valid {
		t.Error("expected empty path to fail validation")
	}

	badMethod := Definition{Method: "FETCH", Path: "/x"}
	if badMethod.Validate().Valid {
		t.Error("expected unknown method to fail validation")
	}
}

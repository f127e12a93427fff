package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/validation"
)

// Registry is a thread-safe in-memory store for environments and endpoint
// definitions. All writes are all-or-nothing: validation happens before any
// mutation, and multi-record operations commit under a single lock hold.
type Registry struct {
	mu           sync.RWMutex
	environments map[string]*endpoint.Environment
	endpoints    map[string]*endpoint.Definition

	// now and newID are injected for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		environments: make(map[string]*endpoint.Environment),
		endpoints:    make(map[string]*endpoint.Definition),
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// ListEnvironments returns all environments sorted by creation time, then name.
func (r *Registry) ListEnvironments() []*endpoint.Environment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*endpoint.Environment, 0, len(r.environments))
	for _, env := range r.environments {
		result = append(result, env.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// GetEnvironment retrieves an environment by ID. Returns nil if not found.
func (r *Registry) GetEnvironment(id string) *endpoint.Environment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.environments[id].Clone()
}

// SaveEnvironment validates and stores a new environment, generating an ID
// when none is set. Returns the stored ID.
func (r *Registry) SaveEnvironment(env *endpoint.Environment) (string, error) {
	if err := env.Validate().Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := env.Clone()
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	if stored.Kind == "" {
		stored.Kind = endpoint.KindCustom
	}
	if stored.Protocol == "" {
		stored.Protocol = endpoint.ProtocolHTTPS
	}
	now := r.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.environments[stored.ID] = stored
	return stored.ID, nil
}

// UpdateEnvironment applies a partial update. The merged record is validated
// before commit; an invalid patch leaves the stored record untouched.
func (r *Registry) UpdateEnvironment(id string, patch EnvironmentPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.environments[id]
	if !ok {
		return ErrNotFound
	}

	merged := current.Clone()
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Kind != nil {
		merged.Kind = *patch.Kind
	}
	if patch.Protocol != nil {
		merged.Protocol = endpoint.ParseProtocol(string(*patch.Protocol))
	}
	if patch.BaseURL != nil {
		merged.BaseURL = *patch.BaseURL
	}
	if patch.APIPrefix != nil {
		merged.APIPrefix = *patch.APIPrefix
	}
	if patch.Version != nil {
		merged.Version = *patch.Version
	}

	if err := merged.Validate().Err(); err != nil {
		return err
	}
	merged.UpdatedAt = r.now()
	r.environments[id] = merged
	return nil
}

// DeleteEnvironment removes an environment and cascades to every endpoint
// bound to it, in one atomic step. Returns false if the environment does not
// exist; no endpoint is touched in that case.
func (r *Registry) DeleteEnvironment(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.environments[id]; !ok {
		return false
	}
	delete(r.environments, id)
	for epID, def := range r.endpoints {
		if def.EnvironmentID == id {
			delete(r.endpoints, epID)
		}
	}
	return true
}

// ListEndpoints returns all endpoint definitions sorted by creation time,
// then path.
func (r *Registry) ListEndpoints() []*endpoint.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*endpoint.Definition, 0, len(r.endpoints))
	for _, def := range r.endpoints {
		result = append(result, def.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Path < result[j].Path
	})
	return result
}

// GetEndpoint retrieves a definition by ID. Returns nil if not found.
func (r *Registry) GetEndpoint(id string) *endpoint.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.endpoints[id].Clone()
}

// SaveEndpoint validates and stores a new definition, generating an ID when
// none is set and filling method, status, and owner defaults.
func (r *Registry) SaveEndpoint(def *endpoint.Definition) (string, error) {
	if err := def.Validate().Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if def.EnvironmentID != "" {
		if _, ok := r.environments[def.EnvironmentID]; !ok {
			result := validation.OK()
			result.AddError(validation.NewReferenceError("environmentId", validation.LocationBody, def.EnvironmentID))
			return "", result.Err()
		}
	}

	stored := def.Clone()
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	if stored.Method == "" {
		stored.Method = endpoint.MethodGet
	}
	if stored.Status == "" {
		stored.Status = endpoint.StatusActive
	}
	if stored.Owner == "" {
		stored.Owner = endpoint.OwnerUser
	}
	now := r.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.endpoints[stored.ID] = stored
	return stored.ID, nil
}

// UpdateEndpoint applies a partial update. System endpoints only accept
// status-only patches. The merged record is validated before commit.
func (r *Registry) UpdateEndpoint(id string, patch DefinitionPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.endpoints[id]
	if !ok {
		return ErrNotFound
	}
	if current.System() && !patch.StatusOnly() {
		return ErrPermissionDenied
	}

	merged := current.Clone()
	if patch.Method != nil {
		merged.Method = *patch.Method
	}
	if patch.EnvironmentID != nil {
		merged.EnvironmentID = *patch.EnvironmentID
	}
	if patch.Path != nil {
		merged.Path = *patch.Path
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Parameters != nil {
		merged.Parameters = *patch.Parameters
	}
	if patch.Auth != nil {
		merged.Auth = *patch.Auth
	}
	if patch.Body != nil {
		merged.Body = *patch.Body
	}
	if patch.Script != nil {
		merged.Script = *patch.Script
	}

	if err := merged.Validate().Err(); err != nil {
		return err
	}
	if merged.EnvironmentID != "" {
		if _, ok := r.environments[merged.EnvironmentID]; !ok {
			result := validation.OK()
			result.AddError(validation.NewReferenceError("environmentId", validation.LocationBody, merged.EnvironmentID))
			return result.Err()
		}
	}
	merged.UpdatedAt = r.now()
	r.endpoints[id] = merged
	return nil
}

// DeleteEndpoint removes a user-owned definition. System endpoints return
// ErrPermissionDenied and remain untouched.
func (r *Registry) DeleteEndpoint(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.endpoints[id]
	if !ok {
		return ErrNotFound
	}
	if def.System() {
		return ErrPermissionDenied
	}
	delete(r.endpoints, id)
	return nil
}

// ToggleStatus flips a definition between ACTIVE and DISABLED and returns the
// new status. Permitted on system endpoints.
func (r *Registry) ToggleStatus(id string) (endpoint.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.endpoints[id]
	if !ok {
		return "", ErrNotFound
	}
	if def.Status == endpoint.StatusActive {
		def.Status = endpoint.StatusDisabled
	} else {
		def.Status = endpoint.StatusActive
	}
	def.UpdatedAt = r.now()
	return def.Status, nil
}

// RecordTestResult stores the outcome of a live test. Results are
// last-write-wins on the test timestamp: a result older than the recorded
// LastTested is dropped, so concurrent in-flight tests settle on the last
// *completing* run regardless of initiation order.
func (r *Registry) RecordTestResult(id string, testedAt time.Time, outcome endpoint.TestOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.endpoints[id]
	if !ok {
		return ErrNotFound
	}
	if def.LastTested != nil && testedAt.Before(*def.LastTested) {
		return nil
	}
	ts := testedAt
	def.LastTested = &ts
	def.LastTestResult = outcome
	return nil
}

// Snapshot returns deep copies of both collections for export.
func (r *Registry) Snapshot() ([]*endpoint.Environment, []*endpoint.Definition) {
	return r.ListEnvironments(), r.ListEndpoints()
}

// ReplaceAll swaps both collections for the given records, validating every
// record and cross-reference first. On any failure the registry is left
// exactly as it was.
func (r *Registry) ReplaceAll(envs []*endpoint.Environment, defs []*endpoint.Definition) error {
	if err := ValidateBatch(envs, defs); err != nil {
		return err
	}

	newEnvs := make(map[string]*endpoint.Environment, len(envs))
	newDefs := make(map[string]*endpoint.Definition, len(defs))

	for _, env := range envs {
		stored := env.Clone()
		if stored.ID == "" {
			stored.ID = r.newID()
		}
		newEnvs[stored.ID] = stored
	}
	for _, def := range defs {
		stored := def.Clone()
		if stored.ID == "" {
			stored.ID = r.newID()
		}
		if stored.Method == "" {
			stored.Method = endpoint.MethodGet
		}
		if stored.Status == "" {
			stored.Status = endpoint.StatusActive
		}
		if stored.Owner == "" {
			stored.Owner = endpoint.OwnerUser
		}
		newDefs[stored.ID] = stored
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for _, env := range newEnvs {
		if env.CreatedAt.IsZero() {
			env.CreatedAt = now
		}
		env.UpdatedAt = now
	}
	for _, def := range newDefs {
		if def.CreatedAt.IsZero() {
			def.CreatedAt = now
		}
		def.UpdatedAt = now
	}
	r.environments = newEnvs
	r.endpoints = newDefs
	return nil
}

// ValidateBatch runs the per-record validation and environment reference
// checks ReplaceAll applies, without touching any store. Import previews use
// it so a payload that previews clean also commits clean.
func ValidateBatch(envs []*endpoint.Environment, defs []*endpoint.Definition) error {
	result := validation.OK()
	envIDs := make(map[string]bool, len(envs))
	for _, env := range envs {
		result.Merge(env.Validate())
		if env.ID != "" {
			envIDs[env.ID] = true
		}
	}
	for _, def := range defs {
		result.Merge(def.Validate())
		if def.EnvironmentID != "" && !envIDs[def.EnvironmentID] {
			result.AddError(validation.NewReferenceError("environmentId", validation.LocationBody, def.EnvironmentID))
		}
	}
	return result.Err()
}

// AddEndpoints stores a batch of definitions, all or nothing. Every record
// is validated (including environment references) before anything commits.
// Returns the number of definitions added.
func (r *Registry) AddEndpoints(defs []*endpoint.Definition) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := validation.OK()
	prepared := make([]*endpoint.Definition, 0, len(defs))
	for _, def := range defs {
		result.Merge(def.Validate())
		stored := def.Clone()
		if stored.EnvironmentID != "" {
			if _, ok := r.environments[stored.EnvironmentID]; !ok {
				result.AddError(validation.NewReferenceError("environmentId", validation.LocationBody, stored.EnvironmentID))
			}
		}
		if stored.ID == "" {
			stored.ID = r.newID()
		}
		if stored.Method == "" {
			stored.Method = endpoint.MethodGet
		}
		if stored.Status == "" {
			stored.Status = endpoint.StatusActive
		}
		if stored.Owner == "" {
			stored.Owner = endpoint.OwnerUser
		}
		prepared = append(prepared, stored)
	}
	if err := result.Err(); err != nil {
		return 0, err
	}

	now := r.now()
	for _, def := range prepared {
		if def.CreatedAt.IsZero() {
			def.CreatedAt = now
		}
		def.UpdatedAt = now
		r.endpoints[def.ID] = def
	}
	return len(prepared), nil
}

// HasEndpoint reports whether any stored definition already uses the given
// method and path pair. Used by import preview to flag duplicates.
func (r *Registry) HasEndpoint(method endpoint.Method, path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.endpoints {
		if def.Method == method && def.Path == path {
			return true
		}
	}
	return false
}

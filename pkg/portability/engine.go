package portability

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/endpoint"
	"github.com/routefleet/fleetd/pkg/logging"
)

// Engine exports and imports endpoint configuration against a registry.
type Engine struct {
	reg *storage.Registry
	log *slog.Logger

	now func() time.Time
}

// NewEngine creates a portability engine backed by reg.
func NewEngine(reg *storage.Registry, log *slog.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{reg: reg, log: log, now: time.Now}
}

// Export produces the native configuration document from the current store
// contents.
func (e *Engine) Export() *Document {
	envs, defs := e.reg.Snapshot()
	return &Document{
		Format:       NativeFormatTag,
		Version:      NativeVersion,
		ExportedAt:   e.now().UTC(),
		Environments: envs,
		Endpoints:    defs,
	}
}

// Preview describes what an import payload would do without doing it: the
// parsed record collections, plus which of the parsed endpoints collide with
// endpoints already stored.
type Preview struct {
	Valid        bool                    `json:"valid"`
	Format       Format                  `json:"format"`
	Error        string                  `json:"error,omitempty"`
	Environments []*endpoint.Environment `json:"environments"`
	Endpoints    []*endpoint.Definition  `json:"endpoints"`
	Duplicates   []string                `json:"duplicates,omitempty"`
}

// ValidateImport inspects an import payload and reports what it contains.
// It never mutates the stores, and applies the same per-record validation
// the commit path does: a payload that previews valid also imports.
// Duplicates lists "METHOD path" pairs that already exist in the registry.
func (e *Engine) ValidateImport(data []byte) *Preview {
	format := DetectFormat(data)
	preview := &Preview{Format: format}

	var envs []*endpoint.Environment
	var defs []*endpoint.Definition
	var err error

	switch format {
	case FormatNative:
		var doc *Document
		doc, err = parseNative(data)
		if err == nil {
			envs, defs = doc.Environments, doc.Endpoints
		}
	case FormatPostman:
		defs, err = parsePostman(data)
	case FormatOpenAPI:
		defs, err = parseOpenAPI(data)
	default:
		preview.Error = "unrecognized import format"
		return preview
	}
	if err != nil {
		preview.Error = err.Error()
		return preview
	}

	if err := storage.ValidateBatch(envs, defs); err != nil {
		preview.Error = err.Error()
		return preview
	}

	preview.Valid = true
	preview.Environments = envs
	preview.Endpoints = defs
	preview.Duplicates = e.duplicates(defs)
	return preview
}

// duplicates reports which definitions collide with existing endpoints on
// method and path, in input order.
func (e *Engine) duplicates(defs []*endpoint.Definition) []string {
	var dupes []string
	for _, def := range defs {
		if e.reg.HasEndpoint(def.Method, def.Path) {
			dupes = append(dupes, fmt.Sprintf("%s %s", def.Method, def.Path))
		}
	}
	return dupes
}

// ImportNative replaces the full store contents with the document's
// collections. The swap is all-or-nothing: any invalid record leaves the
// stores untouched.
func (e *Engine) ImportNative(data []byte) (envs, endpoints int, err error) {
	doc, err := parseNative(data)
	if err != nil {
		return 0, 0, err
	}
	if err := e.reg.ReplaceAll(doc.Environments, doc.Endpoints); err != nil {
		return 0, 0, &ImportError{Format: FormatNative, Message: "import rejected", Cause: err}
	}
	e.log.Info("configuration imported",
		"format", FormatNative,
		"environments", len(doc.Environments),
		"endpoints", len(doc.Endpoints))
	return len(doc.Environments), len(doc.Endpoints), nil
}

// ImportPostman adds the collection's requests as endpoints bound to the
// target environment. The batch is all-or-nothing.
func (e *Engine) ImportPostman(data []byte, targetEnvID string) (int, error) {
	defs, err := parsePostman(data)
	if err != nil {
		return 0, err
	}
	return e.addBatch(FormatPostman, defs, targetEnvID)
}

// ImportOpenAPI adds the document's operations as endpoints bound to the
// target environment. The batch is all-or-nothing.
func (e *Engine) ImportOpenAPI(data []byte, targetEnvID string) (int, error) {
	defs, err := parseOpenAPI(data)
	if err != nil {
		return 0, err
	}
	return e.addBatch(FormatOpenAPI, defs, targetEnvID)
}

func (e *Engine) addBatch(format Format, defs []*endpoint.Definition, targetEnvID string) (int, error) {
	if targetEnvID != "" && e.reg.GetEnvironment(targetEnvID) == nil {
		return 0, &ImportError{Format: format, Message: fmt.Sprintf("target environment %q does not exist", targetEnvID)}
	}
	for _, def := range defs {
		def.EnvironmentID = targetEnvID
	}
	count, err := e.reg.AddEndpoints(defs)
	if err != nil {
		return 0, &ImportError{Format: format, Message: "import rejected", Cause: err}
	}
	e.log.Info("endpoints imported", "format", format, "count", count, "environment", targetEnvID)
	return count, nil
}

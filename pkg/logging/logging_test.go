package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "component", "storage")
	require.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"component":"storage"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("loud"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("xml"))
}

type failingHandler struct{ err error }

func (f failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }
func (f failingHandler) WithAttrs(attrs []slog.Attr) slog.Handler  { return f }
func (f failingHandler) WithGroup(name string) slog.Handler        { return f }

func TestMultiHandlerFansOutPastFailures(t *testing.T) {
	var text, json bytes.Buffer
	boom := errors.New("disk full")
	multi := NewMultiHandler(
		slog.NewTextHandler(&text, nil),
		failingHandler{err: boom},
		slog.NewJSONHandler(&json, &slog.HandlerOptions{Level: LevelWarn}),
	)
	log := slog.New(multi)

	log.Info("hello")
	assert.Contains(t, text.String(), "hello")
	assert.Zero(t, json.Len(), "warn-gated handler must not see info records")

	log.Warn("pressure")
	assert.Contains(t, json.String(), "pressure")
	assert.Contains(t, text.String(), "pressure")
}

// Package logging builds the slog loggers used across fleetd. Every
// component takes a *slog.Logger from its constructor; this package only
// decides how the root logger is assembled from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level aliases slog.Level so callers never import log/slog just to
// configure verbosity.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the wire shape of log lines.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes a root logger. Zero values are filled in by New, so a
// partially populated Config is fine.
type Config struct {
	Level  Level
	Format Format

	// Output receives the log lines; nil means os.Stderr.
	Output io.Writer

	// AddSource stamps each record with the emitting file and line.
	AddSource bool
}

// DefaultConfig is what fleetd runs with when no logging flags are given:
// human-readable text on stderr at info level.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New assembles a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Nop returns a logger that discards everything. Constructors accept it in
// place of a nil check.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a user-supplied level name to a Level. Unknown names and
// the empty string fall back to info rather than erroring, since a bad
// --log-level should never keep the daemon from starting.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat maps a user-supplied format name to a Format, defaulting to
// text for anything that is not "json".
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}

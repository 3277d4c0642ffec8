// Package logging builds the structured loggers used by the CLI and server.
//
// The console format looks like:
// [LEVEL] [component] [HH:MM:SS] message key=value
package logging

import (
	"io"
	"log/slog"
	"strings"

	"garage-reconciliation/internal/config"
)

// ParseLevel maps a config level name to a slog level; unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger based on config. Format "json"
// selects slog's JSON handler, anything else the console handler.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewConsoleHandler(w, opts)
	}
	return slog.New(handler)
}

// NewComponentLogger scopes a logger to one component, e.g. "matcher" or "api".
func NewComponentLogger(cfg config.LoggingConfig, w io.Writer, component string) *slog.Logger {
	return NewLogger(cfg, w).With(componentKey, component)
}

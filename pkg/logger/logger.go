// Package logger builds the process-wide slog logger. Output is JSON by
// default so log shippers can ingest it; LOG_FORMAT=text switches to the
// console handler for local runs.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New reads LOG_LEVEL and LOG_FORMAT from the environment and returns a
// logger stamped with the service name.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "mynextpr")
}

// parseLevel falls back to info on empty or unknown values.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Package logging builds the process-wide structured logger. Every line
// carries the service name and environment so log aggregation can tell
// deployments apart.
package logging

import (
	"log/slog"
	"os"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string // debug, info, warn, error; anything else means info
}

// NewLogger returns a JSON slog logger writing to stdout at the configured
// level.
func NewLogger(cfg Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

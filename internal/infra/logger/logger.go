package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger: JSON by default, text and debug level in dev.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	var h slog.Handler
	if env == "dev" {
		level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h).With("service", "depotd")
}

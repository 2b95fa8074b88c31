package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LavaJover/shvark-foodbot-service/internal/config"
)

// New builds the process logger from the log section of the config.
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// NoOpHandler drops every record. Tests use it to silence components.
type NoOpHandler struct{}

func (h *NoOpHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *NoOpHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *NoOpHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *NoOpHandler) WithGroup(_ string) slog.Handler {
	return h
}

func NewNoOp() *slog.Logger {
	return slog.New(&NoOpHandler{})
}

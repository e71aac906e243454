package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/bakery/internal/config"
)

// New creates a preconfigured slog.Logger.
func New(cfg *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)})
	return slog.New(handler).With(slog.String("service", "bakery"))
}

// ParseLevel maps textual levels to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
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

package app

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dshills/tactile/internal/config"
)

// ParseLogLevel parses a level name. Unknown names yield info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// newLogger builds the application logger. The terminal belongs to the
// UI, so logs only go to a rotated file; with no file they are discarded.
func newLogger(cfg config.LogConfig, level *slog.LevelVar) (*slog.Logger, io.Closer) {
	level.Set(ParseLogLevel(cfg.Level))

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})), nil
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   false,
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("app", "tactile"), w
}

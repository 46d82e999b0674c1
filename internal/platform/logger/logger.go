package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ukp-platform/ukp-api/internal/config"
)

// Setup builds the application logger from cfg and installs it as the slog
// default. JSON output is used for the json format and text output for pretty.
// An unrecognized level falls back to info with a warning.
func Setup(cfg config.AppConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a logger writing to w without touching the slog default.
func New(w io.Writer, cfg config.AppConfig) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Name,
		"env", cfg.Environment.String(),
	)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	return logger
}

// ParseLevel maps a case-insensitive level name to a slog.Level. The second
// result is false, and the level is info, when name is not recognized.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

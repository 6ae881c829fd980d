package logging

import (
	"io"
	"log/slog"
	"strings"
)

// SetupLogger installs New(appEnv, logLevel, out) as the default slog logger.
func SetupLogger(appEnv, logLevel string, out io.Writer) {
	slog.SetDefault(New(appEnv, logLevel, out))
}

// New builds a text logger, or a JSON logger in production. Every record carries the
// environment name, and debug records also carry their source location.
func New(appEnv, logLevel string, out io.Writer) *slog.Logger {
	level := parseLevel(logLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if appEnv == "production" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("env", appEnv)
}

func parseLevel(s string) slog.Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Options tunes the process logger. Empty fields fall back to the
// environment defaults.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func Init(env string) {
	InitWithOptions(env, Options{})
}

func InitWithOptions(env string, opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelDebug
	format := opts.Format
	if env == "production" {
		level = slog.LevelInfo
		if format == "" {
			format = "json"
		}
	}
	if opts.Level != "" {
		level = parseLevel(opts.Level)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	defaultLogger = slog.New(handler).With("service", "parc-info")
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}

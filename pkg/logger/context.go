package logger

import (
	"context"
	"io"
	"log/slog"
)

type loggerKey struct{}

// With stores a child of the context logger carrying attrs.
func With(ctx context.Context, attrs ...any) context.Context {
	return context.WithValue(ctx, loggerKey{}, From(ctx).With(attrs...))
}

// From falls back to the process logger.
func From(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return LoggerWrapper()
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With attaches fields to the logger carried by the context and returns
// the derived context.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From pulls the logger out of the context, falling back to the process
// logger when none was attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}

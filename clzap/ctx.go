package clzap

import (
	"context"

	"go.uber.org/zap"
)

// ctxKey holds the context key under which the logger will be stored.
type ctxKey string

// LoggerFromContext returns the logger embedded in the context, if any.
func LoggerFromContext(ctx context.Context) (*zap.Logger, bool) {
	logs, ok := ctx.Value(ctxKey("clzap.logger")).(*zap.Logger)

	return logs, ok
}

// Log retrieves a zap logger from the context. If there is none it returns the fallback, or a no-op
// logger if no fallback is given.
func Log(ctx context.Context, fallback ...*zap.Logger) *zap.Logger {
	if logs, ok := LoggerFromContext(ctx); ok {
		return logs
	}

	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}

	return zap.NewNop()
}

// WithLogger returns a context with the provided logger embedded.
func WithLogger(ctx context.Context, logs *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey("clzap.logger"), logs)
}

package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in ctx and attaches it to l.
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithContext(ctx, l.With(zap.String("request_id", requestID)))
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

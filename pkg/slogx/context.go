package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type (
	loggerKey     struct{}
	annotationKey struct{}
)

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With extends the context logger with args.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

type annotations struct {
	mu   sync.Mutex
	args []any
}

func (a *annotations) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.args...)
}

// Annotate extends the context logger with args and, inside HTTPMiddleware,
// adds them to the request's access log line. Middlewares that learn who the
// caller is after the access logger was built use it to surface that.
func Annotate(ctx context.Context, args ...any) context.Context {
	if a, ok := ctx.Value(annotationKey{}).(*annotations); ok {
		a.mu.Lock()
		a.args = append(a.args, args...)
		a.mu.Unlock()
	}
	return With(ctx, args...)
}

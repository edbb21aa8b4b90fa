package httpx

import "context"

type ctxKey string

const ctxKeyClientID ctxKey = "client_id"

// WithClientID returns a context carrying the resolved client id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyClientID, id)
}

// ClientIDFromContext returns the client id attached by WithClientID.
func ClientIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyClientID).(string); ok {
		return v
	}
	return ""
}

package slogx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/idx"
)

// RequestIDHeader is read from requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

// healthPaths are logged at debug so health checks do not flood the log.
var healthPaths = map[string]bool{
	"/livez":  true,
	"/readyz": true,
}

// HTTPMiddleware writes one access log line per request and puts a request
// scoped logger in the request context. The line is logged at warn for 4xx
// and error for 5xx responses.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = idx.New()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ann := &annotations{}
			ctx := context.WithValue(r.Context(), annotationKey{}, ann)
			ctx = WithContext(ctx, base.With("req_id", reqID))
			r = r.WithContext(ctx)

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			// r.Method is read after the handler ran so method overrides show.
			attrs := append([]any{
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"bytes", rw.written,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}, ann.snapshot()...)

			base.Log(r.Context(), accessLevel(r.URL.Path, rw.status), "http_request", attrs...)
		})
	}
}

func accessLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case healthPaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

type responseWriter struct {
	http.ResponseWriter

	status  int
	written int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

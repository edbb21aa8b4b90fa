package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/frontauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("bogus"))
}

func TestNewWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "frontauth", Version: "test", Env: "test", Output: &buf})
	logger.Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "frontauth", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestRedaction(t *testing.T) {
	t.Parallel()

	t.Run("default keys are masked", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slogx.New(slogx.Config{Format: "text", Output: &buf})
		logger.Info("signed in", "jwt", "eyJhbGciOi", "Password", "hunter2", "user_id", "user_1")

		out := buf.String()
		require.NotContains(t, out, "eyJhbGciOi")
		require.NotContains(t, out, "hunter2")
		require.Contains(t, out, "jwt=[REDACTED]")
		require.Contains(t, out, "user_id=user_1")
	})

	t.Run("empty list disables masking", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slogx.New(slogx.Config{Format: "text", Redact: []string{}, Output: &buf})
		logger.Info("issued", "token", "dvb_1")
		require.Contains(t, buf.String(), "token=dvb_1")
	})
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Format: "text", Output: &buf})
	ctx := slogx.With(slogx.WithContext(context.Background(), logger), "client_id", "client_1")
	slogx.FromContext(ctx).Info("scoped")
	require.Contains(t, buf.String(), "client_id=client_1")
}

func TestHTTPMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		for k, v := range header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("access line carries status and annotations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slogx.New(slogx.Config{Format: "text", Output: &buf})

		h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := slogx.Annotate(r.Context(), "client_id", "client_1")
			slogx.FromContext(ctx).Info("inside")
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))

		rec := serve(h, http.MethodGet, "/v1/client", map[string]string{slogx.RequestIDHeader: "abc"})
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "abc", rec.Header().Get(slogx.RequestIDHeader))

		out := buf.String()
		require.Contains(t, out, "msg=inside")
		require.Contains(t, out, "level=WARN msg=http_request")
		require.Contains(t, out, "req_id=abc")
		require.Contains(t, out, "status=418")
		require.Contains(t, out, "bytes=15")
		require.Contains(t, out, "path=/v1/client")
		require.Equal(t, 2, strings.Count(out, "client_id=client_1"))
	})

	t.Run("request id is generated when absent", func(t *testing.T) {
		logger := slogx.New(slogx.Config{Format: "text", Output: io.Discard})
		h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		rec := serve(h, http.MethodGet, "/v1/client", nil)
		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
	})

	t.Run("health checks log at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slogx.New(slogx.Config{Format: "text", Level: "info", Output: &buf})
		h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		serve(h, http.MethodGet, "/livez", nil)
		require.Empty(t, buf.String())
	})
}

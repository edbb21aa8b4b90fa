package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// Requester sends a logical request to the frontend API and decodes the
// response envelope. Errors are *ProviderError, *NetworkError or
// *MalformedResponseError.
type Requester interface {
	Request(ctx context.Context, req Request) (*Envelope, error)
}

// Envelope is a successful response. Response holds the primary resource: the
// body's "response" field, or the whole body when that field is absent.
// Client holds the sibling "client" record when the provider sent one.
type Envelope struct {
	StatusCode int
	Response   json.RawMessage
	Client     json.RawMessage
}

// HTTPTransport is the Requester used in production. It shapes each request,
// performs it with an http.Client whose cookie jar carries the provider's
// client cookie, and decodes the envelope.
type HTTPTransport struct {
	httpClient *http.Client
	logger     *slog.Logger
	opts       ShapeOptions

	mu         sync.RWMutex
	devBrowser string
}

// NewHTTPTransport returns a transport for the frontend API at baseURL.
func NewHTTPTransport(httpClient *http.Client, baseURL string, development bool, logger *slog.Logger) *HTTPTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPTransport{
		httpClient: httpClient,
		logger:     logger,
		opts: ShapeOptions{
			BaseURL:     baseURL,
			Development: development,
		},
	}
}

// SetVersions overrides the API and client version tags.
func (t *HTTPTransport) SetVersions(apiVersion, clientVersion string) {
	t.opts.APIVersion = apiVersion
	t.opts.ClientVersion = clientVersion
}

// SetDevBrowserToken sets the token attached on development instances.
func (t *HTTPTransport) SetDevBrowserToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.devBrowser = token
}

// DevBrowserToken returns the current dev-browser token, or "".
func (t *HTTPTransport) DevBrowserToken() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.devBrowser
}

// Development reports whether requests target a development instance.
func (t *HTTPTransport) Development() bool {
	return t.opts.Development
}

// Request implements Requester.
func (t *HTTPTransport) Request(ctx context.Context, req Request) (*Envelope, error) {
	opts := t.opts
	opts.DevBrowserToken = t.DevBrowserToken()
	shaped := ShapeRequest(req, opts)

	var body io.Reader
	if shaped.Body != "" {
		body = strings.NewReader(shaped.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, shaped.Method, shaped.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if shaped.ContentType != "" {
		httpReq.Header.Set("Content-Type", shaped.ContentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.DebugContext(ctx, "request failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	t.logger.DebugContext(ctx, "request completed", "method", req.Method, "path", req.Path, "status", resp.StatusCode)
	return decodeEnvelope(resp.StatusCode, raw)
}

// decodeEnvelope maps a raw HTTP status and body onto an Envelope or error.
func decodeEnvelope(status int, raw []byte) (*Envelope, error) {
	if status >= http.StatusBadRequest {
		return nil, parseErrorResponse(status, raw)
	}

	env := &Envelope{StatusCode: status}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return env, nil
	}

	var body struct {
		Response json.RawMessage `json:"response"`
		Client   json.RawMessage `json:"client"`
	}
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return nil, &MalformedResponseError{StatusCode: status, Err: err}
	}

	env.Response = body.Response
	if len(env.Response) == 0 {
		env.Response = json.RawMessage(trimmed)
	}
	if string(body.Client) != "null" {
		env.Client = body.Client
	}
	return env, nil
}

// unmarshalResponse decodes the primary resource of env into v.
func unmarshalResponse(env *Envelope, v any) error {
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return &MalformedResponseError{StatusCode: env.StatusCode, Err: errEmptyPayload}
	}
	if err := json.Unmarshal(env.Response, v); err != nil {
		return &MalformedResponseError{StatusCode: env.StatusCode, Err: err}
	}
	return nil
}

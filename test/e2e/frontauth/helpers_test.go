package frontauth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stubhttp "github.com/aussiebroadwan/frontauth/internal/providerstub/http"
	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

/*
 * Common constants and helpers for SDK end-to-end tests. Every test runs the
 * SDK against an in-process provider stub served over httptest.
 */

const (
	stubIssuer = "https://stub.example.com"

	userEmail    = "ada@example.com"
	userPassword = "correct-horse-battery"
)

type stub struct {
	URL     string
	Service *service.Service
	Router  *stubhttp.Router
}

// startStub serves a fresh provider stub for the duration of the test.
// configure, when non-nil, runs before routes are registered.
func startStub(t *testing.T, configure func(*stubhttp.Router)) *stub {
	t.Helper()

	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("e2e-key", pem)
	require.NoError(t, err)

	svc := service.New(service.Options{
		Signer: signer,
		Issuer: stubIssuer,
		Pepper: "e2e-pepper",
		Logger: slogx.Discard(),
	})

	router := stubhttp.NewRouter(svc, jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}}, "e2e", slogx.Discard())
	// Relaxed limits so tests making many rapid requests do not trip them.
	router.AttemptLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	router.DefaultLimit = router.AttemptLimit
	if configure != nil {
		configure(router)
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &stub{URL: srv.URL, Service: svc, Router: router}
}

func (s *stub) seedUser(t *testing.T, spec service.UserSpec) *service.SeededUser {
	t.Helper()
	if spec.EmailAddress == "" {
		spec.EmailAddress = userEmail
	}
	if spec.Password == "" {
		spec.Password = userPassword
	}
	u, err := s.Service.CreateUser(spec)
	require.NoError(t, err)
	return u
}

// newSDK builds and loads an SDK client for a development instance of the
// stub, persisting through store.
func (s *stub) newSDK(t *testing.T, store kvstore.Store, opts ...func(*authsdk.Config)) *authsdk.SDKClient {
	t.Helper()
	cfg := authsdk.Config{
		Domain:      s.URL,
		Development: true,
		Storage:     store,
		Logger:      slogx.Discard(),
	}
	// Stub tokens live for a minute, shorter than the default margin.
	cfg.TokenSafetyMargin = 10 * time.Second
	for _, o := range opts {
		o(&cfg)
	}

	c, err := authsdk.New(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Dispose)
	require.NoError(t, c.Load(t.Context()))
	return c
}

// verifier builds a session-token verifier from the stub's JWKS endpoint.
func (s *stub) verifier(t *testing.T) *jwtx.Verifier {
	t.Helper()
	keys, err := jwtx.FetchJWKS(t.Context(), nil, s.URL+jwtx.JWKSPath)
	require.NoError(t, err)
	return jwtx.NewVerifier(keys, stubIssuer, time.Minute)
}

func (s *stub) lastCode(t *testing.T, identifier string) string {
	t.Helper()
	code, ok := s.Service.LastCode(identifier)
	require.True(t, ok, "no code sent to %s", identifier)
	return code
}

// signIn completes a password sign-in for the default user.
func signIn(t *testing.T, c *authsdk.SDKClient) {
	t.Helper()
	si, err := c.SignIn().CreateWithPassword(t.Context(), userEmail, userPassword)
	require.NoError(t, err)
	require.True(t, si.IsComplete())
	require.True(t, c.IsSignedIn())
}

// wrongCode returns a code of the same length that differs from code.
func wrongCode(code string) string {
	b := []byte(code)
	if b[0] == '9' {
		b[0] = '0'
	} else {
		b[0]++
	}
	return string(b)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "correct-horse-battery"
)

func newTestRouter(t *testing.T) (*Router, *service.Service) {
	t.Helper()

	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pem)
	require.NoError(t, err)

	svc := service.New(service.Options{
		Signer: signer,
		Issuer: "https://stub.example.com",
		Pepper: "pepper",
		Logger: slogx.Discard(),
	})
	_, err = svc.CreateUser(service.UserSpec{EmailAddress: testEmail, Password: testPassword})
	require.NoError(t, err)

	r := NewRouter(svc, jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}}, "test", slogx.Discard())
	r.ApplyRoutes()
	return r, svc
}

// frontendURL builds a request target the way the SDK shapes it.
func frontendURL(path string, extra url.Values) string {
	q := url.Values{}
	q.Set(authsdk.ParamAPIVersion, authsdk.DefaultAPIVersion)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return path + "?" + q.Encode()
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func clientCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == ClientCookie {
			return c
		}
	}
	t.Fatalf("response set no %s cookie", ClientCookie)
	return nil
}

type envelope struct {
	Response json.RawMessage       `json:"response"`
	Client   *authsdk.ClientRecord `json:"client"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signIn(t *testing.T, h http.Handler) (*http.Cookie, *authsdk.ClientRecord) {
	t.Helper()
	rec := do(t, h, http.MethodPost, frontendURL("/v1/client/sign_ins", nil), url.Values{
		"identifier": {testEmail},
		"strategy":   {authsdk.StrategyPassword},
		"password":   {testPassword},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decode[envelope](t, rec)
	require.NotNil(t, env.Client)
	require.Len(t, env.Client.Sessions, 1)
	return clientCookie(t, rec), env.Client
}

func TestRouterClient(t *testing.T) {
	t.Parallel()

	t.Run("unknown caller gets a null client", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodGet, frontendURL("/v1/client", nil), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"response":null}`, rec.Body.String())
	})

	t.Run("missing api version is rejected", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodGet, "/v1/client", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[httpx.ErrorBody](t, rec)
		require.Len(t, body.Errors, 1)
		require.Equal(t, "api_version_missing", body.Errors[0].Code)
	})

	t.Run("dev browser token resolves the client", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodPost, "/v1/dev_browser", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		dev := decode[devBrowserResponse](t, rec)
		require.NotEmpty(t, dev.Token)

		rec = do(t, r, http.MethodGet, frontendURL("/v1/client", url.Values{authsdk.ParamDevBrowserToken: {dev.Token}}), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode[envelope](t, rec)

		var client authsdk.ClientRecord
		require.NoError(t, json.Unmarshal(env.Response, &client))
		require.Equal(t, dev.ID, client.ID)
	})
}

func TestRouterSignIn(t *testing.T) {
	t.Parallel()

	t.Run("password sign-in sets the cookie and returns the session", func(t *testing.T) {
		r, _ := newTestRouter(t)
		cookie, client := signIn(t, r)
		require.Equal(t, client.ID, cookie.Value)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, client.Sessions[0].ID, client.LastActiveSessionID)
	})

	t.Run("wrong password carries the client in meta", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodPost, frontendURL("/v1/client/sign_ins", nil), url.Values{
			"identifier": {testEmail},
			"strategy":   {authsdk.StrategyPassword},
			"password":   {"wrong"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decode[httpx.ErrorBody](t, rec)
		require.Equal(t, authsdk.ErrorCodePasswordIncorrect, body.Errors[0].Code)
		require.NotNil(t, body.Meta)
		require.NotNil(t, body.Meta.Client)
	})

	t.Run("attempts are rate limited", func(t *testing.T) {
		r, _ := newTestRouter(t)
		r.AttemptLimit = httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 2}
		r.Mux = http.NewServeMux()
		r.ApplyRoutes()

		form := url.Values{"identifier": {"nobody@example.com"}}
		for range 2 {
			rec := do(t, r, http.MethodPost, frontendURL("/v1/client/sign_ins", nil), form)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		}
		rec := do(t, r, http.MethodPost, frontendURL("/v1/client/sign_ins", nil), form)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestRouterSessions(t *testing.T) {
	t.Parallel()

	t.Run("token is verifiable against jwks", func(t *testing.T) {
		r, _ := newTestRouter(t)
		cookie, client := signIn(t, r)
		sid := client.Sessions[0].ID

		rec := do(t, r, http.MethodPost, frontendURL("/v1/client/sessions/"+sid+"/tokens", nil), url.Values{}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		tok := decode[tokenResponse](t, rec)
		require.Equal(t, "token", tok.Object)

		rec = do(t, r, http.MethodGet, "/v1/jwks", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		keys := decode[jwtx.JWKS](t, rec)

		claims, err := jwtx.NewVerifier(keys, "https://stub.example.com", 0).Verify(tok.JWT, time.Now())
		require.NoError(t, err)
		require.Equal(t, sid, claims.SID)
	})

	t.Run("method override reaches the delete route", func(t *testing.T) {
		r, _ := newTestRouter(t)
		cookie, _ := signIn(t, r)

		rec := do(t, r, http.MethodPost, frontendURL("/v1/client/sessions", url.Values{authsdk.ParamMethodOverride: {http.MethodDelete}}), url.Values{}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var client authsdk.ClientRecord
		require.NoError(t, json.Unmarshal(decode[envelope](t, rec).Response, &client))
		require.Equal(t, cookie.Value, client.ID)
		require.Empty(t, client.Sessions)
	})

	t.Run("touch switches the active organization", func(t *testing.T) {
		r, _ := newTestRouter(t)
		cookie, client := signIn(t, r)
		sid := client.Sessions[0].ID

		rec := do(t, r, http.MethodPost, frontendURL("/v1/organizations", nil), url.Values{"name": {"Analytical Engines"}}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var org authsdk.Organization
		require.NoError(t, json.Unmarshal(decode[envelope](t, rec).Response, &org))
		require.Equal(t, "analytical-engines", org.Slug)

		rec = do(t, r, http.MethodPost, frontendURL("/v1/client/sessions/"+sid+"/touch", nil), url.Values{"active_organization_id": {org.ID}}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var sess authsdk.Session
		require.NoError(t, json.Unmarshal(decode[envelope](t, rec).Response, &sess))
		require.Equal(t, org.ID, sess.LastActiveOrganizationID)
		require.NotNil(t, sess.ActiveOrganization())
	})

	t.Run("me without a session is signed out", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodGet, frontendURL("/v1/me", nil), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouterSystem(t *testing.T) {
	t.Parallel()

	t.Run("livez and readyz", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodGet, "/livez", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, r, http.MethodGet, "/readyz", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
	})

	t.Run("readyz degrades without a signer", func(t *testing.T) {
		svc := service.New(service.Options{Logger: slogx.Discard()})
		r := NewRouter(svc, jwtx.JWKS{}, "test", slogx.Discard())
		r.ApplyRoutes()

		rec := do(t, r, http.MethodGet, "/readyz", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "degraded", decode[HealthResponse](t, rec).Status)
	})

	t.Run("swagger serves the api document", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(t, r, http.MethodGet, "/swagger/doc.json", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc struct {
			Info  struct{ Title string } `json:"info"`
			Paths map[string]any         `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		require.Equal(t, "Frontauth Provider Stub API", doc.Info.Title)
		require.Contains(t, doc.Paths, "/v1/client/sign_ins")
		require.Contains(t, doc.Paths, "/v1/client/sessions/{sid}/tokens/{template}")
	})
}

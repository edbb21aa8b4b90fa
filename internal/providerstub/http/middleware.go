package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

// ClientCookie carries the client id between requests of one device.
const ClientCookie = "__client"

const clientCookieTTL = 365 * 24 * time.Hour

// MethodOverride turns POST requests carrying _method=PATCH|PUT|DELETE into
// that verb before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.URL.Query().Get(authsdk.ParamMethodOverride)); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ClientResolver attaches the caller's client id, taken from the dev-browser
// token or the client cookie. Unknown clients are left unresolved.
func ClientResolver(svc *service.Service) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := resolveClient(svc, r); id != "" {
				ctx := httpx.WithClientID(r.Context(), id)
				r = r.WithContext(slogx.Annotate(ctx, "client_id", id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClient(svc *service.Service, r *http.Request) string {
	if tok := r.URL.Query().Get(authsdk.ParamDevBrowserToken); tok != "" {
		if id, ok := svc.ClientForDevBrowser(tok); ok {
			return id
		}
	}
	if c, err := r.Cookie(ClientCookie); err == nil && svc.HasClient(c.Value) {
		return c.Value
	}
	return ""
}

// RequireAPIVersion rejects frontend API calls that do not name the API
// version they were written against.
func RequireAPIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.URL.Query().Get(authsdk.ParamAPIVersion)
		if v == "" {
			httpx.WriteError(w, http.StatusBadRequest, "api_version_missing",
				"API version missing",
				"Requests must carry the "+authsdk.ParamAPIVersion+" query parameter.",
				authsdk.ParamAPIVersion)
			return
		}
		next.ServeHTTP(w, r.WithContext(slogx.Annotate(r.Context(), "api_version", v)))
	})
}

// ensureClient returns the resolved client, creating one and setting its
// cookie when the caller has none yet.
func ensureClient(svc *service.Service, w http.ResponseWriter, r *http.Request) string {
	if id := httpx.ClientIDFromContext(r.Context()); id != "" {
		return id
	}
	id := svc.CreateClient()
	setClientCookie(w, r, id)
	return id
}

func setClientCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(clientCookieTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"

	_ "github.com/aussiebroadwan/frontauth/api/providerstub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         jwtx.JWKS
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Service *service.Service

	// AttemptLimit guards sign-in/sign-up creation and factor attempts.
	AttemptLimit httpx.RateLimitConfig
	DefaultLimit httpx.RateLimitConfig
}

func NewRouter(svc *service.Service, keys jwtx.JWKS, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		Service:      svc,
		AttemptLimit: httpx.AttemptLimit,
		DefaultLimit: httpx.DefaultLimit,
	}

	// MethodOverride must run before the mux matches on the verb.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		MethodOverride,
		ClientResolver(svc),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClient()
	r.registerSignIns()
	r.registerSignUps()
	r.registerSessions()
	r.registerMe()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Frontauth Provider Stub API
//	@version		0.1.0
//	@description	In-memory implementation of the hosted identity provider's Frontend API, for tests and local development.
//	@description
//	@description	Frontend routes take form-encoded bodies, require the __clerk_api_version query parameter and answer with a {response, client} envelope.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/frontauth
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// frontend wraps a frontend API handler with the version check and a per-client limit.
func (r *Router) frontend(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		RequireAPIVersion,
		httpx.RateLimitByClient(limit),
	)
}

func (r *Router) registerClient() {
	h := &ClientHandler{Service: r.Service}

	r.Mux.Handle("GET /v1/client", r.frontend(h.HandleGet, r.DefaultLimit))
	r.Mux.Handle("DELETE /v1/client/sessions", r.frontend(h.HandleSignOutAll, r.DefaultLimit))

	// Dev-browser bootstrap happens before the SDK knows its API version.
	r.Mux.Handle("POST /v1/dev_browser",
		httpx.Chain(http.HandlerFunc(h.HandleDevBrowser),
			httpx.RateLimitByIP(r.DefaultLimit),
		),
	)
}

func (r *Router) registerSignIns() {
	h := &SignInHandler{Service: r.Service}

	r.Mux.Handle("POST /v1/client/sign_ins", r.frontend(h.HandleCreate, r.AttemptLimit))
	r.Mux.Handle("POST /v1/client/sign_ins/{id}/prepare_first_factor", r.frontend(h.HandlePrepareFirstFactor, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sign_ins/{id}/attempt_first_factor", r.frontend(h.HandleAttemptFirstFactor, r.AttemptLimit))
	r.Mux.Handle("POST /v1/client/sign_ins/{id}/prepare_second_factor", r.frontend(h.HandlePrepareSecondFactor, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sign_ins/{id}/attempt_second_factor", r.frontend(h.HandleAttemptSecondFactor, r.AttemptLimit))
}

func (r *Router) registerSignUps() {
	h := &SignUpHandler{Service: r.Service}

	r.Mux.Handle("POST /v1/client/sign_ups", r.frontend(h.HandleCreate, r.AttemptLimit))
	r.Mux.Handle("PATCH /v1/client/sign_ups/{id}", r.frontend(h.HandleUpdate, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sign_ups/{id}/prepare_verification", r.frontend(h.HandlePrepareVerification, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sign_ups/{id}/attempt_verification", r.frontend(h.HandleAttemptVerification, r.AttemptLimit))
}

func (r *Router) registerSessions() {
	h := &SessionHandler{Service: r.Service}

	r.Mux.Handle("POST /v1/client/sessions/{sid}/touch", r.frontend(h.HandleTouch, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sessions/{sid}/tokens", r.frontend(h.HandleToken, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sessions/{sid}/tokens/{template}", r.frontend(h.HandleToken, r.DefaultLimit))
	r.Mux.Handle("POST /v1/client/sessions/{sid}/remove", r.frontend(h.HandleRemove, r.DefaultLimit))
}

func (r *Router) registerMe() {
	h := &MeHandler{Service: r.Service}

	r.Mux.Handle("GET /v1/me", r.frontend(h.HandleGet, r.DefaultLimit))
	r.Mux.Handle("PATCH /v1/me", r.frontend(h.HandleUpdate, r.DefaultLimit))
	r.Mux.Handle("GET /v1/me/organization_memberships", r.frontend(h.HandleMemberships, r.DefaultLimit))
	r.Mux.Handle("POST /v1/organizations", r.frontend(h.HandleCreateOrganization, r.DefaultLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET "+jwtx.JWKSPath,
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(r.DefaultLimit),
		),
	)
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.Service))
}

package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
)

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the components /readyz depends on.
type HealthChecks struct {
	Signer string `json:"signer"`
}

// JWKSHandler exposes the public keys session tokens are signed with.
//
//	@Summary		JSON Web Key Set
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	jwtx.JWKS	"Public signing keys"
//	@Router			/v1/jwks [get].
func JWKSHandler(keys jwtx.JWKS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, keys)
	}
}

// LivezHandler always answers 200 while the process is serving.
//
//	@Summary		Liveness check
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler answers 503 until the service can mint session tokens.
//
//	@Summary		Readiness check
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse	"No signing key loaded"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Signer: "ok"}
		status, code := "ok", http.StatusOK

		if !svc.Ready() {
			checks.Signer = "error: no signing key loaded"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

// ClientHandler serves the caller's client record and dev-browser bootstrap.
type ClientHandler struct {
	Service *service.Service
}

// HandleGet handles GET /v1/client. Callers without a client get a null
// response.
//
//	@Summary		Get the client
//	@Tags			Client
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Success		200					{object}	httpx.Envelope		"Client record, or null without one"
//	@Router			/v1/client [get].
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := httpx.ClientIDFromContext(r.Context())
	if id == "" {
		httpx.WriteEnvelope(w, http.StatusOK, nil, nil)
		return
	}
	httpx.WriteEnvelope(w, http.StatusOK, h.Service.Client(id), nil)
}

// HandleSignOutAll handles DELETE /v1/client/sessions.
//
//	@Summary		End every session on the client
//	@Tags			Client
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Success		200					{object}	httpx.Envelope		"Client with no active sessions"
//	@Router			/v1/client/sessions [delete].
func (h *ClientHandler) HandleSignOutAll(w http.ResponseWriter, r *http.Request) {
	id := httpx.ClientIDFromContext(r.Context())
	if err := h.Service.RemoveAllSessions(id); err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	httpx.WriteEnvelope(w, http.StatusOK, h.Service.Client(id), nil)
}

type devBrowserResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// HandleDevBrowser handles POST /v1/dev_browser: a fresh client bound to a
// token the caller presents as __clerk_db_jwt from then on.
//
//	@Summary		Bootstrap a development browser
//	@Description	Development instances only. The returned token identifies the client on later requests.
//	@Tags			Client
//	@Produce		json
//	@Success		200					{object}	devBrowserResponse	"Dev browser token"
//	@Router			/v1/dev_browser [post].
func (h *ClientHandler) HandleDevBrowser(w http.ResponseWriter, r *http.Request) {
	token, clientID := h.Service.CreateDevBrowser()
	setClientCookie(w, r, clientID)
	httpx.WriteJSON(w, http.StatusOK, devBrowserResponse{ID: clientID, Token: token})
}

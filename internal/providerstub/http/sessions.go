package http

import (
	"net/http"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

// SessionHandler serves /v1/client/sessions/{sid}.
type SessionHandler struct {
	Service *service.Service
}

// HandleTouch handles POST /v1/client/sessions/{sid}/touch. Sending
// active_organization_id, even empty, switches the active organization.
//
//	@Summary		Touch a session
//	@Description	Extends the session and optionally switches the active organization.
//	@Tags			Sessions
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			sid	path		string			true	"Session id"
//	@Param			active_organization_id	formData	string			false	"Organization to make active; empty clears it"
//	@Success		200					{object}	httpx.Envelope		"Session"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Router			/v1/client/sessions/{sid}/touch [post].
func (h *SessionHandler) HandleTouch(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sess, err := h.Service.Touch(
		httpx.ClientIDFromContext(r.Context()),
		r.PathValue("sid"),
		optionalField(r, "active_organization_id"),
	)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, sess)
}

type tokenResponse struct {
	Object string `json:"object"`
	JWT    string `json:"jwt"`
}

// HandleToken handles POST /v1/client/sessions/{sid}/tokens and
// POST /v1/client/sessions/{sid}/tokens/{template}.
//
//	@Summary		Mint a session token
//	@Tags			Sessions
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			sid	path		string			true	"Session id"
//	@Param			template	path		string			false	"JWT template name"
//	@Param			organization_id	formData	string			false	"Organization claim override"
//	@Success		200					{object}	tokenResponse	"Signed session token"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Router			/v1/client/sessions/{sid}/tokens [post]
//	@Router			/v1/client/sessions/{sid}/tokens/{template} [post].
func (h *SessionHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	tok, err := h.Service.Token(
		httpx.ClientIDFromContext(r.Context()),
		r.PathValue("sid"),
		r.PathValue("template"),
		r.PostForm.Get("organization_id"),
	)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Object: "token", JWT: tok})
}

// HandleRemove handles POST /v1/client/sessions/{sid}/remove.
//
//	@Summary		Sign out of a session
//	@Tags			Sessions
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			sid	path		string			true	"Session id"
//	@Success		200					{object}	httpx.Envelope		"Removed session"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Router			/v1/client/sessions/{sid}/remove [post].
func (h *SessionHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Service.RemoveSession(httpx.ClientIDFromContext(r.Context()), r.PathValue("sid"))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, sess)
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

// SignUpHandler serves /v1/client/sign_ups.
type SignUpHandler struct {
	Service *service.Service
}

func signUpParams(r *http.Request) service.SignUpParams {
	return service.SignUpParams{
		EmailAddress: r.PostForm.Get("email_address"),
		PhoneNumber:  r.PostForm.Get("phone_number"),
		Username:     r.PostForm.Get("username"),
		Password:     r.PostForm.Get("password"),
		FirstName:    r.PostForm.Get("first_name"),
		LastName:     r.PostForm.Get("last_name"),
	}
}

// HandleCreate handles POST /v1/client/sign_ups.
//
//	@Summary		Start a sign-up
//	@Tags			Sign-ups
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			email_address	formData	string			false	"Email address"
//	@Param			phone_number	formData	string			false	"Phone number"
//	@Param			username	formData	string			false	"Username"
//	@Param			password	formData	string			false	"Password"
//	@Param			first_name	formData	string			false	"First name"
//	@Param			last_name	formData	string			false	"Last name"
//	@Success		200					{object}	httpx.Envelope		"Sign-up attempt"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Failure		429					{object}	httpx.ErrorBody		"Too many attempts"
//	@Router			/v1/client/sign_ups [post].
func (h *SignUpHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	clientID := ensureClient(h.Service, w, r)

	su, err := h.Service.CreateSignUp(clientID, signUpParams(r))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respondFor(w, r, h.Service, clientID, su)
}

// HandleUpdate handles PATCH /v1/client/sign_ups/{id}.
//
//	@Summary		Update a sign-up
//	@Tags			Sign-ups
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-up id"
//	@Param			email_address	formData	string			false	"Email address"
//	@Param			phone_number	formData	string			false	"Phone number"
//	@Param			username	formData	string			false	"Username"
//	@Param			password	formData	string			false	"Password"
//	@Param			first_name	formData	string			false	"First name"
//	@Param			last_name	formData	string			false	"Last name"
//	@Success		200					{object}	httpx.Envelope		"Sign-up attempt"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/client/sign_ups/{id} [patch].
func (h *SignUpHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	su, err := h.Service.UpdateSignUp(httpx.ClientIDFromContext(r.Context()), r.PathValue("id"), signUpParams(r))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, su)
}

// HandlePrepareVerification handles POST /v1/client/sign_ups/{id}/prepare_verification.
//
//	@Summary		Send a sign-up verification
//	@Tags			Sign-ups
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-up id"
//	@Param			strategy	formData	string			true	"email_code or phone_code"
//	@Success		200					{object}	httpx.Envelope		"Sign-up attempt"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/client/sign_ups/{id}/prepare_verification [post].
func (h *SignUpHandler) HandlePrepareVerification(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	su, err := h.Service.PrepareVerification(httpx.ClientIDFromContext(r.Context()), r.PathValue("id"), r.PostForm.Get("strategy"))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, su)
}

// HandleAttemptVerification handles POST /v1/client/sign_ups/{id}/attempt_verification.
//
//	@Summary		Attempt a sign-up verification
//	@Tags			Sign-ups
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-up id"
//	@Param			strategy	formData	string			true	"email_code or phone_code"
//	@Param			code	formData	string			true	"Verification code"
//	@Success		200					{object}	httpx.Envelope		"Sign-up attempt, complete once every field is verified"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Failure		429					{object}	httpx.ErrorBody		"Too many attempts"
//	@Router			/v1/client/sign_ups/{id}/attempt_verification [post].
func (h *SignUpHandler) HandleAttemptVerification(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	su, err := h.Service.AttemptVerification(
		httpx.ClientIDFromContext(r.Context()),
		r.PathValue("id"),
		r.PostForm.Get("strategy"),
		r.PostForm.Get("code"),
	)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, su)
}

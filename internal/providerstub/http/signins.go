package http

import (
	"net/http"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

// SignInHandler serves /v1/client/sign_ins.
type SignInHandler struct {
	Service *service.Service
}

// HandleCreate handles POST /v1/client/sign_ins.
//
//	@Summary		Start a sign-in
//	@Tags			Sign-ins
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			identifier	formData	string			true	"Email address, phone number or username"
//	@Param			strategy	formData	string			false	"First factor strategy"
//	@Param			password	formData	string			false	"Password for the password strategy"
//	@Success		200					{object}	httpx.Envelope		"Sign-in attempt"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Failure		429					{object}	httpx.ErrorBody		"Too many attempts"
//	@Router			/v1/client/sign_ins [post].
func (h *SignInHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	clientID := ensureClient(h.Service, w, r)

	si, err := h.Service.CreateSignIn(clientID, service.SignInParams{
		Identifier: r.PostForm.Get("identifier"),
		Strategy:   r.PostForm.Get("strategy"),
		Password:   r.PostForm.Get("password"),
	})
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respondFor(w, r, h.Service, clientID, si)
}

// HandlePrepareFirstFactor handles POST /v1/client/sign_ins/{id}/prepare_first_factor.
//
//	@Summary		Prepare a first factor
//	@Tags			Sign-ins
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-in id"
//	@Param			strategy	formData	string			true	"Factor strategy"
//	@Param			email_address_id	formData	string			false	"Email address to send a code to"
//	@Param			phone_number_id	formData	string			false	"Phone number to send a code to"
//	@Success		200					{object}	httpx.Envelope		"Sign-in attempt"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/client/sign_ins/{id}/prepare_first_factor [post].
func (h *SignInHandler) HandlePrepareFirstFactor(w http.ResponseWriter, r *http.Request) {
	h.prepare(w, r, h.Service.PrepareFirstFactor)
}

// HandlePrepareSecondFactor handles POST /v1/client/sign_ins/{id}/prepare_second_factor.
//
//	@Summary		Prepare a second factor
//	@Tags			Sign-ins
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-in id"
//	@Param			strategy	formData	string			true	"Factor strategy"
//	@Param			phone_number_id	formData	string			false	"Phone number to send a code to"
//	@Success		200					{object}	httpx.Envelope		"Sign-in attempt"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/client/sign_ins/{id}/prepare_second_factor [post].
func (h *SignInHandler) HandlePrepareSecondFactor(w http.ResponseWriter, r *http.Request) {
	h.prepare(w, r, h.Service.PrepareSecondFactor)
}

// HandleAttemptFirstFactor handles POST /v1/client/sign_ins/{id}/attempt_first_factor.
//
//	@Summary		Attempt a first factor
//	@Tags			Sign-ins
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-in id"
//	@Param			strategy	formData	string			true	"Factor strategy"
//	@Param			password	formData	string			false	"Password"
//	@Param			code	formData	string			false	"Verification code"
//	@Success		200					{object}	httpx.Envelope		"Sign-in attempt, complete once verified"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Failure		429					{object}	httpx.ErrorBody		"Too many attempts"
//	@Router			/v1/client/sign_ins/{id}/attempt_first_factor [post].
func (h *SignInHandler) HandleAttemptFirstFactor(w http.ResponseWriter, r *http.Request) {
	h.attempt(w, r, h.Service.AttemptFirstFactor)
}

// HandleAttemptSecondFactor handles POST /v1/client/sign_ins/{id}/attempt_second_factor.
//
//	@Summary		Attempt a second factor
//	@Tags			Sign-ins
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			id	path		string			true	"Sign-in id"
//	@Param			strategy	formData	string			true	"Factor strategy"
//	@Param			code	formData	string			true	"Verification code"
//	@Success		200					{object}	httpx.Envelope		"Sign-in attempt, complete once verified"
//	@Failure		404					{object}	httpx.ErrorBody		"Unknown resource"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Failure		429					{object}	httpx.ErrorBody		"Too many attempts"
//	@Router			/v1/client/sign_ins/{id}/attempt_second_factor [post].
func (h *SignInHandler) HandleAttemptSecondFactor(w http.ResponseWriter, r *http.Request) {
	h.attempt(w, r, h.Service.AttemptSecondFactor)
}

func (h *SignInHandler) prepare(w http.ResponseWriter, r *http.Request, step func(string, string, service.FactorParams) (*authsdk.SignIn, error)) {
	if !parseForm(w, r) {
		return
	}
	si, err := step(httpx.ClientIDFromContext(r.Context()), r.PathValue("id"), service.FactorParams{
		Strategy:       r.PostForm.Get("strategy"),
		EmailAddressID: r.PostForm.Get("email_address_id"),
		PhoneNumberID:  r.PostForm.Get("phone_number_id"),
	})
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, si)
}

func (h *SignInHandler) attempt(w http.ResponseWriter, r *http.Request, step func(string, string, service.AttemptParams) (*authsdk.SignIn, error)) {
	if !parseForm(w, r) {
		return
	}
	si, err := step(httpx.ClientIDFromContext(r.Context()), r.PathValue("id"), service.AttemptParams{
		Strategy: r.PostForm.Get("strategy"),
		Password: r.PostForm.Get("password"),
		Code:     r.PostForm.Get("code"),
	})
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, si)
}

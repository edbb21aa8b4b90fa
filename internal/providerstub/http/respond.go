package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

const codeInternal = "internal_server_error"

// respond writes response wrapped with the caller's current client record.
func respond(w http.ResponseWriter, r *http.Request, svc *service.Service, response any) {
	var client any
	if id := httpx.ClientIDFromContext(r.Context()); id != "" {
		if c := svc.Client(id); c != nil {
			client = c
		}
	}
	httpx.WriteEnvelope(w, http.StatusOK, response, client)
}

// respondFor is respond for handlers that may have just created the client.
func respondFor(w http.ResponseWriter, r *http.Request, svc *service.Service, clientID string, response any) {
	respond(w, r.WithContext(httpx.WithClientID(r.Context(), clientID)), svc, response)
}

// writeError renders service errors as frontend API error bodies. Anything
// else is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, svc *service.Service, err error) {
	var e *service.Error
	if !errors.As(err, &e) {
		slogx.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, codeInternal,
			"Something went wrong", "Something went wrong. Please try again.", "")
		return
	}

	body := httpx.ErrorBody{
		Errors: []httpx.APIError{httpx.NewAPIError(e.Code, e.Message, e.LongMessage, e.Param)},
	}
	if e.ClientID != "" {
		if c := svc.Client(e.ClientID); c != nil {
			body.Meta = &httpx.BodyMeta{Client: c}
		}
	}
	httpx.WriteErrorBody(w, e.Status, body)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed_request",
			"Malformed request", "The request body could not be parsed.", "")
		return false
	}
	return true
}

// optionalField returns a pointer to the form value when the field was sent
// at all, even empty.
func optionalField(r *http.Request, name string) *string {
	if _, ok := r.PostForm[name]; !ok {
		return nil
	}
	v := r.PostForm.Get(name)
	return &v
}

func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

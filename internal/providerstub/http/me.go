package http

import (
	"net/http"

	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

// MeHandler serves the signed-in user: /v1/me and its organizations.
type MeHandler struct {
	Service *service.Service
}

// HandleGet handles GET /v1/me.
//
//	@Summary		Get the signed-in user
//	@Tags			User
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Success		200					{object}	httpx.Envelope		"User"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Router			/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.CurrentUser(httpx.ClientIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, u)
}

// HandleUpdate handles PATCH /v1/me.
//
//	@Summary		Update the signed-in user
//	@Tags			User
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			username	formData	string			false	"Username"
//	@Param			first_name	formData	string			false	"First name"
//	@Param			last_name	formData	string			false	"Last name"
//	@Param			primary_email_address_id	formData	string			false	"Email address to make primary"
//	@Success		200					{object}	httpx.Envelope		"Updated user"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/me [patch].
func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	u, err := h.Service.UpdateCurrentUser(httpx.ClientIDFromContext(r.Context()), service.UserUpdate{
		FirstName:             optionalField(r, "first_name"),
		LastName:              optionalField(r, "last_name"),
		Username:              optionalField(r, "username"),
		PrimaryEmailAddressID: optionalField(r, "primary_email_address_id"),
	})
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, u)
}

// HandleMemberships handles GET /v1/me/organization_memberships.
//
//	@Summary		List organization memberships
//	@Tags			Organizations
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Success		200					{object}	httpx.Envelope		"Memberships of the signed-in user"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Router			/v1/me/organization_memberships [get].
func (h *MeHandler) HandleMemberships(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Memberships(
		httpx.ClientIDFromContext(r.Context()),
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, list)
}

// HandleCreateOrganization handles POST /v1/organizations.
//
//	@Summary		Create an organization
//	@Description	The creator becomes its admin.
//	@Tags			Organizations
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			__clerk_api_version	query		string			true	"Frontend API version"
//	@Param			name	formData	string			true	"Organization name"
//	@Param			slug	formData	string			false	"URL slug"
//	@Success		200					{object}	httpx.Envelope		"Organization"
//	@Failure		401					{object}	httpx.ErrorBody		"No signed-in session"
//	@Failure		422					{object}	httpx.ErrorBody		"Invalid parameters"
//	@Router			/v1/organizations [post].
func (h *MeHandler) HandleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	org, err := h.Service.CreateOrganization(
		httpx.ClientIDFromContext(r.Context()),
		r.PostForm.Get("name"),
		r.PostForm.Get("slug"),
	)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	respond(w, r, h.Service, org)
}

package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// OrganizationList is one page of the current user's memberships.
type OrganizationList struct {
	Data       []OrganizationMembership `json:"data"`
	TotalCount int                      `json:"total_count"`
}

// Organizations returns the organizations of the page, in order.
func (l *OrganizationList) Organizations() []Organization {
	orgs := make([]Organization, 0, len(l.Data))
	for _, m := range l.Data {
		orgs = append(orgs, m.Organization)
	}
	return orgs
}

// ListOrganizations returns the current user's memberships. limit <= 0 uses
// the provider's default page size.
func (c *SDKClient) ListOrganizations(ctx context.Context, limit, offset int) (*OrganizationList, error) {
	if _, err := c.activeSessionID("list_organizations"); err != nil {
		return nil, err
	}

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	env, err := c.transport.Request(ctx, Request{Method: http.MethodGet, Path: "/me/organization_memberships", Query: query})
	if err != nil {
		return nil, err
	}

	var list OrganizationList
	if err := unmarshalResponse(env, &list); err != nil {
		return nil, err
	}
	for i := range list.Data {
		if err := list.Data[i].validate(); err != nil {
			return nil, &MalformedResponseError{StatusCode: env.StatusCode, Err: err}
		}
	}
	return &list, nil
}

// CreateOrganization creates an organization owned by the current user.
// slug may be empty to let the provider derive one.
func (c *SDKClient) CreateOrganization(ctx context.Context, name, slug string) (*Organization, error) {
	if _, err := c.activeSessionID("create_organization"); err != nil {
		return nil, err
	}

	env, err := c.transport.Request(ctx, Request{
		Method: http.MethodPost,
		Path:   "/organizations",
		Body:   form("name", name, "slug", slug),
	})
	if err != nil {
		return nil, err
	}
	return decodeResource[Organization](env.Response)
}

// SetActiveOrganization makes orgID the session's active organization, or
// clears it when orgID is "". Cached tokens of the session are dropped since
// they carry organization claims.
func (c *SDKClient) SetActiveOrganization(ctx context.Context, orgID string) error {
	sid, err := c.activeSessionID("set_active_organization")
	if err != nil {
		return err
	}

	s, err := c.touch(ctx, sid, url.Values{"active_organization_id": {orgID}})
	if err != nil {
		return err
	}

	c.tokens.Clear(ctx, sid)
	c.replaceSession(ctx, s)
	return nil
}

package authsdk

import (
	"context"
	"net/http"
)

// UserPatch lists the profile fields UpdateUser changes. Nil fields are left
// untouched.
type UserPatch struct {
	FirstName             *string
	LastName              *string
	Username              *string
	PrimaryEmailAddressID *string
}

func (p UserPatch) values() map[string]*string {
	return map[string]*string{
		"first_name":               p.FirstName,
		"last_name":                p.LastName,
		"username":                 p.Username,
		"primary_email_address_id": p.PrimaryEmailAddressID,
	}
}

// GetUser fetches the current user and updates local state.
func (c *SDKClient) GetUser(ctx context.Context) (*User, error) {
	if _, err := c.activeSessionID("get_user"); err != nil {
		return nil, err
	}

	env, err := c.transport.Request(ctx, Request{Method: http.MethodGet, Path: "/me"})
	if err != nil {
		return nil, err
	}
	u, err := decodeResource[User](env.Response)
	if err != nil {
		return nil, err
	}

	c.replaceUser(ctx, u)
	return u, nil
}

// UpdateUser changes profile fields of the current user.
func (c *SDKClient) UpdateUser(ctx context.Context, patch UserPatch) (*User, error) {
	if _, err := c.activeSessionID("update_user"); err != nil {
		return nil, err
	}

	body := form()
	for k, v := range patch.values() {
		if v != nil {
			body.Set(k, *v)
		}
	}

	env, err := c.transport.Request(ctx, Request{Method: http.MethodPatch, Path: "/me", Body: body})
	if err != nil {
		return nil, err
	}
	u, err := decodeResource[User](env.Response)
	if err != nil {
		return nil, err
	}

	c.replaceUser(ctx, u)
	return u, nil
}

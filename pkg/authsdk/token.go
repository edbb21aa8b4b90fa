package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// GetToken returns a session token for the current session, minted with
// template when it is non-empty. Tokens are served from the cache until they
// come within the safety margin of expiry. Provider errors are returned
// as-is and leave the session in place; only the refresher signs out a
// session the provider rejects.
func (c *SDKClient) GetToken(ctx context.Context, template string) (string, error) {
	sid, err := c.activeSessionID("get_token")
	if err != nil {
		return "", err
	}

	if tok, ok := c.tokens.Get(ctx, sid, template); ok {
		return tok, nil
	}

	path := "/client/sessions/" + url.PathEscape(sid) + "/tokens"
	if template != "" {
		path += "/" + url.PathEscape(template)
	}

	var body url.Values
	if org := c.Organization(); org != nil {
		body = url.Values{"organization_id": {org.ID}}
	}

	env, err := c.transport.Request(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return "", err
	}

	var resp struct {
		JWT string `json:"jwt"`
	}
	if err := unmarshalResponse(env, &resp); err != nil {
		return "", err
	}
	if resp.JWT == "" {
		return "", &MalformedResponseError{StatusCode: env.StatusCode, Err: errors.New("token response missing jwt")}
	}

	c.tokens.Save(ctx, sid, template, resp.JWT)
	return resp.JWT, nil
}

package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// ValidateSession asks the provider whether the current session is still
// active. An inactive session is cleared and (false, nil) returned; transport
// errors are returned without touching local state.
func (c *SDKClient) ValidateSession(ctx context.Context) (bool, error) {
	sid, err := c.activeSessionID("validate_session")
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return false, nil
		}
		return false, err
	}

	client, err := c.fetchClient(ctx)
	if err != nil {
		return false, err
	}

	if s := client.SessionByID(sid); s.IsActive(c.now()) {
		c.replaceSession(ctx, s)
		return true, nil
	}

	c.clearSession(ctx)
	return false, nil
}

// RefreshSession touches the current session, extending its lifetime and
// picking up server-side changes.
func (c *SDKClient) RefreshSession(ctx context.Context) error {
	if _, err := c.activeSessionID("refresh_session"); err != nil {
		return err
	}
	cur := c.Session()
	if cur == nil {
		return precondition("refresh_session", ErrNoActiveSession, "")
	}

	s, err := c.touch(ctx, cur.ID, url.Values{"active_organization_id": {cur.LastActiveOrganizationID}})
	if err != nil {
		return err
	}
	c.replaceSession(ctx, s)
	return nil
}

func (c *SDKClient) touch(ctx context.Context, sid string, body url.Values) (*Session, error) {
	env, err := c.transport.Request(ctx, Request{
		Method: http.MethodPost,
		Path:   "/client/sessions/" + url.PathEscape(sid) + "/touch",
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return decodeResource[Session](env.Response)
}

// refreshTick runs on the refresher. A session the provider rejects is
// cleared, which also stops the refresher; other failures are reported on
// the Error signal and retried on the next tick.
func (c *SDKClient) refreshTick(ctx context.Context) {
	err := c.RefreshSession(ctx)
	if err == nil {
		c.logger.DebugContext(ctx, "session refreshed")
		return
	}

	if IsSessionInvalid(err) {
		c.logger.InfoContext(ctx, "session rejected during refresh", "error", err)
		c.clearSession(context.WithoutCancel(ctx))
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}
	c.logger.WarnContext(ctx, "session refresh failed", "error", err)
	c.events.Error.emit(err)
}

// SignOut ends a session on the provider. With no argument it ends the
// current session; otherwise it ends sessionID, which may be another session
// of this client. Local state is cleared when the current session ends,
// including when the provider already forgot it.
func (c *SDKClient) SignOut(ctx context.Context, sessionID ...string) error {
	current := ""
	if s := c.Session(); s != nil {
		current = s.ID
	}
	sid := current
	if len(sessionID) > 0 && sessionID[0] != "" {
		sid = sessionID[0]
	}
	if sid == "" {
		return nil
	}

	_, err := c.transport.Request(ctx, Request{
		Method: http.MethodPost,
		Path:   "/client/sessions/" + url.PathEscape(sid) + "/remove",
	})
	if err != nil && !IsSessionInvalid(err) {
		return err
	}

	if sid == current {
		c.clearSession(ctx)
	} else {
		c.tokens.Clear(ctx, sid)
	}
	return nil
}

// SignOutAll ends every session of this client.
func (c *SDKClient) SignOutAll(ctx context.Context) error {
	_, err := c.transport.Request(ctx, Request{Method: http.MethodDelete, Path: "/client/sessions"})
	if err != nil && !IsSessionInvalid(err) {
		return err
	}

	c.clearSession(ctx)
	c.tokens.Clear(ctx, "")
	return nil
}

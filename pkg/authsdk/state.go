package authsdk

import (
	"context"
	"fmt"
)

// authState is the client's view of who is signed in. Its fields change
// together under SDKClient.mu.
type authState struct {
	session      *Session
	user         *User
	organization *Organization
}

func stateFor(s *Session) authState {
	return authState{session: s, user: s.User, organization: s.ActiveOrganization()}
}

// adoptSession makes s the current session: state is set, the cache is
// rewritten with a fresh timestamp, the refresher runs and SessionCreated
// fires once.
func (c *SDKClient) adoptSession(ctx context.Context, s *Session) {
	c.mu.Lock()
	c.state = stateFor(s)
	c.mu.Unlock()

	c.sessions.Save(ctx, s)
	if !c.isDisposed() {
		c.refresher.start()
	}

	c.logger.InfoContext(ctx, "session adopted", "session_id", s.ID)
	c.events.SessionCreated.emit(s)
}

// replaceSession stores a newer copy of the current session, such as the
// result of a touch. OrganizationUpdated fires when the active organization
// changed.
func (c *SDKClient) replaceSession(ctx context.Context, s *Session) {
	c.mu.Lock()
	prevOrg := ""
	if c.state.organization != nil {
		prevOrg = c.state.organization.ID
	}
	c.state = stateFor(s)
	org := c.state.organization
	c.mu.Unlock()

	c.sessions.Save(ctx, s)

	orgID := ""
	if org != nil {
		orgID = org.ID
	}
	if orgID != prevOrg {
		c.events.OrganizationUpdated.emit(org)
	}
}

// replaceUser stores a newer copy of the current user and fires UserUpdated.
func (c *SDKClient) replaceUser(ctx context.Context, u *User) {
	c.mu.Lock()
	if c.state.session == nil {
		c.mu.Unlock()
		return
	}
	s := *c.state.session
	if len(u.OrganizationMemberships) == 0 && c.state.user != nil {
		u.OrganizationMemberships = c.state.user.OrganizationMemberships
	}
	s.User = u
	c.state = stateFor(&s)
	c.mu.Unlock()

	c.sessions.Save(ctx, &s)
	c.events.UserUpdated.emit(u)
}

// clearSession forgets the current session. It is idempotent:
// SessionDestroyed only fires when there was a session to clear.
func (c *SDKClient) clearSession(ctx context.Context) {
	c.refresher.stop()

	c.mu.Lock()
	prev := c.state.session
	c.state = authState{}
	c.mu.Unlock()

	c.sessions.Clear(ctx)
	if prev == nil {
		return
	}
	c.tokens.Clear(ctx, prev.ID)

	c.logger.InfoContext(ctx, "session cleared", "session_id", prev.ID)
	c.events.SessionDestroyed.emit(prev.ID)
}

// completeAttempt adopts the session a finished sign-in or sign-up created.
func (c *SDKClient) completeAttempt(ctx context.Context, client *ClientRecord, sessionID string) error {
	s := client.SessionByID(sessionID)
	if s == nil {
		return &MalformedResponseError{Err: fmt.Errorf("created session %s missing from client", sessionID)}
	}
	adopted := *s
	c.adoptSession(ctx, &adopted)
	return nil
}

// activeSessionID returns the current session id, or a precondition error.
func (c *SDKClient) activeSessionID(op string) (string, error) {
	if c.isDisposed() {
		return "", precondition(op, ErrDisposed, "")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.session == nil {
		return "", precondition(op, ErrNoActiveSession, "")
	}
	return c.state.session.ID, nil
}

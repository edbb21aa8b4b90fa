package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
)

var errNoSigner = errors.New("service: no token signer configured")

// Client returns the client record, or nil when id is unknown.
func (s *Service) Client(id string) *authsdk.ClientRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil
	}
	return s.renderClientLocked(c)
}

// createSessionLocked signs u in on c and makes the new session the client's
// last active one.
func (s *Service) createSessionLocked(c *clientRecord, u *userRecord) *sessionRecord {
	now := s.now()
	sess := &sessionRecord{
		ID:           s.newID(idx.KindSession),
		ClientID:     c.ID,
		UserID:       u.ID,
		Status:       authsdk.SessionActive,
		LastActiveAt: now,
		ExpireAt:     now.Add(s.sessionTTL),
		AbandonAt:    now.Add(s.sessionTTL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.sessions[sess.ID] = sess
	c.SessionIDs = append(c.SessionIDs, sess.ID)
	c.LastActiveSessionID = sess.ID
	c.UpdatedAt = now

	s.logger.Info("session created", "session_id", sess.ID, "user_id", u.ID, "client_id", c.ID)
	return sess
}

// sessionLocked resolves sid on the client. Unknown sessions are not found;
// ones that are no longer active fail authentication.
func (s *Service) sessionLocked(clientID, sid string) (*sessionRecord, *Error) {
	sess, ok := s.sessions[sid]
	if !ok || sess.ClientID != clientID {
		return nil, notFound("session")
	}
	s.expireLocked(sess, s.now())
	if sess.Status != authsdk.SessionActive {
		return nil, authenticationInvalid()
	}
	return sess, nil
}

// Touch marks the session active now and extends its lifetime. A non-nil
// orgID switches the active organization; "" clears it.
func (s *Service) Touch(clientID, sid string, orgID *string) (*authsdk.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, e := s.sessionLocked(clientID, sid)
	if e != nil {
		return nil, e
	}
	if orgID != nil {
		if *orgID != "" && s.membershipLocked(sess.UserID, *orgID) == nil {
			return nil, notMember()
		}
		sess.ActiveOrgID = *orgID
	}

	now := s.now()
	sess.LastActiveAt = now
	sess.ExpireAt = now.Add(s.sessionTTL)
	sess.AbandonAt = sess.ExpireAt
	sess.UpdatedAt = now
	if c, ok := s.clients[clientID]; ok {
		c.LastActiveSessionID = sess.ID
		c.UpdatedAt = now
	}
	return s.renderSessionLocked(sess), nil
}

// Token mints a session token. orgID overrides the session's active
// organization for this token only.
func (s *Service) Token(clientID, sid, template, orgID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signer == nil {
		return "", errNoSigner
	}

	sess, e := s.sessionLocked(clientID, sid)
	if e != nil {
		return "", e
	}

	claims := jwtx.NewSessionClaims(s.issuer, sess.UserID, sess.ID, s.tokenTTL, s.now())
	claims.Template = template

	if orgID == "" {
		orgID = sess.ActiveOrgID
	}
	if orgID != "" {
		m := s.membershipLocked(sess.UserID, orgID)
		if m == nil {
			return "", notMember()
		}
		claims.OrgID = orgID
		claims.OrgRole = m.Role
		if org, ok := s.orgs[orgID]; ok {
			claims.OrgSlug = org.Slug
		}
	}

	tok, err := s.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tok, nil
}

// RemoveSession signs one session out.
func (s *Service) RemoveSession(clientID, sid string) (*authsdk.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok || sess.ClientID != clientID {
		return nil, notFound("session")
	}
	s.endSessionLocked(sess, authsdk.SessionRemoved)
	return s.renderSessionLocked(sess), nil
}

// RemoveAllSessions ends every session of the client.
func (s *Service) RemoveAllSessions(clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, e := s.clientLocked(clientID)
	if e != nil {
		return e
	}
	for _, sid := range c.SessionIDs {
		if sess, ok := s.sessions[sid]; ok && sess.Status == authsdk.SessionActive {
			s.endSessionLocked(sess, authsdk.SessionEnded)
		}
	}
	return nil
}

func (s *Service) endSessionLocked(sess *sessionRecord, status authsdk.SessionStatus) {
	now := s.now()
	if sess.Status == authsdk.SessionActive {
		sess.Status = status
	}
	sess.UpdatedAt = now

	c, ok := s.clients[sess.ClientID]
	if !ok {
		return
	}
	c.UpdatedAt = now
	if c.LastActiveSessionID == sess.ID {
		c.LastActiveSessionID = ""
		if active := s.activeSessionsLocked(c); len(active) > 0 {
			c.LastActiveSessionID = active[len(active)-1].ID
		}
	}
	s.logger.Info("session ended", "session_id", sess.ID, "status", sess.Status)
}

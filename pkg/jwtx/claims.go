package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTokenTTL is how long a freshly minted session token lives.
// Session tokens are short-lived and re-issued from the session, so a
// minute is plenty.
const DefaultSessionTokenTTL = 60 * time.Second

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrMissingExp  = errors.New("jwtx: token has no exp claim")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
)

// SessionClaims are the claims carried by a session token. Subject is the
// user id; organization claims are only present when the session has an
// active organization.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`

	// Authorized party, the origin the token was issued to
	AZP string `json:"azp,omitempty"`

	OrgID   string `json:"org_id,omitempty"`
	OrgSlug string `json:"org_slug,omitempty"`
	OrgRole string `json:"org_role,omitempty"`

	// Template the token was shaped with, empty for the default template
	Template string `json:"tpl,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(issuer, userID, sessionID string, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID: sessionID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateExpiryWithLeeway checks exp and nbf against now, allowing leeway
// of clock skew either way.
func (c *SessionClaims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

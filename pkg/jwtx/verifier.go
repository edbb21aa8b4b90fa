package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks session tokens against a published key set.
type Verifier struct {
	keys   JWKS
	issuer string
	leeway time.Duration
}

// NewVerifier builds a verifier. An empty issuer is not enforced.
func NewVerifier(keys JWKS, issuer string, leeway time.Duration) *Verifier {
	return &Verifier{keys: keys, issuer: issuer, leeway: leeway}
}

// Verify validates the signature and time claims of token at now.
func (v *Verifier) Verify(token string, now time.Time) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		jwk, ok := v.keys.Find(kid)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		pub, err := jwk.Ed25519PublicKey()
		if err != nil {
			return nil, err
		}
		return ed25519.PublicKey(pub), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSig
		}
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("jwtx: issuer mismatch: %q", claims.Issuer)
	}
	if err := claims.ValidateExpiryWithLeeway(now, v.leeway); err != nil {
		return nil, err
	}

	return claims, nil
}

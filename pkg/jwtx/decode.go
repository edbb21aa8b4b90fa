package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unverifiedParser tolerates padded base64url segments; tokens handed back
// by some storage layers come back with "=" padding restored or missing.
var unverifiedParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeUnverified decodes the payload segment of token without checking
// the signature. Only use it for client-side bookkeeping such as caching.
func DecodeUnverified(token string) (*SessionClaims, error) {
	var claims SessionClaims
	if _, _, err := unverifiedParser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &claims, nil
}

// ExpiryUnverified returns the exp claim of token without verifying it.
func ExpiryUnverified(token string) (time.Time, error) {
	claims, err := DecodeUnverified(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExp
	}
	return claims.ExpiresAt.Time, nil
}

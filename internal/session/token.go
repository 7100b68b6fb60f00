package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is an informational, unverified view of the access token.
// The server remains the sole judge of validity; this exists for logging
// and UI hints only (e.g. "signed in as", "expires at").
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekClaims decodes the token without verifying its signature. Returns
// false when the credential is not a parseable JWT; an opaque token is
// still a perfectly valid credential.
func PeekClaims(token string) (TokenClaims, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return TokenClaims{}, false
	}

	var claims TokenClaims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, true
}

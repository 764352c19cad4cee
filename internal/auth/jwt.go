package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew guards against using a token that expires mid-request.
const expirySkew = 10 * time.Second

// Expired reports whether the token's exp claim has passed (or the token is
// unreadable). The signature is not verified: the server is the authority,
// this is only a local pre-check to avoid pointless round-trips.
func Expired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Now().Add(expirySkew).After(exp.Time)
}

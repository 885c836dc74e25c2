package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// expirySkew refreshes tokens slightly before they actually expire, so a
// request started near the boundary does not lose the race.
const expirySkew = 30 * time.Second

var errNoExpiry = errors.New("token carries no expiry claim")

// TokenExpiresAt reads the exp claim without verifying the signature. The
// backend is the authority on token validity; the client only inspects expiry
// to decide whether a proactive refresh is worthwhile.
func TokenExpiresAt(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpired reports whether the bearer token is expired or about to be.
// Unparseable tokens and tokens without an expiry are treated as live: the
// backend will reject them if they are not, and the 403 retry path covers it.
func TokenExpired(token string, now time.Time) bool {
	expiresAt, err := TokenExpiresAt(token)
	if err != nil {
		return false
	}
	return !now.Add(expirySkew).Before(expiresAt)
}

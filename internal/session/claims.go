package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The commerce API signs the token; this side only reads claims for
// display, so parsing is unverified on purpose.

// UserID extracts the userId claim. Zero when the token is absent,
// malformed or carries no user id.
func UserID(token string) int64 {
	claims := parseClaims(token)
	if claims == nil {
		return 0
	}

	switch v := claims["userId"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return id
	case float64:
		return int64(v)
	}
	return 0
}

// Expired reports whether the token's exp claim has passed. Tokens
// without a readable exp claim count as expired.
func Expired(token string) bool {
	claims := parseClaims(token)
	if claims == nil {
		return true
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}
	return time.Unix(int64(exp), 0).Before(time.Now())
}

func parseClaims(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenExpired reads the exp claim of a JWT access token without
// verifying its signature; the upstream remains the authority. Tokens that
// are not JWTs or carry no exp are treated as live.
func accessTokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry reads the exp claim of an access token without verifying its signature.
// The client cannot verify server tokens; the expiry only bounds how long a
// remembered session is kept. A token without exp returns the zero time.
func AccessTokenExpiry(accessToken string) (time.Time, error) {
	accessToken = strings.TrimPrefix(accessToken, "Bearer ")
	if accessToken == "" {
		return time.Time{}, errors.New("empty access token")
	}

	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(accessToken, claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

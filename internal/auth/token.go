// Package auth signs and verifies the bearer tokens that authorize result
// submissions to a puzzle server. Client and server share one HMAC secret.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when a request carries no bearer token.
var ErrNoToken = errors.New("auth: missing bearer token")

// Claims identifies the player a token was issued for.
type Claims struct {
	Player string `json:"player"`
	jwt.RegisteredClaims
}

// Sign issues an HS256 token for player valid for ttl.
func Sign(secret []byte, player string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth: empty secret")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Player: player,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   player,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// Verify parses token and returns the player it was issued for.
func Verify(secret []byte, token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	if !parsed.Valid || claims.Player == "" {
		return "", errors.New("auth: invalid token")
	}
	return claims.Player, nil
}

// Bearer extracts the token from an `Authorization: Bearer <token>` header.
func Bearer(r *http.Request) (string, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return "", ErrNoToken
	}
	tok := strings.TrimSpace(a[7:])
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// NormalizeName trims surrounding whitespace from a player name.
func NormalizeName(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup checks name and password shape before an account is created.
func ValidateSignup(name, password string) error {
	if len(name) < 3 || len(name) > 24 {
		return errors.New("name must be 3-24 chars")
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("name: letters, numbers, underscore only")
		}
	}
	if len(password) < 8 || len(password) > 72 {
		return errors.New("password must be 8-72 chars")
	}
	return nil
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Package utils provides password hashing and token helpers shared by
// the auth handler and middleware.
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry. Clients send it in
// the Authorization header on protected endpoints.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// RefreshToken is the raw long-lived token returned to the client. The
// database stores only its SHA-256 hash.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// IssueAccessToken signs an access token for a user. The claims carry
// the user id as subject and the role name ("USER"/"ADMIN"), which the
// auth middleware re-validates on every request; nothing about identity
// or role is ever trusted from the request body.
func IssueAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// MintRefreshToken returns a cryptographically random refresh token
// valid for ttlDays days.
func MintRefreshToken(ttlDays int) (RefreshToken, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: hex.EncodeToString(buf),
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashRefreshToken returns the hex SHA-256 digest of a raw refresh token.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

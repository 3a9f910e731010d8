package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const DefaultTokenBytes = 32

var tokenEncoding = base64.RawURLEncoding

// NewOpaqueToken returns a URL-safe random token of size bytes of entropy.
// The token is only ever shown to the client; storage keeps HashToken of it.
func NewOpaqueToken(size int) (string, error) {
	if size <= 0 {
		size = DefaultTokenBytes
	}
	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return tokenEncoding.EncodeToString(raw), nil
}

// HashToken is the at-rest form of bearer and refresh tokens. Lookups by
// refresh token compare digests, never raw values.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return tokenEncoding.EncodeToString(digest[:])
}

// NormalizeEmail lowercases and trims an address so that login and the
// uniqueness checks agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

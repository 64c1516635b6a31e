package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
)

// GenerateAPIKey produces a new plaintext secret and its storage hash.
// The secret is 32 bytes from crypto/rand, base64url-encoded without
// padding, so it never contains '+', '/' or '='. If the secure random
// source fails the error is returned as-is; there is no weaker fallback.
func GenerateAPIKey() (plaintext string, keyHash string, err error) {
	b := make([]byte, apikey.APIKeySecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to read secure random source: %w", err)
	}

	plaintext = base64.RawURLEncoding.EncodeToString(b)
	return plaintext, HashAPIKey(plaintext), nil
}

// HashAPIKey maps a plaintext secret to its 64-char hex SHA-256 digest.
// Deterministic and unsalted: lookups are straight equality on the digest.
// Only high-entropy generated secrets may pass through here.
func HashAPIKey(plaintext string) string {
	hashBytes := sha256.Sum256([]byte(plaintext))
	return fmt.Sprintf("%x", hashBytes)
}

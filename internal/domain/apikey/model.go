package apikey

import "time"

// APIKey is one issued credential. The plaintext secret is never stored;
// KeyHash holds its SHA-256 hex digest and is the lookup column.
type APIKey struct {
	ID         int64      `db:"id"`
	KeyHash    string     `db:"key_hash"`
	OwnerName  string     `db:"owner_name"`
	OwnerEmail *string    `db:"owner_email"`
	RateLimit  int        `db:"rate_limit"`
	IsActive   bool       `db:"is_active"`
	ExpiresAt  *time.Time `db:"expires_at"`
	CreatedAt  time.Time  `db:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
}

const APIKeySecretBytes = 32

// Revoked reports whether the key has been administratively disabled.
func (k *APIKey) Revoked() bool {
	return !k.IsActive
}

// Expired reports whether the key has an expiry in the past relative to now.
// A nil ExpiresAt means the key never expires.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}

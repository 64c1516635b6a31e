package dto

import "time"

type CreateAPIKeyRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty"`
}

type CreateAPIKeyResponse struct {
	Success         bool      `json:"success"`
	APIKey          string    `json:"api_key"`
	Name            string    `json:"name"`
	Email           *string   `json:"email,omitempty"`
	RateLimit       int       `json:"rate_limit"`
	CreatedAt       time.Time `json:"created_at"`
	Message         string    `json:"message"`
	ImportantNotice string    `json:"important_notice"`
}

// APIKeyResponse exposes key metadata only. The hash never leaves the store
// and the plaintext only exists in CreateAPIKeyResponse.
type APIKeyResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      *string    `json:"email,omitempty"`
	RateLimit  int        `json:"rate_limit"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

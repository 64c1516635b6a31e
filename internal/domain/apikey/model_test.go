package apikey

import (
	"testing"
	"time"
)

func TestRevoked(t *testing.T) {
	key := APIKey{IsActive: true}
	if key.Revoked() {
		t.Error("active key reported as revoked")
	}
	key.IsActive = false
	if !key.Revoked() {
		t.Error("inactive key not reported as revoked")
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	key := APIKey{IsActive: true}
	if key.Expired(now) {
		t.Error("key without expiry reported as expired")
	}

	past := now.Add(-time.Second)
	key.ExpiresAt = &past
	if !key.Expired(now) {
		t.Error("key expired one second ago not reported as expired")
	}

	future := now.Add(time.Second)
	key.ExpiresAt = &future
	if key.Expired(now) {
		t.Error("key expiring in the future reported as expired")
	}
}

package apikey

import (
	"context"
	"time"
)

type Repository interface {
	FindByHash(ctx context.Context, keyHash string) (*APIKey, error)
	Create(ctx context.Context, key *APIKey) (*APIKey, error)
	List(ctx context.Context) ([]*APIKey, error)
	UpdateLastUsed(ctx context.Context, id int64, lastUsed time.Time) error
	Revoke(ctx context.Context, id int64) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

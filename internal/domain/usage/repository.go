package usage

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	CountSince(ctx context.Context, apiKeyID int64, since time.Time) (int64, error)
}

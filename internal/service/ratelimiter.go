package service

import (
	"context"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/usage"
	"go.uber.org/zap"
)

// RateLimiter decides whether a key may make another request by counting its
// usage records inside the trailing window. There is no counter state to keep
// consistent; the audit log itself is the source of truth.
type RateLimiter struct {
	usageRepo usage.Repository
	window    time.Duration
	logger    *zap.Logger
}

func NewRateLimiter(usageRepo usage.Repository, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		usageRepo: usageRepo,
		window:    window,
		logger:    logger.Named("RateLimiter"),
	}
}

// Allow reports whether the key is under its quota for the sliding window
// ending now. If the count query fails the limiter FAILS OPEN: the request is
// allowed and the error is logged. A store hiccup must degrade quota
// enforcement, not turn into a full outage. Do not "fix" this to fail closed.
func (l *RateLimiter) Allow(ctx context.Context, apiKeyID int64, limit int) bool {
	since := time.Now().UTC().Add(-l.window)

	count, err := l.usageRepo.CountSince(ctx, apiKeyID, since)
	if err != nil {
		l.logger.Error("Usage count query failed, failing open",
			zap.Int64("api_key_id", apiKeyID),
			zap.Error(err),
		)
		return true
	}

	return count < int64(limit)
}

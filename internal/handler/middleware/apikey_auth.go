package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/cinevault/movie-catalog-api/internal/domain/usage"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/service"
	"github.com/cinevault/movie-catalog-api/internal/util"
)

const (
	apiKeyHeader       = "X-API-Key"
	identityContextKey = "apiKeyIdentity"

	sideEffectTimeout = 5 * time.Second
)

// Identity is what an authenticated request carries downstream. Handlers may
// read it but must not mutate it.
type Identity struct {
	APIKeyID  int64
	Name      string
	Email     *string
	RateLimit int
}

// APIKeyAuthMiddleware gates protected routes. Per request: extract the
// presented key, hash it, look the hash up, check active then expiry then
// quota, fire the best-effort side effects, attach the identity and continue.
// Revoked and expired keys are rejected before the rate check so they never
// consume quota or accumulate new usage records.
func APIKeyAuthMiddleware(
	keyRepo apikey.Repository,
	usageRepo usage.Repository,
	limiter *service.RateLimiter,
	logger *zap.Logger,
) gin.HandlerFunc {
	log := logger.Named("APIKeyAuthMiddleware")
	return func(c *gin.Context) {
		presented := c.GetHeader(apiKeyHeader)
		if presented == "" {
			log.Debug("API key header is missing", zap.String("header", apiKeyHeader))
			authDecisions.WithLabelValues("denied_missing").Inc()
			_ = c.Error(fmt.Errorf("%w: API key required", ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		// Hash unconditionally so the lookup shape is identical whether or
		// not the key exists.
		keyHash := util.HashAPIKey(presented)

		keyRecord, err := keyRepo.FindByHash(c.Request.Context(), keyHash)
		if err != nil {
			if errors.Is(err, ierr.ErrAPIKeyNotFound) {
				log.Warn("Presented API key not found")
				authDecisions.WithLabelValues("denied_unknown").Inc()
				_ = c.Error(fmt.Errorf("%w: invalid API key", ierr.ErrUnauthorized))
				c.Abort()
				return
			}

			log.Error("Failed to query API key repository", zap.Error(err))
			authDecisions.WithLabelValues("denied_store_error").Inc()
			_ = c.Error(fmt.Errorf("%w: API key lookup failed", ierr.ErrInternalServer))
			c.Abort()
			return
		}

		if keyRecord.Revoked() {
			log.Warn("Revoked API key presented", zap.Int64("key_id", keyRecord.ID))
			authDecisions.WithLabelValues("denied_revoked").Inc()
			_ = c.Error(ierr.ErrAPIKeyRevoked)
			c.Abort()
			return
		}

		now := time.Now().UTC()
		if keyRecord.Expired(now) {
			log.Warn("Expired API key presented",
				zap.Int64("key_id", keyRecord.ID),
				zap.Timep("expires_at", keyRecord.ExpiresAt),
			)
			authDecisions.WithLabelValues("denied_expired").Inc()
			_ = c.Error(ierr.ErrAPIKeyExpired)
			c.Abort()
			return
		}

		if !limiter.Allow(c.Request.Context(), keyRecord.ID, keyRecord.RateLimit) {
			log.Warn("API key over rate limit",
				zap.Int64("key_id", keyRecord.ID),
				zap.Int("rate_limit", keyRecord.RateLimit),
			)
			authDecisions.WithLabelValues("denied_rate_limited").Inc()
			_ = c.Error(ierr.ErrRateLimited)
			c.Abort()
			return
		}

		// The decision is made. Side effects run detached and can never turn
		// this ALLOW into an error response.
		rec := usage.Record{
			APIKeyID:    keyRecord.ID,
			Endpoint:    c.Request.URL.Path,
			HTTPMethod:  c.Request.Method,
			RequestedAt: now,
		}
		if ip := c.ClientIP(); ip != "" {
			rec.CallerIP = &ip
		}
		if agent := c.Request.UserAgent(); agent != "" {
			rec.CallerAgent = &agent
		}
		go recordUsage(keyRepo, usageRepo, rec, now, log)

		authDecisions.WithLabelValues("allowed").Inc()
		c.Set(identityContextKey, &Identity{
			APIKeyID:  keyRecord.ID,
			Name:      keyRecord.OwnerName,
			Email:     keyRecord.OwnerEmail,
			RateLimit: keyRecord.RateLimit,
		})
		c.Next()
	}
}

// recordUsage updates last_used_at and appends the usage record with its own
// timeout context, detached from the request lifecycle. Failures are logged
// only.
func recordUsage(keyRepo apikey.Repository, usageRepo usage.Repository, rec usage.Record, now time.Time, log *zap.Logger) {
	ctxAsync, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if err := keyRepo.UpdateLastUsed(ctxAsync, rec.APIKeyID, now); err != nil {
		log.Error("Failed to update API key last used time asynchronously",
			zap.Int64("key_id", rec.APIKeyID), zap.Error(err))
	}
	if err := usageRepo.Insert(ctxAsync, &rec); err != nil {
		log.Error("Failed to insert usage record asynchronously",
			zap.Int64("key_id", rec.APIKeyID), zap.Error(err))
	}
}

// GetAPIKeyIdentity returns the identity attached by APIKeyAuthMiddleware,
// or nil when the request did not pass through it.
func GetAPIKeyIdentity(c *gin.Context) *Identity {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return identity
}

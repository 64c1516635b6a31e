package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// NewRedisClient dials the instance that backs the expiry-sweep queue and
// fails fast when it is unreachable. The health endpoint keeps pinging
// through the returned client; asynq maintains its own connections to the
// same address.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Named("Redis").Info("Connected to Redis", zap.String("addr", cfg.Addr))
	return client, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/usage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UsageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUsageRepository(db *pgxpool.Pool, logger *zap.Logger) *UsageRepository {
	return &UsageRepository{
		db:     db,
		logger: logger.Named("UsageRepository"),
	}
}

var _ usage.Repository = (*UsageRepository)(nil)

func (r *UsageRepository) Insert(ctx context.Context, rec *usage.Record) error {
	query := `
		INSERT INTO api_key_usage (api_key_id, endpoint, http_method, caller_ip, caller_agent, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		rec.APIKeyID,
		rec.Endpoint,
		rec.HTTPMethod,
		rec.CallerIP,
		rec.CallerAgent,
		rec.RequestedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert usage record", zap.Int64("api_key_id", rec.APIKeyID), zap.Error(err))
		return fmt.Errorf("db error inserting usage record: %w", err)
	}
	return nil
}

func (r *UsageRepository) CountSince(ctx context.Context, apiKeyID int64, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM api_key_usage WHERE api_key_id = $1 AND requested_at > $2`

	var count int64
	err := r.db.QueryRow(ctx, query, apiKeyID, since).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count usage records", zap.Int64("api_key_id", apiKeyID), zap.Error(err))
		return 0, fmt.Errorf("db error counting usage records: %w", err)
	}
	return count, nil
}

package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// APIKeyExpireSweepHandler periodically flips is_active off for keys whose
// expiry has passed. The auth middleware checks expires_at on every request
// anyway; the sweep just keeps the stored flag honest for listings and ops.
type APIKeyExpireSweepHandler struct {
	repo   apikey.Repository
	logger *zap.Logger
}

func NewAPIKeyExpireSweepHandler(repo apikey.Repository, logger *zap.Logger) *APIKeyExpireSweepHandler {
	return &APIKeyExpireSweepHandler{
		repo:   repo,
		logger: logger.Named("APIKeyExpireSweepHandler"),
	}
}

func (h *APIKeyExpireSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if t.Type() != TypeAPIKeyExpireSweep {
		return fmt.Errorf("unexpected task type: %s", t.Type())
	}

	var p ExpireSweepPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.logger.Error("Failed to unmarshal payload for api key expire sweep", zap.Error(err), zap.ByteString("payload", t.Payload()))
		return fmt.Errorf("invalid payload: %v", err)
	}

	h.logger.Info("Processing api key expire sweep task...")

	deactivated, err := h.repo.DeactivateExpired(ctx, time.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to deactivate expired api keys", zap.Error(err))
		return fmt.Errorf("repository error deactivating expired api keys: %w", err)
	}

	h.logger.Info("API key expire sweep finished", zap.Int64("deactivated", deactivated))
	return nil
}

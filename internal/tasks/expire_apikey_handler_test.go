package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type sweepOnlyRepo struct {
	deactivated int64
	sweepErr    error
	sweptAt     time.Time
}

func (r *sweepOnlyRepo) FindByHash(context.Context, string) (*apikey.APIKey, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepOnlyRepo) Create(context.Context, *apikey.APIKey) (*apikey.APIKey, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepOnlyRepo) List(context.Context) ([]*apikey.APIKey, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepOnlyRepo) UpdateLastUsed(context.Context, int64, time.Time) error {
	return errors.New("not implemented")
}

func (r *sweepOnlyRepo) Revoke(context.Context, int64) error {
	return errors.New("not implemented")
}

func (r *sweepOnlyRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	r.sweptAt = now
	return r.deactivated, r.sweepErr
}

func TestExpireSweepProcessTask(t *testing.T) {
	repo := &sweepOnlyRepo{deactivated: 3}
	handler := NewAPIKeyExpireSweepHandler(repo, zap.NewNop())

	task, err := NewAPIKeyExpireSweepTask()
	if err != nil {
		t.Fatalf("NewAPIKeyExpireSweepTask() returned error: %v", err)
	}

	if err := handler.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessTask() returned error: %v", err)
	}
	if repo.sweptAt.IsZero() {
		t.Error("DeactivateExpired was not called")
	}
	if repo.sweptAt.Location() != time.UTC {
		t.Errorf("sweep time zone = %v, want UTC", repo.sweptAt.Location())
	}
}

func TestExpireSweepPropagatesRepositoryError(t *testing.T) {
	repo := &sweepOnlyRepo{sweepErr: errors.New("deadlock detected")}
	handler := NewAPIKeyExpireSweepHandler(repo, zap.NewNop())

	task, err := NewAPIKeyExpireSweepTask()
	if err != nil {
		t.Fatalf("NewAPIKeyExpireSweepTask() returned error: %v", err)
	}

	if err := handler.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("ProcessTask() returned nil, want error so asynq retries")
	}
}

func TestExpireSweepRejectsWrongTaskType(t *testing.T) {
	handler := NewAPIKeyExpireSweepHandler(&sweepOnlyRepo{}, zap.NewNop())

	other := asynq.NewTask("some:other:task", []byte("{}"))
	if err := handler.ProcessTask(context.Background(), other); err == nil {
		t.Fatal("ProcessTask() accepted a foreign task type")
	}
}

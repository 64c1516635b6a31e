package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/usage"
	"go.uber.org/zap"
)

type stubUsageRepo struct {
	mu       sync.Mutex
	records  []usage.Record
	countErr error

	lastSince time.Time
}

func (r *stubUsageRepo) Insert(_ context.Context, rec *usage.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubUsageRepo) CountSince(_ context.Context, apiKeyID int64, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSince = since
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, rec := range r.records {
		if rec.APIKeyID == apiKeyID && rec.RequestedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *stubUsageRepo) addRecords(apiKeyID int64, n int, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		r.records = append(r.records, usage.Record{APIKeyID: apiKeyID, RequestedAt: at})
	}
}

func TestRateLimiterAllowBoundary(t *testing.T) {
	repo := &stubUsageRepo{}
	limiter := NewRateLimiter(repo, time.Hour, zap.NewNop())
	ctx := context.Background()

	const limit = 3
	recent := time.Now().UTC().Add(-time.Minute)

	if !limiter.Allow(ctx, 1, limit) {
		t.Fatal("empty window: Allow() = false, want true")
	}

	repo.addRecords(1, limit-1, recent)
	if !limiter.Allow(ctx, 1, limit) {
		t.Fatalf("count %d of limit %d: Allow() = false, want true", limit-1, limit)
	}

	repo.addRecords(1, 1, recent)
	if limiter.Allow(ctx, 1, limit) {
		t.Fatalf("count %d of limit %d: Allow() = true, want false", limit, limit)
	}
}

func TestRateLimiterIgnoresRecordsOutsideWindow(t *testing.T) {
	repo := &stubUsageRepo{}
	limiter := NewRateLimiter(repo, time.Hour, zap.NewNop())

	repo.addRecords(1, 100, time.Now().UTC().Add(-61*time.Minute))

	if !limiter.Allow(context.Background(), 1, 10) {
		t.Fatal("records older than the window counted against the quota")
	}
}

func TestRateLimiterWindowStart(t *testing.T) {
	repo := &stubUsageRepo{}
	limiter := NewRateLimiter(repo, time.Hour, zap.NewNop())

	before := time.Now().UTC().Add(-time.Hour)
	limiter.Allow(context.Background(), 1, 10)
	after := time.Now().UTC().Add(-time.Hour)

	if repo.lastSince.Before(before) || repo.lastSince.After(after) {
		t.Errorf("window start %v not within [%v, %v]", repo.lastSince, before, after)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	repo := &stubUsageRepo{countErr: errors.New("relation does not exist")}
	limiter := NewRateLimiter(repo, time.Hour, zap.NewNop())

	// A broken usage store degrades quota enforcement instead of taking the
	// whole API down.
	if !limiter.Allow(context.Background(), 1, 10) {
		t.Fatal("Allow() = false on count error, want fail-open true")
	}
}

func TestRateLimiterScopesCountToKey(t *testing.T) {
	repo := &stubUsageRepo{}
	limiter := NewRateLimiter(repo, time.Hour, zap.NewNop())
	ctx := context.Background()

	repo.addRecords(1, 10, time.Now().UTC().Add(-time.Minute))

	if limiter.Allow(ctx, 1, 10) {
		t.Error("exhausted key allowed")
	}
	if !limiter.Allow(ctx, 2, 10) {
		t.Error("fresh key denied because of another key's usage")
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/movie"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"go.uber.org/zap"
)

type stubMovieRepo struct {
	mu     sync.Mutex
	nextID int64
	movies map[int64]*movie.Movie

	lastListParams movie.ListParams
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{movies: make(map[int64]*movie.Movie)}
}

func (r *stubMovieRepo) Create(_ context.Context, m *movie.Movie) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	r.movies[m.ID] = &cp
	return m.ID, nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id int64) (*movie.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, ierr.ErrNotFound
	}
	return &movie.Detail{Movie: *m}, nil
}

func (r *stubMovieRepo) List(_ context.Context, params movie.ListParams) ([]*movie.Movie, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastListParams = params
	out := make([]*movie.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *movie.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		return ierr.ErrNotFound
	}
	cp := *m
	cp.UpdatedAt = time.Now().UTC()
	r.movies[m.ID] = &cp
	return nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return ierr.ErrNotFound
	}
	delete(r.movies, id)
	return nil
}

func strPtr(s string) *string        { return &s }
func int32Ptr(v int32) *int32        { return &v }
func int64Ptr(v int64) *int64        { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestCreateMovie(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zap.NewNop())

	release := time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateMovie(context.Background(), &dto.CreateMovieRequest{
		Title:          "The Matrix",
		ReleaseDate:    timePtr(release),
		RuntimeMinutes: int32Ptr(136),
		MPARating:      strPtr("R"),
	})
	if err != nil {
		t.Fatalf("CreateMovie() returned error: %v", err)
	}

	if created.ID == 0 {
		t.Error("created movie has no id")
	}
	if created.Title != "The Matrix" {
		t.Errorf("title = %q, want %q", created.Title, "The Matrix")
	}
	if !created.ReleaseDate.Valid || !created.ReleaseDate.Time.Equal(release) {
		t.Errorf("release date = %v, want %v", created.ReleaseDate, release)
	}
	if created.Budget.Valid {
		t.Error("absent budget stored as non-null")
	}
}

func TestUpdateMovieIsPartial(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateMovie(ctx, &dto.CreateMovieRequest{
		Title:     "Working Title",
		Overview:  strPtr("Original overview."),
		MPARating: strPtr("PG-13"),
		Budget:    int64Ptr(1000000),
	})
	if err != nil {
		t.Fatalf("CreateMovie() returned error: %v", err)
	}

	updated, err := svc.UpdateMovie(ctx, created.ID, &dto.UpdateMovieRequest{
		Title:  strPtr("Final Title"),
		Budget: int64Ptr(2000000),
	})
	if err != nil {
		t.Fatalf("UpdateMovie() returned error: %v", err)
	}

	if updated.Title != "Final Title" {
		t.Errorf("title = %q, want updated value", updated.Title)
	}
	if updated.Budget != (sql.NullInt64{Int64: 2000000, Valid: true}) {
		t.Errorf("budget = %v, want updated value", updated.Budget)
	}
	// Untouched fields survive the partial update.
	if updated.Overview != (sql.NullString{String: "Original overview.", Valid: true}) {
		t.Errorf("overview = %v, want original value preserved", updated.Overview)
	}
	if updated.MPARating != (sql.NullString{String: "PG-13", Valid: true}) {
		t.Errorf("mpa rating = %v, want original value preserved", updated.MPARating)
	}
}

func TestUpdateMovieNotFound(t *testing.T) {
	svc := NewMovieService(newStubMovieRepo(), zap.NewNop())

	_, err := svc.UpdateMovie(context.Background(), 42, &dto.UpdateMovieRequest{Title: strPtr("X")})
	if !errors.Is(err, ierr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteMovie(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateMovie(ctx, &dto.CreateMovieRequest{Title: "Ephemeral"})
	if err != nil {
		t.Fatalf("CreateMovie() returned error: %v", err)
	}

	if err := svc.DeleteMovie(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMovie() returned error: %v", err)
	}
	if _, err := svc.GetMovieByID(ctx, created.ID); !errors.Is(err, ierr.ErrNotFound) {
		t.Errorf("movie still retrievable after delete: err = %v", err)
	}
	if err := svc.DeleteMovie(ctx, created.ID); !errors.Is(err, ierr.ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestListMoviesPassesFilters(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zap.NewNop())

	req := &dto.ListMoviesRequest{
		Query:     strPtr("matrix"),
		GenreID:   int64Ptr(3),
		Year:      func() *int { y := 1999; return &y }(),
		Limit:     20,
		Offset:    40,
		SortBy:    "release_date",
		SortOrder: "ASC",
	}
	if _, _, err := svc.ListMovies(context.Background(), req); err != nil {
		t.Fatalf("ListMovies() returned error: %v", err)
	}

	got := repo.lastListParams
	if got.Query == nil || *got.Query != "matrix" {
		t.Errorf("params query = %v, want matrix", got.Query)
	}
	if got.GenreID == nil || *got.GenreID != 3 {
		t.Errorf("params genre = %v, want 3", got.GenreID)
	}
	if got.Year == nil || *got.Year != 1999 {
		t.Errorf("params year = %v, want 1999", got.Year)
	}
	if got.Limit != 20 || got.Offset != 40 {
		t.Errorf("params limit/offset = %d/%d, want 20/40", got.Limit, got.Offset)
	}
	if got.SortBy != "release_date" || got.SortOrder != "ASC" {
		t.Errorf("params sort = %s %s, want release_date ASC", got.SortBy, got.SortOrder)
	}
}

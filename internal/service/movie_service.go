package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/movie"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"go.uber.org/zap"
)

type MovieService struct {
	repo   movie.Repository
	logger *zap.Logger
}

func NewMovieService(repo movie.Repository, logger *zap.Logger) *MovieService {
	return &MovieService{
		repo:   repo,
		logger: logger.Named("MovieService"),
	}
}

func (s *MovieService) CreateMovie(ctx context.Context, req *dto.CreateMovieRequest) (*movie.Detail, error) {
	s.logger.Info("Creating movie", zap.String("title", req.Title))

	newMovie := &movie.Movie{
		Title:          req.Title,
		OriginalTitle:  toNullString(req.OriginalTitle),
		ReleaseDate:    toNullTime(req.ReleaseDate),
		RuntimeMinutes: toNullInt32(req.RuntimeMinutes),
		Overview:       toNullString(req.Overview),
		Budget:         toNullInt64(req.Budget),
		Revenue:        toNullInt64(req.Revenue),
		MPARating:      toNullString(req.MPARating),
		CollectionID:   toNullInt64(req.CollectionID),
		PosterURL:      toNullString(req.PosterURL),
		BackdropURL:    toNullString(req.BackdropURL),
	}

	insertedID, err := s.repo.Create(ctx, newMovie)
	if err != nil {
		return nil, fmt.Errorf("repository error during movie creation: %w", err)
	}

	created, err := s.repo.FindByID(ctx, insertedID)
	if err != nil {
		s.logger.Error("Failed to find newly created movie by ID", zap.Int64("id", insertedID), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve created movie (id: %d): %w", insertedID, err)
	}

	s.logger.Info("Movie created successfully", zap.Int64("id", created.ID), zap.String("title", created.Title))
	return created, nil
}

func (s *MovieService) GetMovieByID(ctx context.Context, id int64) (*movie.Detail, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) ListMovies(ctx context.Context, req *dto.ListMoviesRequest) ([]*movie.Movie, int64, error) {
	params := movie.ListParams{
		Query:        req.Query,
		GenreID:      req.GenreID,
		StudioID:     req.StudioID,
		DirectorID:   req.DirectorID,
		ActorID:      req.ActorID,
		CollectionID: req.CollectionID,
		Year:         req.Year,
		MPARating:    req.MPARating,
		Limit:        req.Limit,
		Offset:       req.Offset,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}

	movies, totalCount, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("repository error listing movies: %w", err)
	}
	return movies, totalCount, nil
}

// UpdateMovie applies a partial update: only fields present in the request
// replace the stored values.
func (s *MovieService) UpdateMovie(ctx context.Context, id int64, req *dto.UpdateMovieRequest) (*movie.Detail, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m := existing.Movie
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.OriginalTitle != nil {
		m.OriginalTitle = toNullString(req.OriginalTitle)
	}
	if req.ReleaseDate != nil {
		m.ReleaseDate = toNullTime(req.ReleaseDate)
	}
	if req.RuntimeMinutes != nil {
		m.RuntimeMinutes = toNullInt32(req.RuntimeMinutes)
	}
	if req.Overview != nil {
		m.Overview = toNullString(req.Overview)
	}
	if req.Budget != nil {
		m.Budget = toNullInt64(req.Budget)
	}
	if req.Revenue != nil {
		m.Revenue = toNullInt64(req.Revenue)
	}
	if req.MPARating != nil {
		m.MPARating = toNullString(req.MPARating)
	}
	if req.CollectionID != nil {
		m.CollectionID = toNullInt64(req.CollectionID)
	}
	if req.PosterURL != nil {
		m.PosterURL = toNullString(req.PosterURL)
	}
	if req.BackdropURL != nil {
		m.BackdropURL = toNullString(req.BackdropURL)
	}

	if err := s.repo.Update(ctx, &m); err != nil {
		return nil, fmt.Errorf("repository error updating movie %d: %w", id, err)
	}

	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func toNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func toNullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

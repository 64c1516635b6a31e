package service

import (
	"context"
	"fmt"

	"github.com/cinevault/movie-catalog-api/internal/domain/catalog"
	"go.uber.org/zap"
)

type CatalogService struct {
	repo   catalog.Repository
	logger *zap.Logger
}

func NewCatalogService(repo catalog.Repository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger.Named("CatalogService"),
	}
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]*catalog.Genre, error) {
	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository error listing genres: %w", err)
	}
	return genres, nil
}

func (s *CatalogService) ListStudios(ctx context.Context, limit, offset int) ([]*catalog.Studio, int64, error) {
	studios, total, err := s.repo.ListStudios(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository error listing studios: %w", err)
	}
	return studios, total, nil
}

func (s *CatalogService) ListCollections(ctx context.Context, limit, offset int) ([]*catalog.Collection, int64, error) {
	collections, total, err := s.repo.ListCollections(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository error listing collections: %w", err)
	}
	return collections, total, nil
}

func (s *CatalogService) ListDirectors(ctx context.Context, limit, offset int) ([]*catalog.Person, int64, error) {
	directors, total, err := s.repo.ListDirectors(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository error listing directors: %w", err)
	}
	return directors, total, nil
}

func (s *CatalogService) ListActors(ctx context.Context, limit, offset int) ([]*catalog.Person, int64, error) {
	actors, total, err := s.repo.ListActors(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository error listing actors: %w", err)
	}
	return actors, total, nil
}

func (s *CatalogService) GetStats(ctx context.Context) (*catalog.Stats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository error fetching catalog stats: %w", err)
	}
	s.logger.Debug("Catalog stats fetched", zap.Int64("movies", stats.Movies))
	return stats, nil
}

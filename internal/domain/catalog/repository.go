package catalog

import "context"

type Repository interface {
	ListGenres(ctx context.Context) ([]*Genre, error)
	ListStudios(ctx context.Context, limit, offset int) ([]*Studio, int64, error)
	ListCollections(ctx context.Context, limit, offset int) ([]*Collection, int64, error)
	ListDirectors(ctx context.Context, limit, offset int) ([]*Person, int64, error)
	ListActors(ctx context.Context, limit, offset int) ([]*Person, int64, error)
	GetStats(ctx context.Context) (*Stats, error)
}

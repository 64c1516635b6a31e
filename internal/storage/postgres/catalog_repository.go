package postgres

import (
	"context"
	"fmt"

	"github.com/cinevault/movie-catalog-api/internal/domain/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CatalogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCatalogRepository(db *pgxpool.Pool, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:     db,
		logger: logger.Named("CatalogRepository"),
	}
}

var _ catalog.Repository = (*CatalogRepository)(nil)

func (r *CatalogRepository) ListGenres(ctx context.Context) ([]*catalog.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT genre_id, genre_name FROM genres ORDER BY genre_name`)
	if err != nil {
		r.logger.Error("Failed to query genres", zap.Error(err))
		return nil, fmt.Errorf("database error on list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*catalog.Genre, 0)
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("database scan error on list genres: %w", err)
		}
		genres = append(genres, &g)
	}
	return genres, rows.Err()
}

func (r *CatalogRepository) ListStudios(ctx context.Context, limit, offset int) ([]*catalog.Studio, int64, error) {
	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM studios`).Scan(&totalCount); err != nil {
		r.logger.Error("Failed to count studios", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on count studios: %w", err)
	}

	query := `
        SELECT studio_id, studio_name, logo_url, country
        FROM studios
        ORDER BY studio_name
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query studios", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on list studios: %w", err)
	}
	defer rows.Close()

	studios := make([]*catalog.Studio, 0)
	for rows.Next() {
		var s catalog.Studio
		if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.Country); err != nil {
			return nil, 0, fmt.Errorf("database scan error on list studios: %w", err)
		}
		studios = append(studios, &s)
	}
	return studios, totalCount, rows.Err()
}

func (r *CatalogRepository) ListCollections(ctx context.Context, limit, offset int) ([]*catalog.Collection, int64, error) {
	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM collections`).Scan(&totalCount); err != nil {
		r.logger.Error("Failed to count collections", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on count collections: %w", err)
	}

	query := `
        SELECT collection_id, collection_name
        FROM collections
        ORDER BY collection_name
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query collections", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]*catalog.Collection, 0)
	for rows.Next() {
		var c catalog.Collection
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, 0, fmt.Errorf("database scan error on list collections: %w", err)
		}
		collections = append(collections, &c)
	}
	return collections, totalCount, rows.Err()
}

func (r *CatalogRepository) ListDirectors(ctx context.Context, limit, offset int) ([]*catalog.Person, int64, error) {
	return r.listPeople(ctx, "directors", "director_id", "director_name", limit, offset)
}

func (r *CatalogRepository) ListActors(ctx context.Context, limit, offset int) ([]*catalog.Person, int64, error) {
	return r.listPeople(ctx, "actors", "actor_id", "actor_name", limit, offset)
}

func (r *CatalogRepository) listPeople(ctx context.Context, table, idCol, nameCol string, limit, offset int) ([]*catalog.Person, int64, error) {
	var totalCount int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&totalCount); err != nil {
		r.logger.Error("Failed to count people", zap.String("table", table), zap.Error(err))
		return nil, 0, fmt.Errorf("database error on count %s: %w", table, err)
	}

	query := fmt.Sprintf(`
        SELECT %s, %s, profile_url
        FROM %s
        ORDER BY %s
        LIMIT $1 OFFSET $2
    `, idCol, nameCol, table, nameCol)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query people", zap.String("table", table), zap.Error(err))
		return nil, 0, fmt.Errorf("database error on list %s: %w", table, err)
	}
	defer rows.Close()

	people := make([]*catalog.Person, 0)
	for rows.Next() {
		var p catalog.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.ProfileURL); err != nil {
			return nil, 0, fmt.Errorf("database scan error on list %s: %w", table, err)
		}
		people = append(people, &p)
	}
	return people, totalCount, rows.Err()
}

func (r *CatalogRepository) GetStats(ctx context.Context) (*catalog.Stats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM movies),
            (SELECT COUNT(*) FROM genres),
            (SELECT COUNT(*) FROM studios),
            (SELECT COUNT(*) FROM collections),
            (SELECT COUNT(*) FROM directors),
            (SELECT COUNT(*) FROM actors)
    `
	var stats catalog.Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Movies,
		&stats.Genres,
		&stats.Studios,
		&stats.Collections,
		&stats.Directors,
		&stats.Actors,
	)
	if err != nil {
		r.logger.Error("Failed to query catalog stats", zap.Error(err))
		return nil, fmt.Errorf("database error on catalog stats: %w", err)
	}
	return &stats, nil
}

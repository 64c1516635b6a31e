package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cinevault/movie-catalog-api/internal/domain/movie"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MovieRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMovieRepository(db *pgxpool.Pool, logger *zap.Logger) *MovieRepository {
	return &MovieRepository{
		db:     db,
		logger: logger.Named("MovieRepository"),
	}
}

var _ movie.Repository = (*MovieRepository)(nil)

// sortColumns whitelists user-facing sort keys; anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"title":        "m.title",
	"release_date": "m.release_date",
	"runtime":      "m.runtime_minutes",
	"revenue":      "m.revenue",
	"created_at":   "m.created_at",
}

func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) (int64, error) {
	query := `
        INSERT INTO movies (
            title, original_title, release_date, runtime_minutes, overview,
            budget, revenue, mpa_rating, collection_id, poster_url, backdrop_url
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        ) RETURNING movie_id
    `
	var insertedID int64
	err := r.db.QueryRow(ctx, query,
		m.Title,
		m.OriginalTitle,
		m.ReleaseDate,
		m.RuntimeMinutes,
		m.Overview,
		m.Budget,
		m.Revenue,
		m.MPARating,
		m.CollectionID,
		m.PosterURL,
		m.BackdropURL,
	).Scan(&insertedID)

	if err != nil {
		r.logger.Error("Failed to create movie in database", zap.Error(err))
		return 0, fmt.Errorf("database error on create movie: %w", err)
	}

	r.logger.Info("Movie created successfully", zap.Int64("id", insertedID), zap.String("title", m.Title))
	return insertedID, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*movie.Detail, error) {
	query := `
        SELECT
            m.movie_id, m.title, m.original_title, m.release_date, m.runtime_minutes,
            m.overview, m.budget, m.revenue, m.mpa_rating, m.collection_id,
            c.collection_name, m.poster_url, m.backdrop_url, m.created_at, m.updated_at
        FROM movies m
        LEFT JOIN collections c ON c.collection_id = m.collection_id
        WHERE m.movie_id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var detail movie.Detail
	if err := scanMovie(row, &detail.Movie); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.ErrNotFound
		}
		r.logger.Error("Failed to find movie by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("database error on find movie: %w", err)
	}

	var err error
	detail.Genres, err = r.movieNames(ctx, `
        SELECT g.genre_name FROM genres g
        JOIN movie_genres mg ON mg.genre_id = g.genre_id
        WHERE mg.movie_id = $1 ORDER BY g.genre_name`, id)
	if err != nil {
		return nil, err
	}

	detail.Studios, err = r.movieNames(ctx, `
        SELECT s.studio_name FROM studios s
        JOIN movie_studios ms ON ms.studio_id = s.studio_id
        WHERE ms.movie_id = $1 ORDER BY s.studio_name`, id)
	if err != nil {
		return nil, err
	}

	detail.Directors, err = r.movieNames(ctx, `
        SELECT d.director_name FROM directors d
        JOIN movie_directors md ON md.director_id = d.director_id
        WHERE md.movie_id = $1 ORDER BY d.director_name`, id)
	if err != nil {
		return nil, err
	}

	detail.Producers, err = r.movieNames(ctx, `
        SELECT p.producer_name FROM producers p
        JOIN movie_producers mp ON mp.producer_id = p.producer_id
        WHERE mp.movie_id = $1 ORDER BY p.producer_name`, id)
	if err != nil {
		return nil, err
	}

	detail.Cast, err = r.movieCast(ctx, id)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *MovieRepository) List(ctx context.Context, params movie.ListParams) ([]*movie.Movie, int64, error) {
	var (
		conditions []string
		args       []interface{}
	)

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Query != nil {
		p := addArg("%" + *params.Query + "%")
		conditions = append(conditions, fmt.Sprintf("(m.title ILIKE %s OR m.original_title ILIKE %s)", p, p))
	}
	if params.GenreID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.movie_id AND mg.genre_id = %s)",
			addArg(*params.GenreID)))
	}
	if params.StudioID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_studios ms WHERE ms.movie_id = m.movie_id AND ms.studio_id = %s)",
			addArg(*params.StudioID)))
	}
	if params.DirectorID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_directors md WHERE md.movie_id = m.movie_id AND md.director_id = %s)",
			addArg(*params.DirectorID)))
	}
	if params.ActorID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.movie_id AND ma.actor_id = %s)",
			addArg(*params.ActorID)))
	}
	if params.CollectionID != nil {
		conditions = append(conditions, fmt.Sprintf("m.collection_id = %s", addArg(*params.CollectionID)))
	}
	if params.Year != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM m.release_date) = %s", addArg(*params.Year)))
	}
	if params.MPARating != nil {
		conditions = append(conditions, fmt.Sprintf("m.mpa_rating = %s", addArg(*params.MPARating)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM movies m %s`, whereClause)

	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		r.logger.Error("Failed to count movies", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on count movies: %w", err)
	}

	sortColumn, ok := sortColumns[params.SortBy]
	if !ok {
		sortColumn = "m.created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "ASC") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
        SELECT
            m.movie_id, m.title, m.original_title, m.release_date, m.runtime_minutes,
            m.overview, m.budget, m.revenue, m.mpa_rating, m.collection_id,
            c.collection_name, m.poster_url, m.backdrop_url, m.created_at, m.updated_at
        FROM movies m
        LEFT JOIN collections c ON c.collection_id = m.collection_id
        %s
        ORDER BY %s %s
        LIMIT %s OFFSET %s
    `, whereClause, sortColumn, sortOrder, addArg(params.Limit), addArg(params.Offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query list of movies", zap.Error(err))
		return nil, 0, fmt.Errorf("database error on list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*movie.Movie, 0)
	for rows.Next() {
		var m movie.Movie
		if err := scanMovie(rows, &m); err != nil {
			r.logger.Error("Failed to scan movie row during list", zap.Error(err))
			return nil, 0, fmt.Errorf("database scan error during list: %w", err)
		}
		movies = append(movies, &m)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating movie rows", zap.Error(err))
		return nil, 0, fmt.Errorf("database iteration error on list movies: %w", err)
	}

	return movies, totalCount, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	query := `
        UPDATE movies SET
            title = $1,
            original_title = $2,
            release_date = $3,
            runtime_minutes = $4,
            overview = $5,
            budget = $6,
            revenue = $7,
            mpa_rating = $8,
            collection_id = $9,
            poster_url = $10,
            backdrop_url = $11,
            updated_at = NOW()
        WHERE movie_id = $12
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Title,
		m.OriginalTitle,
		m.ReleaseDate,
		m.RuntimeMinutes,
		m.Overview,
		m.Budget,
		m.Revenue,
		m.MPARating,
		m.CollectionID,
		m.PosterURL,
		m.BackdropURL,
		m.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update movie in database", zap.Int64("id", m.ID), zap.Error(err))
		return fmt.Errorf("database error on update movie: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ierr.ErrNotFound
	}

	r.logger.Info("Movie updated successfully", zap.Int64("id", m.ID))
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE movie_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete movie", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("database error on delete movie: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ierr.ErrNotFound
	}

	r.logger.Info("Movie deleted", zap.Int64("id", id))
	return nil
}

func (r *MovieRepository) movieNames(ctx context.Context, query string, movieID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.logger.Error("Failed to query movie relation names", zap.Int64("movie_id", movieID), zap.Error(err))
		return nil, fmt.Errorf("database error on movie relations: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("database scan error on movie relations: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *MovieRepository) movieCast(ctx context.Context, movieID int64) ([]movie.CastMember, error) {
	query := `
        SELECT a.actor_id, a.actor_name, ma.character_name, a.profile_url, ma.actor_order
        FROM actors a
        JOIN movie_actors ma ON ma.actor_id = a.actor_id
        WHERE ma.movie_id = $1
        ORDER BY ma.actor_order
    `
	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.logger.Error("Failed to query movie cast", zap.Int64("movie_id", movieID), zap.Error(err))
		return nil, fmt.Errorf("database error on movie cast: %w", err)
	}
	defer rows.Close()

	cast := make([]movie.CastMember, 0)
	for rows.Next() {
		var member movie.CastMember
		if err := rows.Scan(&member.ActorID, &member.Name, &member.CharacterName, &member.ProfileURL, &member.Order); err != nil {
			return nil, fmt.Errorf("database scan error on movie cast: %w", err)
		}
		cast = append(cast, member)
	}
	return cast, rows.Err()
}

func scanMovie(row pgx.Row, m *movie.Movie) error {
	return row.Scan(
		&m.ID,
		&m.Title,
		&m.OriginalTitle,
		&m.ReleaseDate,
		&m.RuntimeMinutes,
		&m.Overview,
		&m.Budget,
		&m.Revenue,
		&m.MPARating,
		&m.CollectionID,
		&m.CollectionName,
		&m.PosterURL,
		&m.BackdropURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}

package movie

import (
	"database/sql"
	"time"
)

type Movie struct {
	ID             int64          `db:"movie_id"`
	Title          string         `db:"title"`
	OriginalTitle  sql.NullString `db:"original_title"`
	ReleaseDate    sql.NullTime   `db:"release_date"`
	RuntimeMinutes sql.NullInt32  `db:"runtime_minutes"`
	Overview       sql.NullString `db:"overview"`
	Budget         sql.NullInt64  `db:"budget"`
	Revenue        sql.NullInt64  `db:"revenue"`
	MPARating      sql.NullString `db:"mpa_rating"`
	CollectionID   sql.NullInt64  `db:"collection_id"`
	CollectionName sql.NullString `db:"collection_name"`
	PosterURL      sql.NullString `db:"poster_url"`
	BackdropURL    sql.NullString `db:"backdrop_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Detail is a movie with its related entities resolved.
type Detail struct {
	Movie
	Genres    []string
	Studios   []string
	Directors []string
	Producers []string
	Cast      []CastMember
}

type CastMember struct {
	ActorID       int64          `db:"actor_id"`
	Name          string         `db:"actor_name"`
	CharacterName sql.NullString `db:"character_name"`
	ProfileURL    sql.NullString `db:"profile_url"`
	Order         int            `db:"actor_order"`
}

// ListParams narrows and pages the movie listing. All filters are ANDed;
// nil means "not filtered".
type ListParams struct {
	Query        *string
	GenreID      *int64
	StudioID     *int64
	DirectorID   *int64
	ActorID      *int64
	CollectionID *int64
	Year         *int
	MPARating    *string
	Limit        int
	Offset       int
	SortBy       string
	SortOrder    string
}

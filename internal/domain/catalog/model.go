// Package catalog holds the lookup entities a movie references: genres,
// studios, collections, directors, producers and actors. They are managed by
// the importer and the movie write path; the API exposes them read-only.
package catalog

import "database/sql"

type Genre struct {
	ID   int64  `db:"genre_id"`
	Name string `db:"genre_name"`
}

type Studio struct {
	ID      int64          `db:"studio_id"`
	Name    string         `db:"studio_name"`
	LogoURL sql.NullString `db:"logo_url"`
	Country sql.NullString `db:"country"`
}

type Collection struct {
	ID   int64  `db:"collection_id"`
	Name string `db:"collection_name"`
}

type Person struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	ProfileURL sql.NullString `db:"profile_url"`
}

// Stats is the catalog-wide summary exposed on /stats.
type Stats struct {
	Movies      int64
	Genres      int64
	Studios     int64
	Collections int64
	Directors   int64
	Actors      int64
}

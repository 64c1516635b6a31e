package dto

import (
	"database/sql"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/movie"
)

type CreateMovieRequest struct {
	Title          string     `json:"title" binding:"required,max=500"`
	OriginalTitle  *string    `json:"original_title"`
	ReleaseDate    *time.Time `json:"release_date"`
	RuntimeMinutes *int32     `json:"runtime_minutes" binding:"omitempty,gt=0"`
	Overview       *string    `json:"overview"`
	Budget         *int64     `json:"budget" binding:"omitempty,gte=0"`
	Revenue        *int64     `json:"revenue" binding:"omitempty,gte=0"`
	MPARating      *string    `json:"mpa_rating"`
	CollectionID   *int64     `json:"collection_id"`
	PosterURL      *string    `json:"poster_url" binding:"omitempty,url"`
	BackdropURL    *string    `json:"backdrop_url" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title          *string    `json:"title" binding:"omitempty,max=500"`
	OriginalTitle  *string    `json:"original_title"`
	ReleaseDate    *time.Time `json:"release_date"`
	RuntimeMinutes *int32     `json:"runtime_minutes" binding:"omitempty,gt=0"`
	Overview       *string    `json:"overview"`
	Budget         *int64     `json:"budget" binding:"omitempty,gte=0"`
	Revenue        *int64     `json:"revenue" binding:"omitempty,gte=0"`
	MPARating      *string    `json:"mpa_rating"`
	CollectionID   *int64     `json:"collection_id"`
	PosterURL      *string    `json:"poster_url" binding:"omitempty,url"`
	BackdropURL    *string    `json:"backdrop_url" binding:"omitempty,url"`
}

type ListMoviesRequest struct {
	Query        *string `form:"q"`
	GenreID      *int64  `form:"genre"`
	StudioID     *int64  `form:"studio"`
	DirectorID   *int64  `form:"director"`
	ActorID      *int64  `form:"actor"`
	CollectionID *int64  `form:"collection"`
	Year         *int    `form:"year" binding:"omitempty,gte=1888"`
	MPARating    *string `form:"mpa_rating"`
	Limit        int     `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
	Offset       int     `form:"offset,default=0" binding:"omitempty,gte=0"`
	SortBy       string  `form:"sort_by,default=created_at" binding:"omitempty,oneof=title release_date runtime revenue created_at"`
	SortOrder    string  `form:"sort_order,default=DESC" binding:"omitempty,oneof=ASC DESC asc desc"`
}

type MovieResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	OriginalTitle  *string    `json:"original_title,omitempty"`
	ReleaseDate    *time.Time `json:"release_date,omitempty"`
	RuntimeMinutes *int32     `json:"runtime_minutes,omitempty"`
	Overview       *string    `json:"overview,omitempty"`
	Budget         *int64     `json:"budget,omitempty"`
	Revenue        *int64     `json:"revenue,omitempty"`
	MPARating      *string    `json:"mpa_rating,omitempty"`
	CollectionID   *int64     `json:"collection_id,omitempty"`
	CollectionName *string    `json:"collection_name,omitempty"`
	PosterURL      *string    `json:"poster_url,omitempty"`
	BackdropURL    *string    `json:"backdrop_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	Genres    []string             `json:"genres"`
	Studios   []string             `json:"studios"`
	Directors []string             `json:"directors"`
	Producers []string             `json:"producers"`
	Cast      []CastMemberResponse `json:"cast"`
}

type CastMemberResponse struct {
	ActorID       int64   `json:"actor_id"`
	Name          string  `json:"name"`
	CharacterName *string `json:"character_name,omitempty"`
	ProfileURL    *string `json:"profile_url,omitempty"`
	Order         int     `json:"order"`
}

type PaginatedMoviesResponse struct {
	Movies     []*MovieResponse `json:"movies"`
	TotalCount int64            `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

func NewMovieResponse(m *movie.Movie) *MovieResponse {
	return &MovieResponse{
		ID:             m.ID,
		Title:          m.Title,
		OriginalTitle:  nullStringPtr(m.OriginalTitle),
		ReleaseDate:    nullTimePtr(m.ReleaseDate),
		RuntimeMinutes: nullInt32Ptr(m.RuntimeMinutes),
		Overview:       nullStringPtr(m.Overview),
		Budget:         nullInt64Ptr(m.Budget),
		Revenue:        nullInt64Ptr(m.Revenue),
		MPARating:      nullStringPtr(m.MPARating),
		CollectionID:   nullInt64Ptr(m.CollectionID),
		CollectionName: nullStringPtr(m.CollectionName),
		PosterURL:      nullStringPtr(m.PosterURL),
		BackdropURL:    nullStringPtr(m.BackdropURL),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func NewMovieDetailResponse(d *movie.Detail) *MovieDetailResponse {
	resp := &MovieDetailResponse{
		MovieResponse: *NewMovieResponse(&d.Movie),
		Genres:        d.Genres,
		Studios:       d.Studios,
		Directors:     d.Directors,
		Producers:     d.Producers,
		Cast:          make([]CastMemberResponse, len(d.Cast)),
	}
	for i, member := range d.Cast {
		resp.Cast[i] = CastMemberResponse{
			ActorID:       member.ActorID,
			Name:          member.Name,
			CharacterName: nullStringPtr(member.CharacterName),
			ProfileURL:    nullStringPtr(member.ProfileURL),
			Order:         member.Order,
		}
	}
	return resp
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullInt32Ptr(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

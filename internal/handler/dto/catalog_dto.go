package dto

import (
	"github.com/cinevault/movie-catalog-api/internal/domain/catalog"
)

type ListCatalogRequest struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,gte=1,lte=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type StudioResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
	Country *string `json:"country,omitempty"`
}

type CollectionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PersonResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ProfileURL *string `json:"profile_url,omitempty"`
}

type PaginatedCatalogResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

type StatsResponse struct {
	Movies      int64 `json:"movies"`
	Genres      int64 `json:"genres"`
	Studios     int64 `json:"studios"`
	Collections int64 `json:"collections"`
	Directors   int64 `json:"directors"`
	Actors      int64 `json:"actors"`
}

func NewStudioResponse(s *catalog.Studio) *StudioResponse {
	return &StudioResponse{
		ID:      s.ID,
		Name:    s.Name,
		LogoURL: nullStringPtr(s.LogoURL),
		Country: nullStringPtr(s.Country),
	}
}

func NewPersonResponse(p *catalog.Person) *PersonResponse {
	return &PersonResponse{
		ID:         p.ID,
		Name:       p.Name,
		ProfileURL: nullStringPtr(p.ProfileURL),
	}
}

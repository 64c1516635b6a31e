package handler

import (
	"context"
	"net/http"

	"github.com/cinevault/movie-catalog-api/internal/domain/catalog"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the lookup entities. Per-entity movie listings go
// through the movies endpoint filters so there is a single filtering path.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(service *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.Named("CatalogHandler"),
	}
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.service.ListGenres(c.Request.Context())
	if err != nil {
		h.logger.Error("Service failed to list genres", zap.Error(err))
		_ = c.Error(err)
		return
	}

	responses := make([]*dto.GenreResponse, len(genres))
	for i, g := range genres {
		responses[i] = &dto.GenreResponse{ID: g.ID, Name: g.Name}
	}
	c.JSON(http.StatusOK, responses)
}

func (h *CatalogHandler) ListStudios(c *gin.Context) {
	var req dto.ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	studios, total, err := h.service.ListStudios(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Service failed to list studios", zap.Error(err))
		_ = c.Error(err)
		return
	}

	items := make([]*dto.StudioResponse, len(studios))
	for i, s := range studios {
		items[i] = dto.NewStudioResponse(s)
	}
	c.JSON(http.StatusOK, dto.PaginatedCatalogResponse[*dto.StudioResponse]{
		Items:      items,
		TotalCount: total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
}

func (h *CatalogHandler) ListCollections(c *gin.Context) {
	var req dto.ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	collections, total, err := h.service.ListCollections(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Service failed to list collections", zap.Error(err))
		_ = c.Error(err)
		return
	}

	items := make([]*dto.CollectionResponse, len(collections))
	for i, col := range collections {
		items[i] = &dto.CollectionResponse{ID: col.ID, Name: col.Name}
	}
	c.JSON(http.StatusOK, dto.PaginatedCatalogResponse[*dto.CollectionResponse]{
		Items:      items,
		TotalCount: total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
}

func (h *CatalogHandler) ListDirectors(c *gin.Context) {
	h.listPeople(c, h.service.ListDirectors)
}

func (h *CatalogHandler) ListActors(c *gin.Context) {
	h.listPeople(c, h.service.ListActors)
}

func (h *CatalogHandler) listPeople(c *gin.Context, list func(ctx context.Context, limit, offset int) ([]*catalog.Person, int64, error)) {
	var req dto.ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	people, total, err := list(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Service failed to list people", zap.Error(err))
		_ = c.Error(err)
		return
	}

	items := make([]*dto.PersonResponse, len(people))
	for i, p := range people {
		items[i] = dto.NewPersonResponse(p)
	}
	c.JSON(http.StatusOK, dto.PaginatedCatalogResponse[*dto.PersonResponse]{
		Items:      items,
		TotalCount: total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
}

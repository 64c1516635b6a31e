package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service *service.MovieService
	logger  *zap.Logger
}

func NewMovieHandler(service *service.MovieService, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger.Named("MovieHandler"),
	}
}

func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind create movie request", zap.Error(err))
		_ = c.Error(bindError(err))
		return
	}

	created, err := h.service.CreateMovie(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Service failed to create movie", zap.Error(err))
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMovieDetailResponse(created))
}

func (h *MovieHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// Per-entity listings reuse the movie list query with the route id forced
// into the matching filter, so there is a single filtering path.

func (h *MovieHandler) ListByGenre(c *gin.Context) {
	h.list(c, func(req *dto.ListMoviesRequest, id int64) { req.GenreID = &id })
}

func (h *MovieHandler) ListByStudio(c *gin.Context) {
	h.list(c, func(req *dto.ListMoviesRequest, id int64) { req.StudioID = &id })
}

func (h *MovieHandler) ListByDirector(c *gin.Context) {
	h.list(c, func(req *dto.ListMoviesRequest, id int64) { req.DirectorID = &id })
}

func (h *MovieHandler) ListByActor(c *gin.Context) {
	h.list(c, func(req *dto.ListMoviesRequest, id int64) { req.ActorID = &id })
}

func (h *MovieHandler) ListByCollection(c *gin.Context) {
	h.list(c, func(req *dto.ListMoviesRequest, id int64) { req.CollectionID = &id })
}

func (h *MovieHandler) list(c *gin.Context, applyRouteFilter func(*dto.ListMoviesRequest, int64)) {
	var req dto.ListMoviesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("Failed to bind movie list query parameters", zap.Error(err))
		_ = c.Error(bindError(err))
		return
	}

	if applyRouteFilter != nil {
		idStr := c.Param("id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			_ = c.Error(fmt.Errorf("%w: invalid id format", ierr.ErrValidation))
			return
		}
		applyRouteFilter(&req, id)
	}

	movies, totalCount, err := h.service.ListMovies(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Service failed to list movies", zap.Error(err))
		_ = c.Error(err)
		return
	}

	movieResponses := make([]*dto.MovieResponse, len(movies))
	for i, m := range movies {
		movieResponses[i] = dto.NewMovieResponse(m)
	}

	c.JSON(http.StatusOK, dto.PaginatedMoviesResponse{
		Movies:     movieResponses,
		TotalCount: totalCount,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
}

func (h *MovieHandler) GetByID(c *gin.Context) {
	id, err := movieIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	detail, err := h.service.GetMovieByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMovieDetailResponse(detail))
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, err := movieIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind update movie request", zap.Int64("id", id), zap.Error(err))
		_ = c.Error(bindError(err))
		return
	}

	updated, err := h.service.UpdateMovie(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMovieDetailResponse(updated))
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, err := movieIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.DeleteMovie(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Movie deleted via handler", zap.Int64("id", id))
	c.Status(http.StatusNoContent)
}

func movieIDParam(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid movie id format", ierr.ErrValidation)
	}
	return id, nil
}

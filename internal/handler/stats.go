package handler

import (
	"net/http"

	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewStatsHandler(catalogService *service.CatalogService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		catalogService: catalogService,
		logger:         logger.Named("StatsHandler"),
	}
}

func (h *StatsHandler) GetSummary(c *gin.Context) {
	stats, err := h.catalogService.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Service failed to fetch catalog stats", zap.Error(err))
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Movies:      stats.Movies,
		Genres:      stats.Genres,
		Studios:     stats.Studios,
		Collections: stats.Collections,
		Directors:   stats.Directors,
		Actors:      stats.Actors,
	})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

type AggregationHandler struct {
	Handler
	aggregations *service.AggregationService
}

func NewAggregationHandler(s *server.Server, aggregations *service.AggregationService) *AggregationHandler {
	return &AggregationHandler{
		Handler:      NewHandler(s),
		aggregations: aggregations,
	}
}

func (h *AggregationHandler) FilmStats(c echo.Context, _ *schema.Empty) (schema.AggregationsResponse, error) {
	stats, err := h.aggregations.FilmStats(c.Request().Context())
	if err != nil {
		return schema.AggregationsResponse{}, err
	}
	return schema.DumpStats(stats), nil
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/handler"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/static"
)

// registerSystemRoutes registers the endpoints that are not part of the
// films API itself: health, liveness, metrics and docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/smoke", handler.Smoke)

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

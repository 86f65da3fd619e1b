package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/server"
)

// MetricsMiddleware records request counts and latencies labelled with
// the route template (e.g. /films/:uuid) rather than the raw path.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

func (m *MetricsMiddleware) Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m.server.Metrics == nil {
			return next
		}
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}

			done := m.server.Metrics.RequestStarted()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			done(c.Request().Method, route, responseStatus(c, err))

			return err
		}
	}
}

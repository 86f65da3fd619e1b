package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/middleware"
	"github.com/balbesina228/films-api/internal/server"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports the service status and the configured dependency
// checks. A failing database makes the service unhealthy (503); a failing
// redis only disables background jobs and is reported without changing the
// overall status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	isHealthy := true

	obs := h.server.Config.Observability

	if obs != nil && obs.HealthCheckEnabled("database") && h.server.DB != nil {
		check, err := h.checkDependency(c.Request().Context(), h.server.DB.Pool.Ping)
		checks["database"] = check
		if err != nil {
			isHealthy = false
			logger.Error().Err(err).Msg("database health check failed")
			h.recordFailure("database", err)
		}
	}

	if obs != nil && obs.HealthCheckEnabled("redis") && h.server.Redis != nil {
		check, err := h.checkDependency(c.Request().Context(), func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = check
		if err != nil {
			logger.Warn().Err(err).Msg("redis health check failed")
			h.recordFailure("redis", err)
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkDependency(ctx context.Context, ping func(context.Context) error) (map[string]any, error) {
	timeout := healthCheckTimeout
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	check := map[string]any{
		"status":        "healthy",
		"response_time": time.Since(start).String(),
	}
	if err != nil {
		check["status"] = "unhealthy"
		check["error"] = err.Error()
	}
	return check, err
}

func (h *HealthHandler) recordFailure(checkType string, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":    checkType,
		"operation":     "health_check",
		"error_type":    checkType + "_unhealthy",
		"error_message": err.Error(),
	})
}

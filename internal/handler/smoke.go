package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/schema"
)

// Smoke answers as long as the process is serving requests. Unlike
// /status it never touches a dependency.
func Smoke(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.MessageResponse{Message: "OK"})
}

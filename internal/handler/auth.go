package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Register(c echo.Context, req *schema.RegisterRequest) (schema.UserResponse, error) {
	u, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return schema.UserResponse{}, err
	}
	return schema.DumpUser(u), nil
}

// Login exchanges HTTP Basic credentials for a bearer token.
func (h *AuthHandler) Login(c echo.Context, _ *schema.Empty) (schema.TokenResponse, error) {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="films-api"`)
		return schema.TokenResponse{}, errs.NewUnauthorizedError("Basic credentials required", true)
	}

	token, err := h.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		return schema.TokenResponse{}, err
	}
	return schema.TokenResponse{Token: token}, nil
}

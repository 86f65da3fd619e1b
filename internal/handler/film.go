package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

type FilmHandler struct {
	Handler
	films *service.FilmService
}

func NewFilmHandler(s *server.Server, films *service.FilmService) *FilmHandler {
	return &FilmHandler{
		Handler: NewHandler(s),
		films:   films,
	}
}

func (h *FilmHandler) ListFilms(c echo.Context, req *schema.FilmListQuery) ([]schema.FilmResponse, error) {
	films, err := h.films.FetchAllFilms(c.Request().Context(), req.Query())
	if err != nil {
		return nil, err
	}
	return schema.DumpFilms(films), nil
}

func (h *FilmHandler) GetFilm(c echo.Context, req *schema.UUIDParam) (schema.FilmResponse, error) {
	f, err := h.films.FetchFilmByUUID(c.Request().Context(), req.UUID)
	if err != nil {
		return schema.FilmResponse{}, err
	}
	return schema.DumpFilm(f), nil
}

func (h *FilmHandler) CreateFilm(c echo.Context, req *schema.FilmRequest) (schema.FilmResponse, error) {
	f, err := h.films.CreateFilm(c.Request().Context(), req)
	if err != nil {
		return schema.FilmResponse{}, err
	}
	return schema.DumpFilm(f), nil
}

// FilmExists guards PUT and PATCH; see HandleExisting.
func (h *FilmHandler) FilmExists(ctx context.Context, rawUUID string) error {
	return h.films.FilmExists(ctx, rawUUID)
}

func (h *FilmHandler) UpdateFilm(c echo.Context, req *schema.FilmRequest) (schema.FilmResponse, error) {
	f, err := h.films.UpdateFilm(c.Request().Context(), req)
	if err != nil {
		return schema.FilmResponse{}, err
	}
	return schema.DumpFilm(f), nil
}

// PatchFilm applies at most one field; see schema.FilmPatch.
func (h *FilmHandler) PatchFilm(c echo.Context, req *schema.FilmPatch) (schema.MessageResponse, error) {
	if err := h.films.PatchFilm(c.Request().Context(), req); err != nil {
		return schema.MessageResponse{}, err
	}
	return schema.MessageResponse{Message: "Updated successfully"}, nil
}

func (h *FilmHandler) DeleteFilm(c echo.Context, req *schema.UUIDParam) error {
	return h.films.DeleteFilm(c.Request().Context(), req.UUID)
}

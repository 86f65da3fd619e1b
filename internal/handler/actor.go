package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

type ActorHandler struct {
	Handler
	actors *service.ActorService
}

func NewActorHandler(s *server.Server, actors *service.ActorService) *ActorHandler {
	return &ActorHandler{
		Handler: NewHandler(s),
		actors:  actors,
	}
}

func (h *ActorHandler) ListActors(c echo.Context, _ *schema.Empty) ([]schema.ActorResponse, error) {
	actors, err := h.actors.FetchAllActors(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return schema.DumpActors(actors), nil
}

func (h *ActorHandler) GetActor(c echo.Context, req *schema.UUIDParam) (schema.ActorResponse, error) {
	a, err := h.actors.FetchActorByUUID(c.Request().Context(), req.UUID)
	if err != nil {
		return schema.ActorResponse{}, err
	}
	return schema.DumpActor(a), nil
}

func (h *ActorHandler) CreateActor(c echo.Context, req *schema.ActorRequest) (schema.ActorResponse, error) {
	a, err := h.actors.CreateActor(c.Request().Context(), req)
	if err != nil {
		return schema.ActorResponse{}, err
	}
	return schema.DumpActor(a), nil
}

// ActorExists guards PUT; see HandleExisting.
func (h *ActorHandler) ActorExists(ctx context.Context, rawUUID string) error {
	return h.actors.ActorExists(ctx, rawUUID)
}

func (h *ActorHandler) UpdateActor(c echo.Context, req *schema.ActorRequest) (schema.ActorResponse, error) {
	a, err := h.actors.UpdateActor(c.Request().Context(), req)
	if err != nil {
		return schema.ActorResponse{}, err
	}
	return schema.DumpActor(a), nil
}

func (h *ActorHandler) DeleteActor(c echo.Context, req *schema.UUIDParam) error {
	return h.actors.DeleteActor(c.Request().Context(), req.UUID)
}

// LinkFilm casts the actor in the film. Linking twice is a no-op.
func (h *ActorHandler) LinkFilm(c echo.Context, req *schema.ActorLinkRequest) error {
	return h.actors.LinkFilm(c.Request().Context(), req)
}

func (h *ActorHandler) UnlinkFilm(c echo.Context, req *schema.ActorLinkRequest) error {
	return h.actors.UnlinkFilm(c.Request().Context(), req)
}

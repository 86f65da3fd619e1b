package service

import (
	"context"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
)

type ActorService struct {
	server *server.Server
	actors repository.ActorStore
}

func NewActorService(s *server.Server, actors repository.ActorStore) *ActorService {
	return &ActorService{server: s, actors: actors}
}

func (s *ActorService) FetchAllActors(ctx context.Context) ([]model.Actor, error) {
	return s.actors.ListActors(ctx)
}

func (s *ActorService) FetchActorByUUID(ctx context.Context, rawUUID string) (*model.Actor, error) {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return nil, err
	}

	a, err := s.actors.GetActorByUUID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// ActorExists returns the body-less 404 when rawUUID does not name an actor.
func (s *ActorService) ActorExists(ctx context.Context, rawUUID string) error {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return err
	}

	_, err = s.actors.GetActorByUUID(ctx, id)
	return notFound(err)
}

func (s *ActorService) CreateActor(ctx context.Context, req *schema.ActorRequest) (*model.Actor, error) {
	a := req.Load()
	if err := s.actors.CreateActor(ctx, a); err != nil {
		return nil, err
	}
	a.Films = []model.Film{}
	return a, nil
}

func (s *ActorService) UpdateActor(ctx context.Context, req *schema.ActorRequest) (*model.Actor, error) {
	a, err := s.FetchActorByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}

	req.Merge(a)
	if err := s.actors.UpdateActor(ctx, a); err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *ActorService) DeleteActor(ctx context.Context, rawUUID string) error {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return err
	}
	return notFound(s.actors.DeleteActor(ctx, id))
}

// LinkFilm records that the actor appears in the film. Linking twice is a no-op.
func (s *ActorService) LinkFilm(ctx context.Context, req *schema.ActorLinkRequest) error {
	actorID, err := parseUUID(req.UUID)
	if err != nil {
		return err
	}
	filmID, err := parseUUID(req.FilmUUID)
	if err != nil {
		return err
	}
	return notFound(s.actors.LinkFilm(ctx, actorID, filmID))
}

func (s *ActorService) UnlinkFilm(ctx context.Context, req *schema.ActorLinkRequest) error {
	actorID, err := parseUUID(req.UUID)
	if err != nil {
		return err
	}
	filmID, err := parseUUID(req.FilmUUID)
	if err != nil {
		return err
	}
	return notFound(s.actors.UnlinkFilm(ctx, actorID, filmID))
}

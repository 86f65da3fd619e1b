package service

import (
	"context"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
)

type FilmService struct {
	server *server.Server
	films  repository.FilmStore
}

func NewFilmService(s *server.Server, films repository.FilmStore) *FilmService {
	return &FilmService{server: s, films: films}
}

// FetchAllFilms returns every film; q decides whether actors are loaded.
func (s *FilmService) FetchAllFilms(ctx context.Context, q model.FilmQuery) ([]model.Film, error) {
	return s.films.ListFilms(ctx, q)
}

// FetchFilmByUUID returns the film with its actors, or a body-less 404.
func (s *FilmService) FetchFilmByUUID(ctx context.Context, rawUUID string) (*model.Film, error) {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return nil, err
	}

	f, err := s.films.GetFilmByUUID(ctx, id, model.FilmQuery{WithActors: true})
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

// FilmExists returns the body-less 404 when rawUUID does not name a film.
func (s *FilmService) FilmExists(ctx context.Context, rawUUID string) error {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return err
	}

	_, err = s.films.GetFilmByUUID(ctx, id, model.FilmQuery{})
	return notFound(err)
}

func (s *FilmService) CreateFilm(ctx context.Context, req *schema.FilmRequest) (*model.Film, error) {
	f := req.Load()
	if err := s.films.CreateFilm(ctx, f); err != nil {
		return nil, err
	}
	f.Actors = []model.Actor{}

	s.server.Logger.Info().
		Str("film_uuid", f.UUID.String()).
		Str("title", f.Title).
		Msg("film created")

	return f, nil
}

// UpdateFilm replaces the film's fields with those present in req.
func (s *FilmService) UpdateFilm(ctx context.Context, req *schema.FilmRequest) (*model.Film, error) {
	f, err := s.FetchFilmByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}

	req.Merge(f)
	if err := s.films.UpdateFilm(ctx, f); err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

// PatchFilm applies a single field from p; see schema.FilmPatch.
func (s *FilmService) PatchFilm(ctx context.Context, p *schema.FilmPatch) error {
	f, err := s.FetchFilmByUUID(ctx, p.UUID)
	if err != nil {
		return err
	}

	if !p.Apply(f) {
		s.server.Logger.Debug().Str("film_uuid", p.UUID).Msg("patch carried no applicable field")
	}

	return notFound(s.films.UpdateFilm(ctx, f))
}

func (s *FilmService) DeleteFilm(ctx context.Context, rawUUID string) error {
	id, err := parseUUID(rawUUID)
	if err != nil {
		return err
	}

	if err := s.films.DeleteFilm(ctx, id); err != nil {
		return notFound(err)
	}

	s.server.Logger.Info().Str("film_uuid", rawUUID).Msg("film deleted")
	return nil
}

package service

import (
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/server"
)

type Services struct {
	Auth         *AuthService
	Films        *FilmService
	Actors       *ActorService
	Aggregations *AggregationService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService, err := NewAuthService(s, repos.Users)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:         authService,
		Films:        NewFilmService(s, repos.Films),
		Actors:       NewActorService(s, repos.Actors),
		Aggregations: NewAggregationService(s, repos.Films),
	}, nil
}

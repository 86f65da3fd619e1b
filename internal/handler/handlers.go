package handler

import (
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Films        *FilmHandler
	Actors       *ActorHandler
	Aggregations *AggregationHandler
	Auth         *AuthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Films:        NewFilmHandler(s, services.Films),
		Actors:       NewActorHandler(s, services.Actors),
		Aggregations: NewAggregationHandler(s, services.Aggregations),
		Auth:         NewAuthHandler(s, services.Auth),
	}
}

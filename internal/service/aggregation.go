package service

import (
	"context"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/server"
)

type AggregationService struct {
	server *server.Server
	films  repository.FilmStore
}

func NewAggregationService(s *server.Server, films repository.FilmStore) *AggregationService {
	return &AggregationService{server: s, films: films}
}

// FilmStats returns count, rating extremes and average, and total length
// across all films.
func (s *AggregationService) FilmStats(ctx context.Context) (*model.FilmStats, error) {
	return s.films.FilmStats(ctx)
}

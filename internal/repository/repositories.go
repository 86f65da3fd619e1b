package repository

import (
	"github.com/balbesina228/films-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Films  FilmStore
	Actors ActorStore
	Users  UserStore
}

// NewRepositories builds the Postgres-backed repositories on s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Films:  NewFilmRepository(s.DB.Pool),
		Actors: NewActorRepository(s.DB.Pool),
		Users:  NewUserRepository(s.DB.Pool),
	}
}

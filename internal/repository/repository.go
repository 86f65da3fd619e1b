// Package repository handles all interactions with the database.
//
// It contains the SQL queries behind the films, actors and users
// resources. Services depend on the store interfaces declared here, so
// the pgx implementations can be swapped for the in-memory ones in
// repository/memory.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/balbesina228/films-api/internal/model"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// FilmStore persists films and their actor links.
type FilmStore interface {
	ListFilms(ctx context.Context, q model.FilmQuery) ([]model.Film, error)
	GetFilmByUUID(ctx context.Context, id uuid.UUID, q model.FilmQuery) (*model.Film, error)
	CreateFilm(ctx context.Context, f *model.Film) error
	UpdateFilm(ctx context.Context, f *model.Film) error
	DeleteFilm(ctx context.Context, id uuid.UUID) error
	FilmStats(ctx context.Context) (*model.FilmStats, error)
}

// ActorStore persists actors and the films_actors association.
type ActorStore interface {
	ListActors(ctx context.Context) ([]model.Actor, error)
	GetActorByUUID(ctx context.Context, id uuid.UUID) (*model.Actor, error)
	CreateActor(ctx context.Context, a *model.Actor) error
	UpdateActor(ctx context.Context, a *model.Actor) error
	DeleteActor(ctx context.Context, id uuid.UUID) error

	// LinkFilm is idempotent; UnlinkFilm succeeds when no link exists.
	// Both return ErrNotFound when either side is missing.
	LinkFilm(ctx context.Context, actorID, filmID uuid.UUID) error
	UnlinkFilm(ctx context.Context, actorID, filmID uuid.UUID) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

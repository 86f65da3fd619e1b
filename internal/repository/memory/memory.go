// Package memory provides in-memory implementations of the repository
// stores. Handler and service tests run against it instead of Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository"
)

type link struct {
	filmID, actorID int64
}

// Store holds films, actors, their links and users behind one mutex.
// Entities are deep-copied on the way in and out, pointer fields
// included, so callers never share memory with stored state.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	films  map[uuid.UUID]*model.Film
	actors map[uuid.UUID]*model.Actor
	links  map[link]struct{}
	users  map[string]*model.User
	now    func() time.Time
}

var (
	_ repository.FilmStore  = (*Store)(nil)
	_ repository.ActorStore = (*Store)(nil)
	_ repository.UserStore  = (*Store)(nil)
)

func New() *Store {
	return &Store{
		films:  make(map[uuid.UUID]*model.Film),
		actors: make(map[uuid.UUID]*model.Actor),
		links:  make(map[link]struct{}),
		users:  make(map[string]*model.User),
		now:    time.Now,
	}
}

// Repositories exposes the store through the repository container.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{Films: s, Actors: s, Users: s}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) ListFilms(_ context.Context, q model.FilmQuery) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, s.filmCopy(f, q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetFilmByUUID(_ context.Context, id uuid.UUID, q model.FilmQuery) (*model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := s.filmCopy(f, q)
	return &c, nil
}

func (s *Store) CreateFilm(_ context.Context, f *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	f.ID, f.UUID, f.CreatedAt, f.UpdatedAt = s.id(), uuid.New(), now, now

	stored := cloneFilm(f)
	s.films[f.UUID] = &stored
	return nil
}

func (s *Store) UpdateFilm(_ context.Context, f *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.films[f.UUID]
	if !ok {
		return repository.ErrNotFound
	}

	f.ID, f.CreatedAt, f.UpdatedAt = existing.ID, existing.CreatedAt, s.now()

	stored := cloneFilm(f)
	s.films[f.UUID] = &stored
	return nil
}

func (s *Store) DeleteFilm(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.films[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.films, id)
	for l := range s.links {
		if l.filmID == f.ID {
			delete(s.links, l)
		}
	}
	return nil
}

func (s *Store) FilmStats(_ context.Context) (*model.FilmStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.FilmStats{Count: int64(len(s.films))}
	var sum float64
	var rated int
	for _, f := range s.films {
		if f.Length != nil {
			stats.TotalLength += int64(*f.Length)
		}
		if f.Rating == nil {
			continue
		}
		r := *f.Rating
		if stats.MaxRating == nil || r > *stats.MaxRating {
			stats.MaxRating = &r
		}
		if stats.MinRating == nil || r < *stats.MinRating {
			stats.MinRating = &r
		}
		sum += r
		rated++
	}
	if rated > 0 {
		avg := sum / float64(rated)
		stats.AvgRating = &avg
	}
	return stats, nil
}

func (s *Store) ListActors(_ context.Context) ([]model.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		out = append(out, s.actorCopy(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetActorByUUID(_ context.Context, id uuid.UUID) (*model.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.actors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := s.actorCopy(a)
	return &c, nil
}

func (s *Store) CreateActor(_ context.Context, a *model.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a.ID, a.UUID, a.CreatedAt, a.UpdatedAt = s.id(), uuid.New(), now, now

	stored := cloneActor(a)
	s.actors[a.UUID] = &stored
	return nil
}

func (s *Store) UpdateActor(_ context.Context, a *model.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.actors[a.UUID]
	if !ok {
		return repository.ErrNotFound
	}

	a.ID, a.CreatedAt, a.UpdatedAt = existing.ID, existing.CreatedAt, s.now()

	stored := cloneActor(a)
	s.actors[a.UUID] = &stored
	return nil
}

func (s *Store) DeleteActor(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.actors[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.actors, id)
	for l := range s.links {
		if l.actorID == a.ID {
			delete(s.links, l)
		}
	}
	return nil
}

func (s *Store) LinkFilm(_ context.Context, actorID, filmID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.link(actorID, filmID)
	if err != nil {
		return err
	}
	s.links[l] = struct{}{}
	return nil
}

func (s *Store) UnlinkFilm(_ context.Context, actorID, filmID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.link(actorID, filmID)
	if err != nil {
		return err
	}
	delete(s.links, l)
	return nil
}

func (s *Store) link(actorID, filmID uuid.UUID) (link, error) {
	a, ok := s.actors[actorID]
	if !ok {
		return link{}, repository.ErrNotFound
	}
	f, ok := s.films[filmID]
	if !ok {
		return link{}, repository.ErrNotFound
	}
	return link{filmID: f.ID, actorID: a.ID}, nil
}

// CreateUser enforces the same unique constraints as the users table and
// reports violations the way Postgres does.
func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		switch {
		case existing.Username == u.Username:
			return uniqueViolation("users_username_key")
		case existing.Email == u.Email:
			return uniqueViolation("users_email_key")
		}
	}

	now := s.now()
	u.ID, u.UUID, u.CreatedAt, u.UpdatedAt = s.id(), uuid.New(), now, now

	stored := *u
	s.users[u.Username] = &stored
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		TableName:      "users",
		ConstraintName: constraint,
	}
}

// filmCopy must be called with s.mu held.
func (s *Store) filmCopy(f *model.Film, q model.FilmQuery) model.Film {
	c := cloneFilm(f)
	if !q.WithActors {
		return c
	}

	c.Actors = make([]model.Actor, 0)
	for _, a := range s.actors {
		if _, ok := s.links[link{filmID: f.ID, actorID: a.ID}]; ok {
			c.Actors = append(c.Actors, cloneActor(a))
		}
	}
	sort.Slice(c.Actors, func(i, j int) bool { return c.Actors[i].Name < c.Actors[j].Name })
	return c
}

// actorCopy must be called with s.mu held.
func (s *Store) actorCopy(a *model.Actor) model.Actor {
	c := cloneActor(a)
	c.Films = make([]model.Film, 0)
	for _, f := range s.films {
		if _, ok := s.links[link{filmID: f.ID, actorID: a.ID}]; ok {
			c.Films = append(c.Films, cloneFilm(f))
		}
	}
	sort.Slice(c.Films, func(i, j int) bool { return c.Films[i].Title < c.Films[j].Title })
	return c
}

// cloneFilm copies f without its relations.
func cloneFilm(f *model.Film) model.Film {
	c := *f
	c.ReleaseDate = clonePtr(f.ReleaseDate)
	c.DistributedBy = clonePtr(f.DistributedBy)
	c.Description = clonePtr(f.Description)
	c.Length = clonePtr(f.Length)
	c.Rating = clonePtr(f.Rating)
	c.Actors = nil
	return c
}

// cloneActor copies a without its relations.
func cloneActor(a *model.Actor) model.Actor {
	c := *a
	c.Birthday = clonePtr(a.Birthday)
	c.Films = nil
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

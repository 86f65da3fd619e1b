package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balbesina228/films-api/internal/model"
)

type FilmRepository struct {
	pool *pgxpool.Pool
}

func NewFilmRepository(pool *pgxpool.Pool) *FilmRepository {
	return &FilmRepository{pool: pool}
}

const filmColumns = `f.id, f.uuid, f.title, f.release_date, f.distributed_by,
	f.description, f.length, f.rating, f.created_at, f.updated_at`

// filmsWithActorsQuery loads films and their actors in a single round trip.
// Films without actors yield one row with NULL actor columns.
const filmsWithActorsQuery = `
SELECT ` + filmColumns + `,
	a.id, a.uuid, a.name, a.birthday, a.is_active
FROM films f
LEFT JOIN films_actors fa ON fa.film_id = f.id
LEFT JOIN actors a ON a.id = fa.actor_id`

func (r *FilmRepository) ListFilms(ctx context.Context, q model.FilmQuery) ([]model.Film, error) {
	if q.WithActors {
		rows, err := r.pool.Query(ctx, filmsWithActorsQuery+` ORDER BY f.id, a.name`)
		if err != nil {
			return nil, fmt.Errorf("query films with actors: %w", err)
		}
		return collectFilmsWithActors(rows)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+filmColumns+` FROM films f ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}

	films, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Film, error) {
		var f model.Film
		err := row.Scan(filmScanTargets(&f)...)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan films: %w", err)
	}
	return films, nil
}

func (r *FilmRepository) GetFilmByUUID(ctx context.Context, id uuid.UUID, q model.FilmQuery) (*model.Film, error) {
	if q.WithActors {
		rows, err := r.pool.Query(ctx, filmsWithActorsQuery+` WHERE f.uuid = $1 ORDER BY a.name`, id)
		if err != nil {
			return nil, fmt.Errorf("query film %s: %w", id, err)
		}
		films, err := collectFilmsWithActors(rows)
		if err != nil {
			return nil, err
		}
		if len(films) == 0 {
			return nil, ErrNotFound
		}
		return &films[0], nil
	}

	var f model.Film
	err := r.pool.QueryRow(ctx, `SELECT `+filmColumns+` FROM films f WHERE f.uuid = $1`, id).
		Scan(filmScanTargets(&f)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get film %s: %w", id, err)
	}
	return &f, nil
}

// CreateFilm inserts f, assigning its uuid, id and timestamps.
func (r *FilmRepository) CreateFilm(ctx context.Context, f *model.Film) error {
	f.UUID = uuid.New()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO films (uuid, title, release_date, distributed_by, description, length, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			f.UUID, f.Title, f.ReleaseDate, f.DistributedBy, f.Description, f.Length, f.Rating,
		).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		return nil
	})
}

// UpdateFilm writes every column of f, matching on its uuid.
func (r *FilmRepository) UpdateFilm(ctx context.Context, f *model.Film) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE films
			SET title = $2, release_date = $3, distributed_by = $4, description = $5,
				length = $6, rating = $7, updated_at = now()
			WHERE uuid = $1
			RETURNING id, updated_at`,
			f.UUID, f.Title, f.ReleaseDate, f.DistributedBy, f.Description, f.Length, f.Rating,
		).Scan(&f.ID, &f.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update film %s: %w", f.UUID, err)
		}
		return nil
	})
}

// DeleteFilm removes the film; its actor links go with it via ON DELETE CASCADE.
func (r *FilmRepository) DeleteFilm(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM films WHERE uuid = $1`, id)
		if err != nil {
			return fmt.Errorf("delete film %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *FilmRepository) FilmStats(ctx context.Context) (*model.FilmStats, error) {
	var s model.FilmStats
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), max(rating), min(rating), avg(rating), coalesce(sum(length), 0)
		FROM films`,
	).Scan(&s.Count, &s.MaxRating, &s.MinRating, &s.AvgRating, &s.TotalLength)
	if err != nil {
		return nil, fmt.Errorf("aggregate films: %w", err)
	}
	return &s, nil
}

func filmScanTargets(f *model.Film) []any {
	return []any{
		&f.ID, &f.UUID, &f.Title, &f.ReleaseDate, &f.DistributedBy,
		&f.Description, &f.Length, &f.Rating, &f.CreatedAt, &f.UpdatedAt,
	}
}

// nullableActor receives the LEFT JOINed actor columns.
type nullableActor struct {
	ID       pgtype.Int8
	UUID     pgtype.UUID
	Name     pgtype.Text
	Birthday *time.Time
	IsActive pgtype.Bool
}

func (n *nullableActor) targets() []any {
	return []any{&n.ID, &n.UUID, &n.Name, &n.Birthday, &n.IsActive}
}

func (n *nullableActor) actor() (model.Actor, bool) {
	if !n.ID.Valid {
		return model.Actor{}, false
	}
	return model.Actor{
		Base:     model.Base{ID: n.ID.Int64, UUID: uuid.UUID(n.UUID.Bytes)},
		Name:     n.Name.String,
		Birthday: n.Birthday,
		IsActive: n.IsActive.Bool,
	}, true
}

// collectFilmsWithActors folds joined rows into films, preserving the
// order in which films first appear. Rows must be grouped by film.
func collectFilmsWithActors(rows pgx.Rows) ([]model.Film, error) {
	defer rows.Close()

	films := make([]model.Film, 0)
	for rows.Next() {
		var (
			f model.Film
			a nullableActor
		)
		if err := rows.Scan(append(filmScanTargets(&f), a.targets()...)...); err != nil {
			return nil, fmt.Errorf("scan film row: %w", err)
		}

		if n := len(films); n == 0 || films[n-1].ID != f.ID {
			f.Actors = make([]model.Actor, 0)
			films = append(films, f)
		}
		if actor, ok := a.actor(); ok {
			last := &films[len(films)-1]
			last.Actors = append(last.Actors, actor)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film rows: %w", err)
	}
	return films, nil
}

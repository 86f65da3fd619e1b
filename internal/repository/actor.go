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

type ActorRepository struct {
	pool *pgxpool.Pool
}

func NewActorRepository(pool *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{pool: pool}
}

const actorsWithFilmsQuery = `
SELECT a.id, a.uuid, a.name, a.birthday, a.is_active, a.created_at, a.updated_at,
	f.id, f.uuid, f.title, f.release_date
FROM actors a
LEFT JOIN films_actors fa ON fa.actor_id = a.id
LEFT JOIN films f ON f.id = fa.film_id`

func (r *ActorRepository) ListActors(ctx context.Context) ([]model.Actor, error) {
	rows, err := r.pool.Query(ctx, actorsWithFilmsQuery+` ORDER BY a.id, f.title`)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	return collectActorsWithFilms(rows)
}

func (r *ActorRepository) GetActorByUUID(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	rows, err := r.pool.Query(ctx, actorsWithFilmsQuery+` WHERE a.uuid = $1 ORDER BY f.title`, id)
	if err != nil {
		return nil, fmt.Errorf("query actor %s: %w", id, err)
	}

	actors, err := collectActorsWithFilms(rows)
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, ErrNotFound
	}
	return &actors[0], nil
}

func (r *ActorRepository) CreateActor(ctx context.Context, a *model.Actor) error {
	a.UUID = uuid.New()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO actors (uuid, name, birthday, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			a.UUID, a.Name, a.Birthday, a.IsActive,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert actor: %w", err)
		}
		return nil
	})
}

func (r *ActorRepository) UpdateActor(ctx context.Context, a *model.Actor) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE actors
			SET name = $2, birthday = $3, is_active = $4, updated_at = now()
			WHERE uuid = $1
			RETURNING id, updated_at`,
			a.UUID, a.Name, a.Birthday, a.IsActive,
		).Scan(&a.ID, &a.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update actor %s: %w", a.UUID, err)
		}
		return nil
	})
}

func (r *ActorRepository) DeleteActor(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM actors WHERE uuid = $1`, id)
		if err != nil {
			return fmt.Errorf("delete actor %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *ActorRepository) LinkFilm(ctx context.Context, actorID, filmID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		aid, fid, err := lookupLinkIDs(ctx, tx, actorID, filmID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO films_actors (film_id, actor_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, fid, aid)
		if err != nil {
			return fmt.Errorf("link actor %s to film %s: %w", actorID, filmID, err)
		}
		return nil
	})
}

func (r *ActorRepository) UnlinkFilm(ctx context.Context, actorID, filmID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		aid, fid, err := lookupLinkIDs(ctx, tx, actorID, filmID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM films_actors WHERE film_id = $1 AND actor_id = $2`, fid, aid)
		if err != nil {
			return fmt.Errorf("unlink actor %s from film %s: %w", actorID, filmID, err)
		}
		return nil
	})
}

// lookupLinkIDs resolves both uuids to surrogate keys, locking the rows
// so neither side disappears before the link statement runs.
func lookupLinkIDs(ctx context.Context, tx pgx.Tx, actorID, filmID uuid.UUID) (int64, int64, error) {
	var aid, fid int64

	err := tx.QueryRow(ctx, `SELECT id FROM actors WHERE uuid = $1 FOR SHARE`, actorID).Scan(&aid)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("lookup actor %s: %w", actorID, err)
	}

	err = tx.QueryRow(ctx, `SELECT id FROM films WHERE uuid = $1 FOR SHARE`, filmID).Scan(&fid)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("lookup film %s: %w", filmID, err)
	}

	return aid, fid, nil
}

func collectActorsWithFilms(rows pgx.Rows) ([]model.Actor, error) {
	defer rows.Close()

	actors := make([]model.Actor, 0)
	for rows.Next() {
		var (
			a           model.Actor
			filmID      pgtype.Int8
			filmUUID    pgtype.UUID
			filmTitle   pgtype.Text
			filmRelease *time.Time
		)
		err := rows.Scan(
			&a.ID, &a.UUID, &a.Name, &a.Birthday, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&filmID, &filmUUID, &filmTitle, &filmRelease,
		)
		if err != nil {
			return nil, fmt.Errorf("scan actor row: %w", err)
		}

		if n := len(actors); n == 0 || actors[n-1].ID != a.ID {
			a.Films = make([]model.Film, 0)
			actors = append(actors, a)
		}
		if filmID.Valid {
			last := &actors[len(actors)-1]
			last.Films = append(last.Films, model.Film{
				Base:        model.Base{ID: filmID.Int64, UUID: uuid.UUID(filmUUID.Bytes)},
				Title:       filmTitle.String,
				ReleaseDate: filmRelease,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actor rows: %w", err)
	}
	return actors, nil
}

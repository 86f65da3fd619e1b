package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balbesina228/films-api/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts u. A duplicate username or email surfaces as a
// *pgconn.PgError with code 23505, which sqlerr.HandleError turns into a 400.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	u.UUID = uuid.New()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (uuid, username, email, password_hash, is_admin)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			u.UUID, u.Username, u.Email, u.PasswordHash, u.IsAdmin,
		).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		u.UpdatedAt = u.CreatedAt
		return nil
	})
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, uuid, username, email, password_hash, is_admin, created_at
		FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.UUID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	u.UpdatedAt = u.CreatedAt
	return &u, nil
}

// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rideshare/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(u.ID), u.Name, strings.ToLower(u.Email), string(u.Role), u.PasswordHash, u.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.scanOne(s.db.QueryRow(ctx, `
		SELECT id, name, email, role, password_hash, created_at
		FROM users WHERE id = $1`, string(id),
	))
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanOne(s.db.QueryRow(ctx, `
		SELECT id, name, email, role, password_hash, created_at
		FROM users WHERE email = $1`, strings.ToLower(email),
	))
}

func (s *PostgresStore) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

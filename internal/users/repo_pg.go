package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo stores users in Postgres.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

func (r *PGRepo) Create(ctx context.Context, u User) error {
	const query = `
		INSERT INTO users (id, username, password_hash, department, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Username, u.PasswordHash, u.Department, u.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrUserExists
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
		SELECT id, username, password_hash, department, created_at
		FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
		SELECT id, username, password_hash, department, created_at
		FROM users WHERE username = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var (
		u    User
		dept sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &dept, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Department = dept.String
	return u, nil
}

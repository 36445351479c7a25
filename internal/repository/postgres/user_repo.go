package postgres

import (
	"context"
	"errors"

	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new account row. The admin flag is computed inside the
// insert so "first account is admin" holds without a separate count query.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
INSERT INTO users (email, pwd_hash, salt_auth, is_admin)
VALUES ($1, $2, $3, NOT EXISTS (SELECT 1 FROM users))
RETURNING id, is_admin, created_at`
	row := r.db.Pool.QueryRow(ctx, q, u.Email, u.PwdHash, u.SaltAuth)
	out := *u
	if err := row.Scan(&out.ID, &out.IsAdmin, &out.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

// GetByID selects an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, is_admin, created_at
FROM users WHERE id=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects an account by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, is_admin, created_at
FROM users WHERE email=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PwdHash, &u.SaltAuth, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

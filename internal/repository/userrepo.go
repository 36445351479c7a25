// Package repository defines persistence contracts for users and sweets.
package repository

import (
	"context"

	"github.com/devanshyadav01/sweetshop/internal/model"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a new account. The very first account in the store is
	// flagged admin at insert time. Returns ErrAlreadyExists when the email
	// is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// GetByID selects an account by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail selects an account by its unique email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

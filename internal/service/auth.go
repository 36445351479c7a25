// Package service contains application services for authentication, catalog, and inventory.
package service

import (
	"context"
	"errors"
	"time"

	pkgcrypto "github.com/devanshyadav01/sweetshop/internal/crypto"
	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/limiter"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
)

// ClaimIssuer signs a session claim for an account.
type ClaimIssuer interface {
	Issue(userID int64, email string, isAdmin bool) (string, time.Time, error)
}

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new account with secure password hashing and
	// returns a signed session token for it. The first account ever
	// created is an administrator.
	Register(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// LoginWithIP applies rate limiting and authenticates the account.
	LoginWithIP(ctx context.Context, email, password, ip string) (token string, user *model.User, err error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens ClaimIssuer
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens ClaimIssuer, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register creates a new account record with a per-user salt. Hashing always
// happens here, never in a persistence hook.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	if err := model.ValidateCredentials(email, password); err != nil {
		return "", nil, err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return "", nil, err
	}
	u := &model.User{
		Email:    email,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth: salt,
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return "", nil, err
	}
	tok, _, err := s.tokens.Issue(stored.ID, stored.Email, stored.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return tok, stored, nil
}

// LoginWithIP authenticates with rate limiting keyed by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (string, *model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", nil, err
	}
	if !allowed {
		return "", nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		// Record failure; if the threshold is reached, report rate-limited.
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", nil, errs.ErrRateLimited
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return "", nil, err
		}
		// hide existence of the account on wrong password
		return "", nil, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, _, err := s.tokens.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

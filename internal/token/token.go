// Package token issues and verifies signed session claims.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed assertion bound to a session token: account identity
// plus the admin flag. Validity is determined purely by signature and expiry;
// nothing is persisted server-side.
type Claims struct {
	UserID  int64  `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewIssuer constructs an Issuer with the given signing key and token lifetime.
func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl}
}

// Issue creates a signed HS256 token for the given account.
func (i *Issuer) Issue(userID int64, email string, isAdmin bool) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.ttl)
	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.signKey)
	return signed, exp, err
}

// Verify parses and validates a token, returning its claims.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.signKey, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

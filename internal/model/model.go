// Package model defines domain entities used by services and repositories.
package model

import "time"

// Categories is the fixed set of sweet categories. Create/update and search
// match against it exactly.
var Categories = []string{
	"Chocolate",
	"Candy",
	"Gummy",
	"Hard Candy",
	"Lollipop",
	"Toffee",
	"Caramel",
	"Other",
}

// Sweet is a single catalog item. Quantity never goes below zero; the ledger
// enforces that on every mutation.
type Sweet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User represents an account. The password is stored only as a salted hash.
// The first account ever created is flagged admin at insert time.
type User struct {
	ID        int64
	Email     string // unique
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user auth salt
	IsAdmin   bool
	CreatedAt time.Time
}

// NewSweet carries the fields required to create a catalog item.
type NewSweet struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// SweetUpdate is a partial update; nil fields are left untouched.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// Empty reports whether no field is set.
func (u SweetUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil && u.Quantity == nil
}

// SweetFilter narrows a catalog search. All set filters are ANDed; zero-value
// fields are ignored. Price bounds are inclusive.
type SweetFilter struct {
	Name     string // case-insensitive substring
	Category string // exact match
	MinPrice *float64
	MaxPrice *float64
}

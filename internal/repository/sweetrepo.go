package repository

import (
	"context"

	"github.com/devanshyadav01/sweetshop/internal/model"
)

// SweetRepository persists catalog items and applies quantity adjustments.
type SweetRepository interface {
	// Create inserts a new catalog item and returns the stored row.
	Create(ctx context.Context, n model.NewSweet) (*model.Sweet, error)
	// Get selects an item by id.
	Get(ctx context.Context, id int64) (*model.Sweet, error)
	// List returns all items, newest first.
	List(ctx context.Context) ([]model.Sweet, error)
	// Search returns items matching all set filters, newest first.
	Search(ctx context.Context, f model.SweetFilter) ([]model.Sweet, error)
	// Update applies a partial update and returns the stored row.
	Update(ctx context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error)
	// Delete removes an item and returns the deleted row.
	Delete(ctx context.Context, id int64) (*model.Sweet, error)
	// AdjustQuantity atomically adds delta to an item's quantity. The
	// read-check-write runs in a single transaction with a row lock so
	// concurrent adjustments on the same item serialize. A negative delta
	// that would push quantity below zero fails with
	// InsufficientQuantityError and leaves the row unchanged.
	AdjustQuantity(ctx context.Context, id int64, delta int64) (*model.Sweet, error)
}

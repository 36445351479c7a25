package service

import (
	"context"

	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
)

// InventoryService is the quantity ledger: purchase decrements, restock
// increments, and quantity never goes below zero.
type InventoryService interface {
	// Purchase decrements an item's quantity by qty. Fails with
	// InsufficientQuantityError when qty exceeds current stock; no partial
	// fulfillment.
	Purchase(ctx context.Context, id int64, qty int64) (*model.Sweet, error)
	// Restock increments an item's quantity by qty. No upper bound.
	Restock(ctx context.Context, id int64, qty int64) (*model.Sweet, error)
}

type InventoryServiceImpl struct {
	sweets repository.SweetRepository
}

// NewInventoryService constructs InventoryService.
func NewInventoryService(sweets repository.SweetRepository) *InventoryServiceImpl {
	return &InventoryServiceImpl{sweets: sweets}
}

// Purchase validates qty and applies an atomic decrement.
func (s *InventoryServiceImpl) Purchase(ctx context.Context, id int64, qty int64) (*model.Sweet, error) {
	if qty < 1 {
		return nil, errs.Validation("quantity", "quantity must be at least 1")
	}
	return s.sweets.AdjustQuantity(ctx, id, -qty)
}

// Restock validates qty and applies an atomic increment.
func (s *InventoryServiceImpl) Restock(ctx context.Context, id int64, qty int64) (*model.Sweet, error) {
	if qty < 1 {
		return nil, errs.Validation("quantity", "quantity must be at least 1")
	}
	return s.sweets.AdjustQuantity(ctx, id, qty)
}

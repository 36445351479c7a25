package service

import (
	"context"
	"strings"

	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
)

// CatalogService defines CRUD and search over the sweet catalog.
type CatalogService interface {
	Create(ctx context.Context, n model.NewSweet) (*model.Sweet, error)
	Get(ctx context.Context, id int64) (*model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, f model.SweetFilter) ([]model.Sweet, error)
	Update(ctx context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error)
	Delete(ctx context.Context, id int64) (*model.Sweet, error)
}

type CatalogServiceImpl struct {
	sweets repository.SweetRepository
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(sweets repository.SweetRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{sweets: sweets}
}

// Create validates and persists a new catalog item.
func (s *CatalogServiceImpl) Create(ctx context.Context, n model.NewSweet) (*model.Sweet, error) {
	n.Name = strings.TrimSpace(n.Name)
	if err := model.ValidateNewSweet(n); err != nil {
		return nil, err
	}
	return s.sweets.Create(ctx, n)
}

// Get returns a single item by id.
func (s *CatalogServiceImpl) Get(ctx context.Context, id int64) (*model.Sweet, error) {
	return s.sweets.Get(ctx, id)
}

// List returns all items, newest first.
func (s *CatalogServiceImpl) List(ctx context.Context) ([]model.Sweet, error) {
	return s.sweets.List(ctx)
}

// Search returns items matching all set filters.
func (s *CatalogServiceImpl) Search(ctx context.Context, f model.SweetFilter) ([]model.Sweet, error) {
	return s.sweets.Search(ctx, f)
}

// Update validates supplied fields and applies a partial update.
func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error) {
	if up.Name != nil {
		trimmed := strings.TrimSpace(*up.Name)
		up.Name = &trimmed
	}
	if err := model.ValidateSweetUpdate(up); err != nil {
		return nil, err
	}
	return s.sweets.Update(ctx, id, up)
}

// Delete removes an item and returns the deleted row.
func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) (*model.Sweet, error) {
	return s.sweets.Delete(ctx, id)
}

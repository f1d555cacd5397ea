package service

import (
	"context"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/platform/logger"
	"github.com/calebhs/storefront-api/internal/store"
)

// ProductService implements the product catalog use cases.
type ProductService struct {
	products store.ProductStore
}

// NewProductService creates a ProductService backed by the given store.
func NewProductService(products store.ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Create validates and inserts a new product.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product created",
		"product_id", created.ID, "title", created.Title)
	return created, nil
}

// Get returns the product, or (nil, nil) when absent.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

// ListActive returns the public catalog: active products only.
func (s *ProductService) ListActive(ctx context.Context, page store.Page) ([]domain.Product, error) {
	active := true
	return s.products.List(ctx, store.ProductFilter{IsActive: &active}, page, "")
}

// List returns products matching the filter, for administrative listings.
func (s *ProductService) List(ctx context.Context, filter store.ProductFilter, page store.Page, orderBy string) ([]domain.Product, error) {
	return s.products.List(ctx, filter, page, orderBy)
}

// Search performs a free-text match over active products, optionally
// restricted to the given categories.
func (s *ProductService) Search(ctx context.Context, query string, categoryIDs []int64, page store.Page) ([]domain.Product, error) {
	return s.products.Search(ctx, query, categoryIDs, page)
}

// Update applies the patch to the product. Patched values are validated
// against the same rules as Create; the update is rejected as a whole if
// the resulting product would be invalid. Returns (nil, nil) when the
// product is absent.
func (s *ProductService) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, patch, store.Always)
}

// Delete removes the product. A product referenced by cart or order rows
// fails with store.DependentEntityError.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func validateProductPatch(patch domain.ProductPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return domain.ErrEmptyTitle
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	if patch.FullPrice != nil && *patch.FullPrice < 0 {
		return domain.ErrInvalidPrice
	}
	return nil
}

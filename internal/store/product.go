package store

import (
	"context"
	"database/sql"

	"github.com/calebhs/storefront-api/internal/domain"
)

// ProductFilter is a conjunction of optional clauses for product listings.
// Each clause is included only when its field is non-nil (or non-empty).
type ProductFilter struct {
	IDs      []int64
	IsActive *bool
}

// ProductStore defines the persistence contract for products.
type ProductStore interface {
	Creator[domain.Product]
	Getter[domain.Product, int64]
	Updater[domain.Product, int64, domain.ProductPatch]
	Deleter[int64]

	// List returns products matching the filter, ordered by primary key
	// unless orderBy names another column. It returns an empty slice,
	// never nil-with-error, when nothing matches.
	List(ctx context.Context, filter ProductFilter, page Page, orderBy string, opts ...GetOption) ([]domain.Product, error)

	// Search performs a free-text match against title and description,
	// optionally restricted to the given categories.
	Search(ctx context.Context, query string, categoryIDs []int64, page Page) ([]domain.Product, error)

	// WithTx returns a ProductStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProductStore
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// ProductStore implements store.ProductStore against PostgreSQL.
type ProductStore struct {
	crud[domain.Product, int64]
}

var _ store.ProductStore = (*ProductStore)(nil)

var productColumns = []string{
	"id", "title", "description", "quantity", "full_price", "is_active",
	"category_id", "created_at", "updated_at",
}

// NewProductStore creates a ProductStore bound to the given connection or
// transaction.
func NewProductStore(db store.DBTX) *ProductStore {
	return &ProductStore{crud: crud[domain.Product, int64]{
		db:       db,
		table:    "products",
		entity:   "Product",
		cols:     productColumns,
		keyWhere: singleKeyWhere("id"),
		scanRow:  scanProduct,
	}}
}

func scanProduct(s rowScanner) (*domain.Product, error) {
	var (
		p          domain.Product
		categoryID sql.NullInt64
	)
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Quantity, &p.FullPrice,
		&p.IsActive, &categoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	return &p, nil
}

// Create inserts the product and populates its generated fields.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (title, description, quantity, full_price, is_active, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	created := *product
	err := s.db.QueryRowContext(ctx, query,
		product.Title, product.Description, product.Quantity,
		product.FullPrice, product.IsActive, nullInt64(product.CategoryID),
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, MapError(err, s.entity)
	}
	return &created, nil
}

// Update applies the patch to the product identified by id, gated by pred.
// A failed predicate leaves the row untouched and returns (nil, nil).
func (s *ProductStore) Update(ctx context.Context, id int64, patch domain.ProductPatch, pred store.Predicate[domain.Product]) (*domain.Product, error) {
	var set []assign
	if patch.Title != nil {
		set = append(set, assign{col: "title", val: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, assign{col: "description", val: *patch.Description})
	}
	if patch.Quantity != nil {
		set = append(set, assign{col: "quantity", val: *patch.Quantity})
	}
	if patch.FullPrice != nil {
		set = append(set, assign{col: "full_price", val: *patch.FullPrice})
	}
	if patch.IsActive != nil {
		set = append(set, assign{col: "is_active", val: *patch.IsActive})
	}
	if patch.CategoryID != nil {
		set = append(set, assign{col: "category_id", val: *patch.CategoryID})
	}
	if len(set) > 0 {
		set = append(set, assign{col: "updated_at", val: time.Now().UTC()})
	}
	return s.update(ctx, id, set, pred)
}

// List returns products matching the filter. The filter is a conjunction of
// optional clauses; each is included only when its field is set.
func (s *ProductStore) List(ctx context.Context, filter store.ProductFilter, page store.Page, orderBy string, opts ...store.GetOption) ([]domain.Product, error) {
	var (
		clauses []string
		args    []any
	)
	if len(filter.IDs) > 0 {
		clauses = append(clauses, inClause("id", len(filter.IDs), len(args)))
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if filter.IsActive != nil {
		clauses = append(clauses, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *filter.IsActive)
	}

	o := store.ApplyGetOptions(opts)
	return s.selectAll(ctx, s.db, strings.Join(clauses, " AND "), args, orderBy, page, o.ForUpdate)
}

// Search matches query against title and description, case-insensitively,
// optionally restricted to the given categories. Only active products are
// returned.
func (s *ProductStore) Search(ctx context.Context, query string, categoryIDs []int64, page store.Page) ([]domain.Product, error) {
	clauses := []string{"(title ILIKE $1 OR description ILIKE $1)", "is_active = true"}
	args := []any{"%" + query + "%"}

	if len(categoryIDs) > 0 {
		clauses = append(clauses, inClause("category_id", len(categoryIDs), len(args)))
		for _, id := range categoryIDs {
			args = append(args, id)
		}
	}

	return s.selectAll(ctx, s.db, strings.Join(clauses, " AND "), args, "", page, false)
}

// WithTx returns a ProductStore that runs inside the given transaction.
func (s *ProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return NewProductStore(tx)
}

// inClause builds "col IN ($n, $n+1, ...)" for count placeholders starting
// after argOffset.
func inClause(col string, count, argOffset int) string {
	ph := make([]string, count)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", argOffset+i+1)
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(ph, ", "))
}

// nullInt64 maps a nil pointer to SQL NULL.
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

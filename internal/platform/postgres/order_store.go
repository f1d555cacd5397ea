package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// OrderStore implements store.OrderStore against PostgreSQL.
type OrderStore struct {
	db store.DBTX
}

var _ store.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates an OrderStore bound to the given connection or
// transaction.
func NewOrderStore(db store.DBTX) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts the order and all its line items. Run it inside the
// checkout transaction so the order and items commit together.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
		INSERT INTO orders (user_id, total)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	created := *order
	err := s.db.QueryRowContext(ctx, query, order.UserID, order.Total).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, MapError(err, "Order")
	}

	created.Items = make([]domain.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.OrderID = created.ID
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, MapError(err, "OrderItem")
		}
		created.Items[i] = item
	}
	return &created, nil
}

// Get returns the order with its items, or (nil, nil) when absent.
func (s *OrderStore) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, total, created_at FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapError(err, "Order")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`, id)
	if err != nil {
		return nil, MapError(err, "OrderItem")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, MapError(err, "OrderItem")
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, "OrderItem")
	}
	return &o, nil
}

// ListByUser returns the user's orders, newest first, without items.
func (s *OrderStore) ListByUser(ctx context.Context, userID int64, page store.Page) ([]domain.Order, error) {
	query := `SELECT id, user_id, total, created_at FROM orders WHERE user_id = $1 ORDER BY id DESC`
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", page.Limit)
	}
	if page.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", page.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err, "Order")
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.CreatedAt); err != nil {
			return nil, MapError(err, "Order")
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, "Order")
	}
	return out, nil
}

// WithTx returns an OrderStore that runs inside the given transaction.
func (s *OrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return NewOrderStore(tx)
}

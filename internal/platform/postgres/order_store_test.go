package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

func TestOrderStoreCreateWithItems(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO orders \(user_id, total\) VALUES \(\$1, \$2\) RETURNING id, created_at`).
		WithArgs(int64(7), int64(5700)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, product_id, quantity, unit_price\)`).
		WithArgs(int64(11), int64(3), 2, int64(1900)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, product_id, quantity, unit_price\)`).
		WithArgs(int64(11), int64(5), 1, int64(1900)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := s.Create(context.Background(), &domain.Order{
		UserID: 7,
		Total:  5700,
		Items: []domain.OrderItem{
			{ProductID: 3, Quantity: 2, UnitPrice: 1900},
			{ProductID: 5, Quantity: 1, UnitPrice: 1900},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	require.Len(t, created.Items, 2)
	assert.Equal(t, int64(11), created.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreGetWithItems(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, total, created_at FROM orders WHERE id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}).
			AddRow(int64(11), int64(7), int64(3800), now))
	mock.ExpectQuery(`SELECT order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = \$1 ORDER BY product_id`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "product_id", "quantity", "unit_price"}).
			AddRow(int64(11), int64(3), 2, int64(1900)))

	order, err := s.Get(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(3800), order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(3), order.Items[0].ProductID)
}

func TestOrderStoreGetAbsent(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	mock.ExpectQuery(`SELECT id, user_id, total, created_at FROM orders WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	order, err := s.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestOrderStoreListByUserNewestFirst(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, total, created_at FROM orders WHERE user_id = \$1 ORDER BY id DESC LIMIT 10`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}).
			AddRow(int64(12), int64(7), int64(900), now).
			AddRow(int64(11), int64(7), int64(3800), now))

	orders, err := s.ListByUser(context.Background(), 7, store.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(12), orders[0].ID)
}

func TestOrderStoreListByUserOffsetWithoutLimit(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	mock.ExpectQuery(`SELECT id, user_id, total, created_at FROM orders WHERE user_id = \$1 ORDER BY id DESC OFFSET 5$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}))

	orders, err := s.ListByUser(context.Background(), 7, store.Page{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreListByUserEmpty(t *testing.T) {
	db, mock := newMock(t)
	s := NewOrderStore(db)

	mock.ExpectQuery(`SELECT id, user_id, total, created_at FROM orders WHERE user_id = \$1 ORDER BY id DESC`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}))

	orders, err := s.ListByUser(context.Background(), 8, store.Page{})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

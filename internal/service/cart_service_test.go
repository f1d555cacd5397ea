package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// memProductStore is an in-memory store.ProductStore for tests.
type memProductStore struct {
	products map[int64]*domain.Product
}

func newMemProductStore(products ...domain.Product) *memProductStore {
	m := &memProductStore{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		cp := p
		m.products[p.ID] = &cp
	}
	return m
}

func (m *memProductStore) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	cp := *p
	m.products[p.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memProductStore) Get(_ context.Context, id int64, _ ...store.GetOption) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (m *memProductStore) Update(_ context.Context, id int64, patch domain.ProductPatch, pred store.Predicate[domain.Product]) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	if pred != nil && !pred(p) {
		return nil, nil
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	out := *p
	return &out, nil
}

func (m *memProductStore) Delete(_ context.Context, id int64) error {
	delete(m.products, id)
	return nil
}

func (m *memProductStore) List(_ context.Context, filter store.ProductFilter, _ store.Page, _ string, _ ...store.GetOption) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range m.products {
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProductStore) Search(_ context.Context, _ string, _ []int64, _ store.Page) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProductStore) WithTx(*sql.Tx) store.ProductStore { return m }

// memCartStore is an in-memory store.CartItemStore for tests.
type memCartStore struct {
	items map[domain.CartKey]*domain.CartItem
}

func newMemCartStore() *memCartStore {
	return &memCartStore{items: make(map[domain.CartKey]*domain.CartItem)}
}

func (m *memCartStore) Create(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if _, ok := m.items[item.Key()]; ok {
		return nil, store.ErrAlreadyExists
	}
	cp := *item
	cp.CreatedAt = time.Now()
	m.items[item.Key()] = &cp
	out := cp
	return &out, nil
}

func (m *memCartStore) Get(_ context.Context, key domain.CartKey, _ ...store.GetOption) (*domain.CartItem, error) {
	item, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	out := *item
	return &out, nil
}

func (m *memCartStore) Update(_ context.Context, key domain.CartKey, patch domain.CartItemPatch, pred store.Predicate[domain.CartItem]) (*domain.CartItem, error) {
	item, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	if pred != nil && !pred(item) {
		return nil, nil
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	out := *item
	return &out, nil
}

func (m *memCartStore) Upsert(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if existing, ok := m.items[item.Key()]; ok {
		existing.Quantity = item.Quantity
		out := *existing
		return &out, nil
	}
	cp := *item
	cp.CreatedAt = time.Now()
	m.items[item.Key()] = &cp
	out := cp
	return &out, nil
}

func (m *memCartStore) Delete(_ context.Context, key domain.CartKey) error {
	delete(m.items, key)
	return nil
}

func (m *memCartStore) ListByUser(_ context.Context, userID int64, _ ...store.GetOption) ([]domain.CartItem, error) {
	out := make([]domain.CartItem, 0)
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memCartStore) DeleteAllByUser(_ context.Context, userID int64) error {
	for key := range m.items {
		if key.UserID == userID {
			delete(m.items, key)
		}
	}
	return nil
}

func (m *memCartStore) WithTx(*sql.Tx) store.CartItemStore { return m }

func activeProduct(id int64, quantity int) domain.Product {
	return domain.Product{
		ID: id, Title: "Teapot", Quantity: quantity,
		FullPrice: 1900, IsActive: true,
	}
}

func TestPutItemCreatesWhenAbsent(t *testing.T) {
	carts := newMemCartStore()
	svc := NewCartService(carts, newMemProductStore(activeProduct(3, 5)))

	item, err := svc.PutItem(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, carts.items, 1)
}

func TestPutItemUpdatesExisting(t *testing.T) {
	carts := newMemCartStore()
	svc := NewCartService(carts, newMemProductStore(activeProduct(3, 5)))

	_, err := svc.PutItem(context.Background(), 7, 3, 2)
	require.NoError(t, err)

	item, err := svc.PutItem(context.Background(), 7, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.Len(t, carts.items, 1)
}

func TestPutItemRejectsBadQuantity(t *testing.T) {
	svc := NewCartService(newMemCartStore(), newMemProductStore(activeProduct(3, 5)))

	_, err := svc.PutItem(context.Background(), 7, 3, 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPutItemUnknownProduct(t *testing.T) {
	svc := NewCartService(newMemCartStore(), newMemProductStore())

	_, err := svc.PutItem(context.Background(), 7, 99, 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPutItemInactiveProduct(t *testing.T) {
	inactive := activeProduct(3, 5)
	inactive.IsActive = false
	svc := NewCartService(newMemCartStore(), newMemProductStore(inactive))

	_, err := svc.PutItem(context.Background(), 7, 3, 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPutItemInsufficientStock(t *testing.T) {
	svc := NewCartService(newMemCartStore(), newMemProductStore(activeProduct(3, 1)))

	_, err := svc.PutItem(context.Background(), 7, 3, 2)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Contains(t, err.Error(), "product 3")
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	carts := newMemCartStore()
	svc := NewCartService(carts, newMemProductStore(activeProduct(3, 5)))

	_, err := svc.PutItem(context.Background(), 7, 3, 2)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), 7, 3))
	require.NoError(t, svc.RemoveItem(context.Background(), 7, 3))
	assert.Empty(t, carts.items)
}

func TestClearOnlyTouchesOwnItems(t *testing.T) {
	carts := newMemCartStore()
	products := newMemProductStore(activeProduct(3, 10))
	svc := NewCartService(carts, products)

	_, err := svc.PutItem(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	_, err = svc.PutItem(context.Background(), 8, 3, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), 7))

	mine, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := svc.List(context.Background(), 8)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

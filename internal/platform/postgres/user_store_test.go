package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func userRow(u domain.User) *sqlmock.Rows {
	var password, idpID any
	if u.HashedPassword != "" {
		password = u.HashedPassword
	}
	if u.IdentityProviderID != "" {
		idpID = u.IdentityProviderID
	}
	return sqlmock.NewRows(userColumns).AddRow(
		u.ID, u.Email, u.Name, password, idpID, u.CreatedAt, u.UpdatedAt,
	)
}

func TestUserStoreCreate(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users \(email, name, hashed_password, identity_provider_id\)`).
		WithArgs("alice@example.com", "Alice", "hashed", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	created, err := s.Create(context.Background(), &domain.User{
		Email:          "alice@example.com",
		Name:           "Alice",
		HashedPassword: "hashed",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := s.Create(context.Background(), &domain.User{
		Email:          "alice@example.com",
		Name:           "Alice",
		HashedPassword: "hashed",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "email already exists")
}

func TestUserStoreCreateInvalidEmail(t *testing.T) {
	db, _ := newMock(t)
	s := NewUserStore(db)

	_, err := s.Create(context.Background(), &domain.User{Email: "not-an-email"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUserStoreGetAbsent(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	user, err := s.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserStoreGetByEmail(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(userRow(domain.User{
			ID: 1, Email: "alice@example.com", Name: "Alice",
			HashedPassword: "hashed", CreatedAt: now, UpdatedAt: now,
		}))

	user, err := s.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.HasLocalPassword())
}

func TestUserStoreGetByEmailAbsent(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := s.GetByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserStoreUpdate(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	now := time.Now()
	newName := "Alicia"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(userRow(domain.User{
			ID: 1, Email: "alice@example.com", Name: "Alice",
			HashedPassword: "hashed", CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectQuery(`UPDATE users SET name = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WithArgs(newName, sqlmock.AnyArg(), int64(1)).
		WillReturnRows(userRow(domain.User{
			ID: 1, Email: "alice@example.com", Name: newName,
			HashedPassword: "hashed", CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectCommit()

	updated, err := s.Update(context.Background(), 1, domain.UserPatch{Name: &newName}, store.Always)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newName, updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreUpdatePredicateRejected(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	now := time.Now()
	newName := "Alicia"

	// The row is fetched and locked, the predicate fails, and no UPDATE runs.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(userRow(domain.User{
			ID: 1, Email: "alice@example.com", Name: "Alice",
			CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectCommit()

	updated, err := s.Update(context.Background(), 1, domain.UserPatch{Name: &newName},
		func(u *domain.User) bool { return u.HasLocalPassword() })
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreUpdateAbsent(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	newName := "Alicia"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	updated, err := s.Update(context.Background(), 42, domain.UserPatch{Name: &newName}, store.Always)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserStoreDeleteMissingIsNoop(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), 42))
}

func TestUserStoreDeleteBlockedByOrders(t *testing.T) {
	db, mock := newMock(t)
	s := NewUserStore(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503", TableName: "orders"})

	err := s.Delete(context.Background(), 1)
	require.ErrorIs(t, err, store.ErrDependentEntity)

	var depErr *store.DependentEntityError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "orders", depErr.Relation)
	assert.Equal(t, "User", depErr.Entity)
	assert.Equal(t,
		"there is some other entity in relation orders that depends on User",
		depErr.Error())
}

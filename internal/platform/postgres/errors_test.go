package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhs/storefront-api/internal/store"
)

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil, "User"))
}

func TestMapErrorUniqueViolationKnownConstraint(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "User")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "user with the given email already exists")
}

func TestMapErrorUniqueViolationUnknownConstraint(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "23505", ConstraintName: "something_else"}, "User")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "something_else")
}

func TestMapErrorForeignKeyViolation(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", TableName: "cart_items"}
	err := MapError(cause, "Product")

	require.ErrorIs(t, err, store.ErrDependentEntity)

	var depErr *store.DependentEntityError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "cart_items", depErr.Relation)
	assert.Equal(t, "Product", depErr.Entity)
	assert.Equal(t,
		"there is some other entity in relation cart_items that depends on Product",
		depErr.Error())
	assert.ErrorIs(t, depErr.Unwrap(), cause)
}

func TestMapErrorOther(t *testing.T) {
	cause := errors.New("connection reset")
	err := MapError(cause, "User")
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, store.ErrAlreadyExists)
	assert.NotErrorIs(t, err, store.ErrDependentEntity)
}

func TestViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}

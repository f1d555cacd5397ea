package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all store implementations. Storage-layer
// exceptions are translated into these at the persistence boundary; no raw
// driver error crosses it.
var (
	// ErrAlreadyExists is returned when a create would violate a
	// uniqueness rule (e.g. a second user with the same email). The
	// wrapping error describes which rule was violated.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrDependentEntity is returned when a delete is blocked because
	// other rows still reference the target. Use errors.As with
	// *DependentEntityError to recover the relation name.
	ErrDependentEntity = errors.New("dependent entity exists")

	// ErrTransactionFailed is returned when a transaction fails to begin
	// or commit.
	ErrTransactionFailed = errors.New("transaction failed")
)

// DependentEntityError reports a delete blocked by a foreign reference.
// Relation is the table holding the referencing rows; Entity is the type
// whose delete was refused.
type DependentEntityError struct {
	Entity   string
	Relation string
	Err      error
}

func (e *DependentEntityError) Error() string {
	return fmt.Sprintf(
		"there is some other entity in relation %s that depends on %s",
		e.Relation, e.Entity,
	)
}

// Is makes errors.Is(err, ErrDependentEntity) hold for this type.
func (e *DependentEntityError) Is(target error) bool {
	return target == ErrDependentEntity
}

// Unwrap returns the underlying driver error for diagnostics.
func (e *DependentEntityError) Unwrap() error {
	return e.Err
}

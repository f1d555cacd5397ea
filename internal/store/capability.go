package store

import "context"

// Predicate gates a conditional update: the update is applied only if the
// predicate holds for the current row at write time.
type Predicate[E any] func(*E) bool

// Always is the default update predicate; it accepts every row.
func Always[E any](*E) bool { return true }

// Creator inserts new entities. On a uniqueness violation it fails with
// ErrAlreadyExists describing the violated rule. On success the returned
// entity has its generated fields (id, timestamps) populated.
type Creator[E any] interface {
	Create(ctx context.Context, entity *E) (*E, error)
}

// Getter performs point lookups by primary key. A missing row yields
// (nil, nil). ForUpdate requests a row lock for the duration of the
// enclosing transaction.
type Getter[E any, K any] interface {
	Get(ctx context.Context, key K, opts ...GetOption) (*E, error)
}

// Updater applies a partial update gated by a predicate, atomically with
// respect to concurrent updates on the same key: the current row is fetched
// under a row lock, the predicate evaluated against it, and the patch
// applied only if the predicate holds. A missing row or failed predicate
// yields (nil, nil) and writes nothing.
type Updater[E any, K any, P any] interface {
	Update(ctx context.Context, key K, patch P, pred Predicate[E]) (*E, error)
}

// Deleter removes rows by primary key. Deleting a missing row is a no-op.
// If dependent rows reference the key, it fails with a DependentEntityError
// naming the dependent relation, and deletes nothing.
type Deleter[K any] interface {
	Delete(ctx context.Context, key K) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/calebhs/storefront-api/internal/store"
)

// rowScanner is the subset of *sql.Row / *sql.Rows used to hydrate entities.
type rowScanner interface {
	Scan(dest ...any) error
}

// assign is one SET clause of a partial update.
type assign struct {
	col string
	val any
}

// crud carries the generic capability operations for one relation. Entity
// stores embed it and supply the relation metadata: the selectable columns
// (key first), a WHERE builder for the key shape, and a row-scanning
// function.
type crud[E any, K any] struct {
	db       store.DBTX
	table    string
	entity   string
	cols     []string
	keyWhere func(key K, argOffset int) (string, []any)
	scanRow  func(s rowScanner) (*E, error)
}

// selectCols returns the comma-joined column list.
func (c *crud[E, K]) selectCols() string {
	return strings.Join(c.cols, ", ")
}

// get performs a point lookup by primary key on the given DBTX. A missing
// row yields (nil, nil).
func (c *crud[E, K]) get(ctx context.Context, db store.DBTX, key K, opts store.GetOptions) (*E, error) {
	where, args := c.keyWhere(key, 0)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", c.selectCols(), c.table, where)
	if opts.ForUpdate {
		query += " FOR UPDATE"
	}

	entity, err := c.scanRow(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapError(err, c.entity)
	}
	return entity, nil
}

// Get implements store.Getter against the store's bound DBTX.
func (c *crud[E, K]) Get(ctx context.Context, key K, opts ...store.GetOption) (*E, error) {
	return c.get(ctx, c.db, key, store.ApplyGetOptions(opts))
}

// selectAll runs a filtered bulk read. where may be empty; orderBy must be
// a trusted column expression (it defaults to the primary key).
func (c *crud[E, K]) selectAll(
	ctx context.Context,
	db store.DBTX,
	where string,
	args []any,
	orderBy string,
	page store.Page,
	forUpdate bool,
) ([]E, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", c.selectCols(), c.table)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if orderBy == "" {
		orderBy = c.cols[0]
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy)
	if page.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", page.Limit)
	}
	if page.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", page.Offset)
	}
	if forUpdate {
		b.WriteString(" FOR UPDATE")
	}

	rows, err := db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, MapError(err, c.entity)
	}
	defer func() { _ = rows.Close() }()

	out := make([]E, 0)
	for rows.Next() {
		entity, err := c.scanRow(rows)
		if err != nil {
			return nil, MapError(err, c.entity)
		}
		out = append(out, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, c.entity)
	}
	return out, nil
}

// update applies the predicate-gated conditional update. The check and the
// write happen atomically: when the store is bound to *sql.DB a dedicated
// transaction is opened and the row fetched FOR UPDATE; when it is already
// bound to a transaction, the existing unit of work provides the lock scope.
// A missing row or failed predicate yields (nil, nil) with no write.
func (c *crud[E, K]) update(ctx context.Context, key K, set []assign, pred store.Predicate[E]) (*E, error) {
	if pred == nil {
		pred = store.Always[E]
	}

	var updated *E
	apply := func(ctx context.Context, db store.DBTX) error {
		current, err := c.get(ctx, db, key, store.GetOptions{ForUpdate: true})
		if err != nil {
			return err
		}
		if current == nil || !pred(current) {
			return nil
		}
		if len(set) == 0 {
			updated = current
			return nil
		}

		clauses := make([]string, len(set))
		args := make([]any, len(set))
		for i, a := range set {
			clauses[i] = fmt.Sprintf("%s = $%d", a.col, i+1)
			args[i] = a.val
		}
		where, keyArgs := c.keyWhere(key, len(set))
		args = append(args, keyArgs...)

		query := fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s RETURNING %s",
			c.table, strings.Join(clauses, ", "), where, c.selectCols(),
		)
		updated, err = c.scanRow(db.QueryRowContext(ctx, query, args...))
		if err != nil {
			return MapError(err, c.entity)
		}
		return nil
	}

	if db, ok := c.db.(*sql.DB); ok {
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return apply(ctx, tx)
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	// Already inside a caller-managed transaction.
	if err := apply(ctx, c.db); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the row for the key. Deleting a missing row is a no-op; a
// delete blocked by referencing rows fails with a DependentEntityError.
func (c *crud[E, K]) Delete(ctx context.Context, key K) error {
	where, args := c.keyWhere(key, 0)
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", c.table, where)
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return MapError(err, c.entity)
	}
	return nil
}

// singleKeyWhere builds the WHERE clause for scalar primary keys.
func singleKeyWhere(col string) func(key int64, argOffset int) (string, []any) {
	return func(key int64, argOffset int) (string, []any) {
		return fmt.Sprintf("%s = $%d", col, argOffset+1), []any{key}
	}
}

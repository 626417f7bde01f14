// Package sqldriver implements storage.Driver over database/sql. It is
// dialect-agnostic: queries are built with ent's SQL builder and the schema
// is migrated with ent's migrator, so the postgres and sqlite packages only
// open the connection and classify constraint errors.
package sqldriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/vdk888/knowledge/pkg/storage"
)

var _ storage.Driver = (*Driver)(nil)

// ConstraintKind is the kind of integrity constraint a database error violated.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
)

// Classifier inspects a dialect-specific error.
type Classifier func(err error) ConstraintKind

// Driver provides storage operations over a *sql.DB.
// It is embedded by the dialect drivers.
type Driver struct {
	DB *sql.DB

	dialect  string
	classify Classifier
	now      func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithClassifier sets the constraint error classifier of the dialect.
func WithClassifier(c Classifier) Option {
	return func(d *Driver) {
		d.classify = c
	}
}

// WithClock sets the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// New wraps db. dialectName is one of ent's dialect names (dialect.Postgres,
// dialect.SQLite).
func New(db *sql.DB, dialectName string, opts ...Option) *Driver {
	d := &Driver{
		DB:       db,
		dialect:  dialectName,
		classify: func(error) ConstraintKind { return ConstraintNone },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Migrate creates or updates the users, concepts, concept_relationships and
// user_progress tables.
func (d *Driver) Migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(entsql.OpenDB(d.dialect, d.DB))
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	return d.DB.Close()
}

func (d *Driver) builder() *entsql.DialectBuilder {
	return entsql.Dialect(d.dialect)
}

func (d *Driver) timestamp() time.Time {
	return d.now().UTC()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (T, error)) ([]T, error) {
	query, args := sel.Query()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

func queryOne[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (T, error)) (*T, error) {
	query, args := sel.Query()

	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query: %w", err)
	}

	return &v, nil
}

// insert runs ib and returns the id of the new row.
func (d *Driver) insert(ctx context.Context, q querier, ib *entsql.InsertBuilder) (int64, error) {
	if d.dialect == dialect.Postgres {
		query, args := ib.Returning("id").Query()

		var id int64
		if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args := ib.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// constraintError translates a constraint violation into a storage error.
// Other errors are returned wrapped.
func (d *Driver) constraintError(err error, op string, onUnique, onForeignKey error) error {
	switch d.classify(err) {
	case ConstraintUnique:
		if onUnique != nil {
			return onUnique
		}
	case ConstraintForeignKey:
		if onForeignKey != nil {
			return onForeignKey
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

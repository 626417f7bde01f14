// Package sqlite provides a SQLite-backed storage driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	"github.com/mattn/go-sqlite3"

	"github.com/vdk888/knowledge/pkg/storage/sqldriver"
)

// Driver implements storage.Driver using SQLite.
type Driver struct {
	*sqldriver.Driver
}

// NewDriver creates a new SQLite-backed driver and migrates the schema.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(ctx context.Context, dbPath string, opts ...sqldriver.Option) (*Driver, error) {
	// Open the database using the github.com/mattn/go-sqlite3 driver (registered as "sqlite3").
	// Foreign keys are enabled per connection through the DSN so every pooled
	// connection enforces them.
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" would otherwise get its own empty database.
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	opts = append([]sqldriver.Option{sqldriver.WithClassifier(Classify)}, opts...)
	drv := sqldriver.New(db, dialect.SQLite, opts...)

	if err := drv.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{Driver: drv}, nil
}

// isMemory reports whether dbPath names an in-memory database: ":memory:",
// "file::memory:" with or without parameters, or any URI with mode=memory.
func isMemory(dbPath string) bool {
	path, query, _ := strings.Cut(strings.TrimPrefix(dbPath, "file:"), "?")
	return path == ":memory:" || strings.Contains(query, "mode=memory")
}

func dsn(dbPath string) string {
	path := strings.TrimPrefix(dbPath, "file:")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_fk=1"
}

// Classify maps SQLite constraint errors to constraint kinds.
func Classify(err error) sqldriver.ConstraintKind {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return sqldriver.ConstraintNone
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return sqldriver.ConstraintUnique
	case sqlite3.ErrConstraintForeignKey:
		return sqldriver.ConstraintForeignKey
	default:
		return sqldriver.ConstraintNone
	}
}

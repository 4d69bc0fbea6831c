// Package store provides the storage backends shared by the loader and
// the reporter. SQLite is the default file-based backend; PostgreSQL is
// available for loading into a shared server instead.
package store

import (
	"context"
	"fmt"

	"github.com/shopetl/shopetl/internal/config"
)

// Store is the storage contract the loader and reporter run against.
type Store interface {
	// RecreateSchema drops (children first) and recreates the five
	// pipeline tables, wiping any prior content.
	RecreateSchema(ctx context.Context) error

	// InsertRows bulk-inserts rows positionally by column order and
	// commits once.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error

	// RowCount returns SELECT COUNT(*) for the table.
	RowCount(ctx context.Context, table string) (int64, error)

	// Query runs a read-only statement and returns the result column
	// names and rows.
	Query(ctx context.Context, sql string) (columns []string, rows [][]any, err error)

	Close() error
}

// Open connects the backend selected by the database configuration,
// creating the SQLite file when it does not exist yet.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return OpenSQLite(cfg.Path)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// OpenExisting is Open for read-only consumers: a missing SQLite file is
// a not-found error instead of a fresh empty database.
func OpenExisting(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return OpenSQLiteExisting(cfg.Path)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

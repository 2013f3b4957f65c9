// Package repomanager vends driver-specific repository implementations and
// the matching schema migrations, so the vault core can stay ignorant of the
// storage backend.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"passkeeper/internal/dbx"
	"passkeeper/internal/repositories/entries"
	"passkeeper/internal/repositories/users"
)

// Supported database driver names, as used in configuration.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// RepositoryManager builds repositories bound to a DBTX (plain connection or
// transaction) and knows how to migrate the schema for its backend.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

// New returns the RepositoryManager for the given driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	case DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}
}

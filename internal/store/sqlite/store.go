// internal/store/sqlite/store.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/shrimpsizemoose/pacekeeper/internal/store"
	"github.com/shrimpsizemoose/pacekeeper/migrations"
)

// SQLiteStore holds the legacy flat layout in a SQLite file or in memory. It stands in
// for the production legacy server in local runs and tests.
type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// an in-memory database lives only as long as its single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{BaseStore: store.BaseStore{
		DB:      db,
		Dialect: store.DialectLegacy,
	}}, nil
}

func (s *SQLiteStore) ApplyMigrations(ctx context.Context) error {
	return s.BaseStore.ApplyMigrations(ctx, migrations.FS, migrations.LegacyDir, "sqlite3")
}

package postgres

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/pacekeeper/internal/store"
	"github.com/shrimpsizemoose/pacekeeper/migrations"
)

// PostgresStore is the backing database of the modern schema.
type PostgresStore struct {
	store.BaseStore
}

// NewPostgresStore connects with lib/pq ("postgres") or pgx ("pgx").
func NewPostgresStore(driver store.DatabaseType, dsn string, prefixes map[store.Schema]string) (*PostgresStore, error) {
	if driver == "" {
		driver = store.DBTypePostgres
	}
	if driver != store.DBTypePostgres && driver != store.DBTypePgx {
		return nil, fmt.Errorf("unsupported postgres driver %q", driver)
	}

	db, err := sqlx.Connect(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresStore{BaseStore: store.BaseStore{
		DB:       db,
		Dialect:  store.DialectModern,
		Prefixes: prefixes,
	}}, nil
}

func (s *PostgresStore) ApplyMigrations(ctx context.Context) error {
	return s.BaseStore.ApplyMigrations(ctx, migrations.FS, migrations.ModernDir, "postgres")
}

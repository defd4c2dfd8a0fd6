package app

import (
	"context"
	"fmt"

	"github.com/shrimpsizemoose/pacekeeper/internal/store"
	"github.com/shrimpsizemoose/pacekeeper/internal/store/postgres"
	"github.com/shrimpsizemoose/pacekeeper/internal/store/sqlite"
)

// Backend is a Cache that also owns its connection and schema.
type Backend interface {
	store.Cache
	ApplyMigrations(ctx context.Context) error
	Close() error
}

// NewBackend opens the database behind the legacy slot of a profile. The slot's driver
// picks the connection; prefixes come from the other slots.
func NewBackend(profile *store.Profile) (Backend, error) {
	facet := profile.Schemas[store.SchemaLegacy]

	switch facet.Driver {
	case store.DBTypeSQLite:
		s, err := sqlite.NewSQLiteStore(facet.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.DBTypePostgres, store.DBTypePgx, "":
		s, err := postgres.NewPostgresStore(facet.Driver, facet.DSN, profile.Prefixes())
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown driver %q for profile %q", facet.Driver, profile.Name)
	}
}

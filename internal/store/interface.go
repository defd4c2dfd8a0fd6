package store

import (
	"context"
)

// Schema names a slot of the connection profile. Modern tables are qualified with the
// prefix configured for their slot.
type Schema string

const (
	SchemaLegacy Schema = "legacy"
	SchemaMain   Schema = "main"
	SchemaTerm   Schema = "term"
)

// Cache is everything the logic layer needs from a database: statement execution and
// schema prefixes. Implementations own connections and transactions.
type Cache interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	// Query runs a statement and returns every row.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	// SchemaPrefix returns the prefix for a slot, or "" when tables are unqualified.
	SchemaPrefix(slot Schema) string
}

// Dialect is the physical schema layout a strategy targets.
type Dialect string

const (
	DialectLegacy Dialect = "legacy"
	DialectModern Dialect = "modern"
)

// Product markers recognized in the legacy slot of a profile.
const (
	ProductInformix   = "informix"
	ProductPostgreSQL = "postgresql"
)

// DialectForProduct maps a product marker to a dialect.
func DialectForProduct(product string) (Dialect, error) {
	switch product {
	case ProductInformix:
		return DialectLegacy, nil
	case ProductPostgreSQL:
		return DialectModern, nil
	}
	return "", &UnsupportedDialectError{Product: product}
}

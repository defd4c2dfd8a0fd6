// Package migrations embeds the goose migrations of both schema layouts.
package migrations

import "embed"

//go:embed legacy/*.sql modern/*.sql
var FS embed.FS

const (
	LegacyDir = "legacy"
	ModernDir = "modern"
)

package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypePgx      DatabaseType = "pgx"
	DBTypeSQLite   DatabaseType = "sqlite"
)

// Facet configures one schema slot of a profile.
type Facet struct {
	Product string       `toml:"product"`
	Driver  DatabaseType `toml:"driver"`
	DSN     string       `toml:"dsn"`
	Prefix  string       `toml:"prefix"`
}

// Capabilities lists optional columns a deployment's schema carries.
type Capabilities struct {
	StudentExtensionDays bool `toml:"student_extension_days"`
	StudentCanvasID      bool `toml:"student_canvas_id"`
}

// Profile is a named set of schema slots.
type Profile struct {
	Name         string           `toml:"name" validate:"required"`
	Schemas      map[Schema]Facet `toml:"schemas"`
	Capabilities Capabilities     `toml:"capabilities"`
}

// Product is the database product marker of a slot.
func (p *Profile) Product(slot Schema) string {
	return p.Schemas[slot].Product
}

// Prefixes collects the configured schema prefixes per slot.
func (p *Profile) Prefixes() map[Schema]string {
	out := make(map[Schema]string, len(p.Schemas))
	for slot, facet := range p.Schemas {
		if facet.Prefix != "" {
			out[slot] = facet.Prefix
		}
	}
	return out
}

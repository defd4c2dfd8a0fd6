package app

import (
	"sync"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/logic/legacy"
	"github.com/shrimpsizemoose/pacekeeper/internal/logic/modern"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// Resolver picks the logic bundle for a profile from the product marker of its legacy
// slot and remembers the answer per profile name.
type Resolver struct {
	mu      sync.Mutex
	bundles map[string]*logic.Logic
}

func NewResolver() *Resolver {
	return &Resolver{bundles: make(map[string]*logic.Logic)}
}

// Resolve returns the bundle for profile, or an error wrapping
// store.ErrUnsupportedDialect. Failed resolutions are not cached.
func (r *Resolver) Resolve(profile *store.Profile) (*logic.Logic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.bundles[profile.Name]; ok {
		return l, nil
	}

	dialect, err := store.DialectForProduct(profile.Product(store.SchemaLegacy))
	if err != nil {
		return nil, err
	}

	var l *logic.Logic
	switch dialect {
	case store.DialectLegacy:
		l = legacy.New(profile.Capabilities)
	case store.DialectModern:
		l = modern.New(profile.Capabilities)
	}

	logger.Debug.Printf("Profile %q resolved to %s logic", profile.Name, dialect)
	r.bundles[profile.Name] = l
	return l, nil
}

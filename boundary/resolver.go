package boundary

import (
	"github.com/netmock/relay/handlers"
)

// Resolver decides which ordered handler list applies to a request: the
// process-wide default set when no boundary is referenced, or a boundary's own
// self-contained set when one is.
type Resolver struct {
	registry *Registry
	defaults *handlers.Set
}

// NewResolver creates a Resolver. The initial handlers become the seed of the
// process-wide default set, which applies to every request that carries no
// boundary reference.
func NewResolver(registry *Registry, initial []handlers.Handler) *Resolver {
	return &Resolver{
		registry: registry,
		defaults: handlers.NewSet(initial...),
	}
}

// DefaultSet returns the process-wide default handler set. Runtime handlers
// added here apply only to requests with no boundary reference; they are never
// merged into any boundary's handlers.
func (r *Resolver) DefaultSet() *handlers.Set {
	return r.defaults
}

// ResolveHandlers returns the ordered handler list for the given boundary ID.
// The zero ID means no boundary was requested and yields the default set. A
// non-zero ID with no registry entry is a contract violation and yields
// ErrUnknownBoundary. A registered boundary yields its own runtime handlers
// only: a boundary's handler list fully replaces the default set, so every
// scoped execution gets a clean, isolated list.
func (r *Resolver) ResolveHandlers(id ID) ([]handlers.Handler, error) {
	if id == "" {
		return r.defaults.Handlers(), nil
	}
	c, found := r.registry.Resolve(id)
	if !found {
		return nil, errUnknownBoundary(id)
	}
	return c.RuntimeHandlers().Handlers(), nil
}

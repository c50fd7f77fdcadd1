package boundary

import "sync"

// Registry is the process-wide map from boundary ID to boundary context. It is
// owned by the relay server; entries live until the relay is closed.
type Registry struct {
	lock     sync.RWMutex
	contexts map[ID]*Context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[ID]*Context)}
}

// Register adds a boundary context. It returns ErrBoundaryExists if a context
// with the same ID is already registered; since IDs are minted rather than
// caller-chosen, that only happens if the same context is registered twice.
func (r *Registry) Register(c *Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.contexts[c.ID()]; found {
		return errBoundaryExists(c.ID())
	}
	r.contexts[c.ID()] = c
	return nil
}

// Resolve looks up a boundary context by ID. The second return value reports
// whether the ID was registered. Note that an absent ID is different from "no
// boundary requested"; the latter is expressed by not calling Resolve at all.
func (r *Registry) Resolve(id ID) (*Context, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c, found := r.contexts[id]
	return c, found
}

// Count returns the number of registered boundaries.
func (r *Registry) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.contexts)
}

// Clear removes all registered boundaries. Used during relay shutdown;
// idempotent.
func (r *Registry) Clear() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.contexts = make(map[ID]*Context)
}

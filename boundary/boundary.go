package boundary

import (
	"github.com/google/uuid"

	"github.com/netmock/relay/handlers"
)

// ID is an opaque, globally unique token naming one boundary. IDs are minted
// by NewID, never supplied by callers, and never reused. The zero value means
// "no boundary".
type ID string

// NewID mints a fresh boundary ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Context holds the handler state for one boundary. It is created once when
// the owning process enters a boundary scope and is owned exclusively by the
// registry entry for its ID.
type Context struct {
	id        ID
	serverURL string
	initial   []handlers.Handler
	runtime   *handlers.Set
}

// NewContext creates a boundary context with a fresh ID. The initial handler
// list is fixed for the life of the boundary; the runtime list starts as a
// copy of it.
func NewContext(serverURL string, initial []handlers.Handler) *Context {
	return &Context{
		id:        NewID(),
		serverURL: serverURL,
		initial:   append([]handlers.Handler(nil), initial...),
		runtime:   handlers.NewSet(initial...),
	}
}

// ID returns the boundary's unique identifier.
func (c *Context) ID() ID {
	return c.id
}

// ServerURL returns the base URL of the relay server this boundary belongs to.
func (c *Context) ServerURL() string {
	return c.serverURL
}

// InitialHandlers returns a copy of the handler list the boundary was created
// with. This list never changes after creation.
func (c *Context) InitialHandlers() []handlers.Handler {
	return append([]handlers.Handler(nil), c.initial...)
}

// RuntimeHandlers returns the boundary's mutable handler set. Changes made
// through the returned Set affect this boundary only.
func (c *Context) RuntimeHandlers() *handlers.Set {
	return c.runtime
}

// Use prepends handlers to the boundary's runtime list, giving them precedence
// over everything added earlier.
func (c *Context) Use(hs ...handlers.Handler) {
	c.runtime.Prepend(hs...)
}

// ResetHandlers discards all runtime changes and restores the initial handler
// list.
func (c *Context) ResetHandlers() {
	c.runtime.Replace(c.initial...)
}

package boundary

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveBoundary means the ambient boundary context was queried outside
	// of any established boundary scope.
	ErrNoActiveBoundary = errors.New("no boundary is active in this context")

	// ErrUnknownBoundary means a boundary ID did not resolve to any registered
	// boundary. Boundary IDs are minted by the relay, so this indicates a
	// contract violation rather than a transient condition.
	ErrUnknownBoundary = errors.New("no boundary is registered for this ID")

	// ErrBoundaryExists means an attempt was made to register the same boundary
	// ID twice.
	ErrBoundaryExists = errors.New("a boundary with this ID is already registered")
)

func errUnknownBoundary(id ID) error {
	return fmt.Errorf("%w: %q", ErrUnknownBoundary, id)
}

func errBoundaryExists(id ID) error {
	return fmt.Errorf("%w: %q", ErrBoundaryExists, id)
}

package boundary

import "context"

type contextKeyType string

const contextKey contextKeyType = "boundary"

// WithCurrent returns a Context with the given boundary attached as the
// current one. Every function that receives the returned Context, however
// deeply nested or rescheduled onto other goroutines, observes this boundary
// through Current. A nested WithCurrent shadows the outer boundary for its own
// derived chain and leaves the outer chain untouched.
func WithCurrent(ctx context.Context, b *Context) context.Context {
	return context.WithValue(ctx, contextKey, b)
}

// Current returns the boundary attached to the Context, or ErrNoActiveBoundary
// if none was established.
func Current(ctx context.Context) (*Context, error) {
	if b, ok := ctx.Value(contextKey).(*Context); ok && b != nil {
		return b, nil
	}
	return nil, ErrNoActiveBoundary
}

// CurrentID returns the ID of the boundary attached to the Context, or the
// zero ID if none was established. Use this at interception points where
// "no boundary" is an ordinary condition rather than a contract violation.
func CurrentID(ctx context.Context) ID {
	if b, ok := ctx.Value(contextKey).(*Context); ok && b != nil {
		return b.ID()
	}
	return ""
}

// Run establishes the boundary for the duration of fn. It mirrors the shape of
// scoped-execution entry points: fn and everything causally descended from it
// sees b as the current boundary via the Context passed in.
func Run(ctx context.Context, b *Context, fn func(context.Context) error) error {
	return fn(WithCurrent(ctx, b))
}

package handlers

import (
	"context"
	"net/http"
	"net/url"
)

// Request is the abstract form of an intercepted request. The capture layer
// reconstructs one of these from whatever networking primitive it hooked, and
// the relay ships it between processes.
type Request struct {
	// Method is the HTTP method of the original request.
	Method string

	// URL is the absolute URL of the original request.
	URL *url.URL

	// Header contains the original request headers.
	Header http.Header

	// Body is the full request body, or nil if there was none.
	Body []byte
}

// Response is the abstract form of a synthesized response. It is served back
// to the intercepted caller verbatim.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Handler is an opaque, orderable, invocable mocking unit.
//
// Attempt inspects the request and either returns a synthesized response, or
// declines by returning (nil, nil) so that later handlers (or the real
// network) get a chance. A non-nil error aborts pipeline execution.
type Handler interface {
	Attempt(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Attempt calls the underlying function.
func (f HandlerFunc) Attempt(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Clone returns a deep copy of the request. The relay client clones before
// stamping wire attributes so the caller's request is never mutated.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := &Request{Method: r.Method}
	if r.URL != nil {
		u := *r.URL
		c.URL = &u
	}
	if r.Header != nil {
		c.Header = r.Header.Clone()
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return c
}

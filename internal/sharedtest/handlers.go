package sharedtest

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/netmock/relay/handlers"
)

// CatchAllHandler matches every request and answers with the given status and
// body. AttemptCount records how many times it ran.
type CatchAllHandler struct {
	Status       int
	Body         []byte
	AttemptCount int32
}

// Attempt always synthesizes a response.
func (h *CatchAllHandler) Attempt(ctx context.Context, req *handlers.Request) (*handlers.Response, error) {
	atomic.AddInt32(&h.AttemptCount, 1)
	return &handlers.Response{
		StatusCode: h.Status,
		Header:     make(http.Header),
		Body:       append([]byte(nil), h.Body...),
	}, nil
}

// DeclineAllHandler declines every request. AttemptCount records how many
// times it was consulted.
type DeclineAllHandler struct {
	AttemptCount int32
}

// Attempt always declines.
func (h *DeclineAllHandler) Attempt(ctx context.Context, req *handlers.Request) (*handlers.Response, error) {
	atomic.AddInt32(&h.AttemptCount, 1)
	return nil, nil
}

// PingRoute returns the canonical test route: GET /ping answering
// 200 {"ok":true}.
func PingRoute() *handlers.StaticRoute {
	return &handlers.StaticRoute{
		Method:     "GET",
		Path:       "/ping",
		StatusCode: 200,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"ok":true}`),
	}
}

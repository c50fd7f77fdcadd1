package relay

import (
	"context"

	"github.com/google/uuid"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/config"
	"github.com/netmock/relay/handlers"
	"github.com/netmock/relay/internal/logging"
	"github.com/netmock/relay/internal/relayclient"
)

// Client is the facade used by an intercepting process to forward requests to
// a relay server. Each forwarded request is tagged with a fresh request ID and
// with whatever boundary is active in the caller's context.
type Client struct {
	inner *relayclient.Client
}

// NewClient creates a Client for the relay server at serverURL. Call Connect
// before forwarding any requests.
func NewClient(serverURL string, c config.Config) *Client {
	loggers := logging.MakeDefaultLoggers("RelayClient")
	_ = config.ValidateConfig(&c, loggers)
	return &Client{
		inner: relayclient.NewClient(serverURL, c.Client, loggers),
	}
}

// Connect verifies that the relay server is reachable, retrying per the client
// configuration. It returns ErrConnectionFailed once the attempt limit is
// exhausted.
func (c *Client) Connect(ctx context.Context) error {
	return c.inner.Connect(ctx)
}

// Connected reports whether Connect has succeeded.
func (c *Client) Connected() bool {
	return c.inner.Connected()
}

// Relay forwards one intercepted request. A nil response with a nil error
// means no handler claimed the request and the caller should let it proceed to
// the real destination. If a boundary is active in ctx (see boundary.Run or
// boundary.WithCurrent), its ID scopes the lookup on the server.
func (c *Client) Relay(ctx context.Context, req *handlers.Request) (*handlers.Response, error) {
	var boundaryID ldvalue.OptionalString
	if id := boundary.CurrentID(ctx); id != "" {
		boundaryID = ldvalue.NewOptionalString(string(id))
	}
	return c.inner.HandleRequest(ctx, uuid.NewString(), boundaryID, req)
}

// SendLifeCycleEvent posts an advisory life-cycle notification to the relay
// server. Delivery failures are logged and swallowed.
func (c *Client) SendLifeCycleEvent(ctx context.Context, payload []byte) {
	c.inner.SendLifeCycleEvent(ctx, payload)
}

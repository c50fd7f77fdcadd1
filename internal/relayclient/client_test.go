package relayclient

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	ct "github.com/launchdarkly/go-configtypes"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/config"
	"github.com/netmock/relay/handlers"
	"github.com/netmock/relay/internal/relayserver"
	st "github.com/netmock/relay/internal/sharedtest"
)

func fastClientConfig(t *testing.T) config.ClientConfig {
	attempts, err := ct.NewOptIntGreaterThanZero(3)
	require.NoError(t, err)
	return config.ClientConfig{
		ConnectTimeout:     ct.NewOptDuration(200 * time.Millisecond),
		RetryDelay:         ct.NewOptDuration(10 * time.Millisecond),
		MaxConnectAttempts: attempts,
		RequestTimeout:     ct.NewOptDuration(time.Second),
	}
}

func withRunningServer(t *testing.T, initial []handlers.Handler,
	action func(serverURL string, registry *boundary.Registry)) {
	registry := boundary.NewRegistry()
	resolver := boundary.NewResolver(registry, initial)
	server := relayserver.New(registry, resolver, ldlog.NewDisabledLoggers())
	serverURL, err := server.Listen()
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })

	action(serverURL, registry)
}

func connectedClient(t *testing.T, serverURL string) *Client {
	c := NewClient(serverURL, fastClientConfig(t), ldlog.NewDisabledLoggers())
	require.NoError(t, c.Connect(context.Background()))
	return c
}

func makeAbstractRequest(t *testing.T, method, rawURL string) *handlers.Request {
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &handlers.Request{Method: method, URL: u, Header: make(http.Header)}
}

func TestConnectToRunningServer(t *testing.T) {
	withRunningServer(t, nil, func(serverURL string, registry *boundary.Registry) {
		c := NewClient(serverURL, fastClientConfig(t), ldlog.NewDisabledLoggers())
		assert.False(t, c.Connected())

		require.NoError(t, c.Connect(context.Background()))
		assert.True(t, c.Connected())

		// reconnecting is a no-op
		require.NoError(t, c.Connect(context.Background()))
	})
}

func TestConnectToUnreachableServerFails(t *testing.T) {
	// a loopback port nothing is listening on
	c := NewClient("http://127.0.0.1:1", fastClientConfig(t), ldlog.NewDisabledLoggers())

	start := time.Now()
	err := c.Connect(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.False(t, c.Connected())
	// three attempts with two 10ms waits between them
	assert.Less(t, elapsed, 5*time.Second)
}

func TestConnectHonorsContextCancellation(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", fastClientConfig(t), ldlog.NewDisabledLoggers())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Connect(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConnectionFailed)
}

func TestHandleRequestBeforeConnect(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", fastClientConfig(t), ldlog.NewDisabledLoggers())

	resp, err := c.HandleRequest(context.Background(), "req-1", ldvalue.OptionalString{},
		makeAbstractRequest(t, "GET", "https://api.example.com/ping"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestHandleRequestMatched(t *testing.T) {
	withRunningServer(t, []handlers.Handler{st.PingRoute()},
		func(serverURL string, registry *boundary.Registry) {
			c := connectedClient(t, serverURL)

			resp, err := c.HandleRequest(context.Background(), "req-1", ldvalue.OptionalString{},
				makeAbstractRequest(t, "GET", "https://api.example.com/ping"))
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, 200, resp.StatusCode)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
		})
}

func TestHandleRequestUnmatchedReturnsNil(t *testing.T) {
	withRunningServer(t, []handlers.Handler{st.PingRoute()},
		func(serverURL string, registry *boundary.Registry) {
			c := connectedClient(t, serverURL)

			resp, err := c.HandleRequest(context.Background(), "req-1", ldvalue.OptionalString{},
				makeAbstractRequest(t, "GET", "https://api.example.com/missing"))
			require.NoError(t, err)
			assert.Nil(t, resp)
		})
}

func TestHandleRequestScopedToBoundary(t *testing.T) {
	withRunningServer(t, []handlers.Handler{st.PingRoute()},
		func(serverURL string, registry *boundary.Registry) {
			scoped := &st.CatchAllHandler{Status: 201, Body: []byte("scoped")}
			b := boundary.NewContext(serverURL, []handlers.Handler{scoped})
			require.NoError(t, registry.Register(b))

			c := connectedClient(t, serverURL)

			resp, err := c.HandleRequest(context.Background(), "req-1",
				ldvalue.NewOptionalString(string(b.ID())),
				makeAbstractRequest(t, "GET", "https://api.example.com/ping"))
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, 201, resp.StatusCode)
			assert.Equal(t, "scoped", string(resp.Body))
		})
}

func TestHandleRequestAfterServerStopsReturnsNil(t *testing.T) {
	registry := boundary.NewRegistry()
	resolver := boundary.NewResolver(registry, []handlers.Handler{st.PingRoute()})
	server := relayserver.New(registry, resolver, ldlog.NewDisabledLoggers())
	serverURL, err := server.Listen()
	require.NoError(t, err)

	c := connectedClient(t, serverURL)
	require.NoError(t, server.Close())

	resp, err := c.HandleRequest(context.Background(), "req-1", ldvalue.OptionalString{},
		makeAbstractRequest(t, "GET", "https://api.example.com/ping"))
	assert.NoError(t, err)
	assert.Nil(t, resp)
}

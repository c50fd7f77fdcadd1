package relayserver

import (
	"net/http"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/handlers"
)

func makeTestServer(initial ...handlers.Handler) *Server {
	registry := boundary.NewRegistry()
	return New(registry, boundary.NewResolver(registry, initial), ldlog.NewDisabledLoggers())
}

func TestListenIsIdempotent(t *testing.T) {
	s := makeTestServer()
	defer s.Close()

	url1, err := s.Listen()
	require.NoError(t, err)
	url2, err := s.Listen()
	require.NoError(t, err)
	assert.Equal(t, url1, url2)
}

func TestURLBeforeListen(t *testing.T) {
	s := makeTestServer()

	_, err := s.URL()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestURLAfterListen(t *testing.T) {
	s := makeTestServer()
	defer s.Close()

	listenURL, err := s.Listen()
	require.NoError(t, err)

	gotURL, err := s.URL()
	require.NoError(t, err)
	assert.Equal(t, listenURL, gotURL)

	resp, err := http.Get(listenURL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCloseThenListenYieldsNewAddress(t *testing.T) {
	s := makeTestServer()
	defer s.Close()

	url1, err := s.Listen()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.URL()
	assert.ErrorIs(t, err, ErrNotInitialized)

	url2, err := s.Listen()
	require.NoError(t, err)
	assert.NotEqual(t, url1, url2)
}

func TestCloseIsIdempotentAndClearsRegistry(t *testing.T) {
	registry := boundary.NewRegistry()
	s := New(registry, boundary.NewResolver(registry, nil), ldlog.NewDisabledLoggers())

	_, err := s.Listen()
	require.NoError(t, err)

	require.NoError(t, registry.Register(boundary.NewContext("http://127.0.0.1:1", nil)))
	require.Equal(t, 1, registry.Count())

	require.NoError(t, s.Close())
	assert.Equal(t, 0, registry.Count())

	require.NoError(t, s.Close()) // second close is a no-op
}

func TestAcquireReturnsSameServer(t *testing.T) {
	t.Cleanup(func() { _ = Release() })

	factoryCalls := 0
	factory := func() *Server {
		factoryCalls++
		return makeTestServer()
	}

	s1, url1, err := Acquire(factory)
	require.NoError(t, err)
	s2, url2, err := Acquire(factory)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, url1, url2)
	assert.Equal(t, 1, factoryCalls)
}

func TestReleaseAllowsReacquire(t *testing.T) {
	t.Cleanup(func() { _ = Release() })

	s1, url1, err := Acquire(func() *Server { return makeTestServer() })
	require.NoError(t, err)
	require.NoError(t, Release())
	require.NoError(t, Release()) // idempotent

	s2, url2, err := Acquire(func() *Server { return makeTestServer() })
	require.NoError(t, err)

	assert.NotSame(t, s1, s2)
	assert.NotEqual(t, url1, url2)
}

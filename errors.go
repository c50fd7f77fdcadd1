package relay

import (
	"github.com/netmock/relay/internal/relayclient"
	"github.com/netmock/relay/internal/relayserver"
)

// Errors returned by the public API. The underlying packages define them; they
// are re-exported here so callers only need this package.
var (
	// ErrNotInitialized means URL or NewBoundary was called before Listen.
	ErrNotInitialized = relayserver.ErrNotInitialized

	// ErrNotConnected means Client.Relay was called before Connect succeeded.
	ErrNotConnected = relayclient.ErrNotConnected

	// ErrConnectionFailed means Connect gave up after the configured attempts.
	ErrConnectionFailed = relayclient.ErrConnectionFailed
)

package relayclient

import "errors"

var (
	// ErrNotConnected means a request was dispatched before Connect succeeded.
	ErrNotConnected = errors.New("relay client is not connected; call Connect first")

	// ErrConnectionFailed means the relay server could not be reached within
	// the configured attempt limit.
	ErrConnectionFailed = errors.New("unable to reach the relay server")
)

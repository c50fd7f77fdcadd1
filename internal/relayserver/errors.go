package relayserver

import "errors"

var (
	// ErrNotInitialized means the server address was requested before Listen.
	ErrNotInitialized = errors.New("the relay server has not been started")
)

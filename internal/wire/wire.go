// Package wire defines the loopback relay protocol shared by the relay server
// and the relay client: the header keys that mark and describe forwarded
// requests, the reserved paths, and the encode/decode helpers for moving the
// abstract request and response forms over HTTP.
package wire

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const (
	// RequestIDHeader carries the opaque correlation ID of a forwarded request.
	RequestIDHeader = "X-Netmock-Request-Id"

	// RequestURLHeader carries the absolute URL of the original intercepted
	// request. The forwarded request itself targets the relay server, so the
	// original destination has to travel out of band.
	RequestURLHeader = "X-Netmock-Request-Url"

	// BoundaryIDHeader optionally selects a boundary's isolated handler set.
	// When absent, the process-wide default set applies.
	BoundaryIDHeader = "X-Netmock-Boundary-Id"

	// AcceptHeader marks relay traffic. Forwarded requests may use any path and
	// method, so this marker, not the path, is what distinguishes them from
	// other traffic sharing the port.
	AcceptHeader = "X-Netmock-Accept"

	// AcceptValue is the required value of AcceptHeader.
	AcceptValue = "intercept"

	// UnhandledHeader marks a relay response that means "no handler matched",
	// so that a handler-synthesized 404 stays distinguishable from one.
	UnhandledHeader = "X-Netmock-Unhandled"

	// UnhandledValue is the value of UnhandledHeader on unhandled responses.
	UnhandledValue = "true"

	// LifeCycleEventsPath is the reserved path for life-cycle event ingestion.
	LifeCycleEventsPath = "/life-cycle-events"
)

var (
	// ErrMissingRequestID means a forwarded request omitted RequestIDHeader.
	ErrMissingRequestID = errors.New("forwarded request is missing the " + RequestIDHeader + " header")

	// ErrMissingRequestURL means a forwarded request omitted RequestURLHeader.
	ErrMissingRequestURL = errors.New("forwarded request is missing the " + RequestURLHeader + " header")
)

func errInvalidRequestURL(raw string, err error) error {
	return fmt.Errorf("forwarded request URL %q is not a valid absolute URL: %w", raw, err)
}

// ForwardedInfo is the set of wire attributes stamped onto every forwarded
// request.
type ForwardedInfo struct {
	// RequestID correlates logs and telemetry for one forwarded request.
	RequestID string

	// RequestURL is the absolute URL of the original intercepted request.
	RequestURL *url.URL

	// BoundaryID selects a boundary's handler set, if defined.
	BoundaryID ldvalue.OptionalString
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errInvalidRequestURL(raw, err)
	}
	if !u.IsAbs() {
		return nil, errInvalidRequestURL(raw, errors.New("URL is relative"))
	}
	return u, nil
}

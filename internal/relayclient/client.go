// Package relayclient implements the sending side of the relay wire protocol:
// it probes the relay server until it answers, then forwards intercepted
// requests and decodes the synthesized responses.
package relayclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jpillora/backoff"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/netmock/relay/config"
	"github.com/netmock/relay/handlers"
	"github.com/netmock/relay/internal/wire"
)

// Client talks to one relay server over its loopback URL. It is safe for
// concurrent use once Connect has succeeded.
type Client struct {
	serverURL  string
	config     config.ClientConfig
	loggers    ldlog.Loggers
	httpClient *http.Client

	lock      sync.Mutex
	connected bool
}

// NewClient creates a Client for the relay server at serverURL. The client is
// unusable until Connect succeeds.
func NewClient(serverURL string, clientConfig config.ClientConfig, loggers ldlog.Loggers) *Client {
	loggers.SetPrefix("[RelayClient]")
	return &Client{
		serverURL: serverURL,
		config:    clientConfig,
		loggers:   loggers,
		// one keep-alive transport shared by the probe and all forwarded requests
		httpClient: &http.Client{
			Timeout: clientConfig.RequestTimeoutOrDefault(),
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Connect probes the relay server's handshake endpoint until it answers,
// retrying on a fixed delay up to the configured attempt limit. Exhausting the
// limit returns ErrConnectionFailed. Calling Connect on an already-connected
// client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.lock.Lock()
	if c.connected {
		c.lock.Unlock()
		return nil
	}
	c.lock.Unlock()

	delay := c.config.RetryDelayOrDefault()
	b := &backoff.Backoff{
		Min:    delay,
		Max:    delay,
		Jitter: false,
	}
	maxAttempts := c.config.MaxConnectAttemptsOrDefault()

	var lastErr error
	for int(b.Attempt()) < maxAttempts {
		if err := c.probe(ctx); err == nil {
			c.lock.Lock()
			c.connected = true
			c.lock.Unlock()
			c.loggers.Debugf("Connected to relay server at %s", c.serverURL)
			return nil
		} else {
			lastErr = err
		}

		wait := b.Duration()
		if int(b.Attempt()) >= maxAttempts {
			break
		}
		c.loggers.Debugf("Relay server not answering, retrying in %s", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w at %s after %d attempts: %v",
		ErrConnectionFailed, c.serverURL, maxAttempts, lastErr)
}

func (c *Client) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeoutOrDefault())
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, "HEAD", c.serverURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("handshake answered %d", resp.StatusCode)
	}
	return nil
}

// Connected reports whether Connect has succeeded.
func (c *Client) Connected() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.connected
}

// HandleRequest forwards one intercepted request to the relay server and
// returns the synthesized response. A nil response with a nil error means no
// handler claimed the request; the caller should let the original request
// proceed. Transport failures are treated the same way, after logging, so that
// a dying relay degrades to pass-through rather than breaking the
// intercepting process.
func (c *Client) HandleRequest(ctx context.Context, requestID string,
	boundaryID ldvalue.OptionalString, req *handlers.Request) (*handlers.Response, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	info := wire.ForwardedInfo{
		RequestID:  requestID,
		RequestURL: req.URL,
		BoundaryID: boundaryID,
	}
	httpReq, err := wire.EncodeRequest(c.serverURL, info, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq.WithContext(ctx))
	if err != nil {
		c.loggers.Warnf("Request %s could not be forwarded: %s", requestID, err)
		return nil, nil
	}
	defer func() { _ = httpResp.Body.Close() }()

	if wire.IsUnhandledResponse(httpResp) {
		return nil, nil
	}
	return wire.DecodeResponse(httpResp)
}

// SendLifeCycleEvent posts a life-cycle notification to the relay server.
// Failures are logged and swallowed; events are advisory.
func (c *Client) SendLifeCycleEvent(ctx context.Context, payload []byte) {
	if !c.Connected() {
		return
	}
	req, err := http.NewRequestWithContext(ctx, "POST",
		c.serverURL+wire.LifeCycleEventsPath, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.loggers.Debugf("Life-cycle event not delivered: %s", err)
		return
	}
	_ = resp.Body.Close()
}

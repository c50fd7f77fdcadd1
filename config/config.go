// Package config defines the relay's configuration parameters and the logic
// for loading them from a file or from environment variables.
package config

import (
	"time"

	ct "github.com/launchdarkly/go-configtypes"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

const (
	// DefaultConnectTimeout is how long the relay client waits for one
	// handshake probe before treating it as failed.
	DefaultConnectTimeout = time.Second

	// DefaultRetryDelay is how long the relay client waits between failed
	// handshake probes.
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxConnectAttempts is how many handshake probes the relay client
	// makes before giving up.
	DefaultMaxConnectAttempts = 5

	// DefaultRequestTimeout bounds one forwarded request's round trip.
	DefaultRequestTimeout = 10 * time.Second
)

// Config describes the configuration for a relay instance.
//
// When configuring the relay programmatically, start from DefaultConfig and
// change only the fields you need.
type Config struct {
	Main   MainConfig
	Client ClientConfig
	Server ServerConfig
}

// MainConfig contains global options. This corresponds to the [Main] section
// in the configuration file.
type MainConfig struct {
	LogLevel OptLogLevel `conf:"LOG_LEVEL"`
}

// ClientConfig contains the relay client's connection parameters. This
// corresponds to the [Client] section in the configuration file.
type ClientConfig struct {
	ConnectTimeout     ct.OptDuration           `conf:"CONNECT_TIMEOUT"`
	RetryDelay         ct.OptDuration           `conf:"RETRY_DELAY"`
	MaxConnectAttempts ct.OptIntGreaterThanZero `conf:"MAX_CONNECT_ATTEMPTS"`
	RequestTimeout     ct.OptDuration           `conf:"REQUEST_TIMEOUT"`
}

// ServerConfig contains the relay server's options. This corresponds to the
// [Server] section in the configuration file.
type ServerConfig struct {
	// RoutesFile optionally names a JSON file defining the default mock routes.
	// The relay watches the file and reloads it on change.
	RoutesFile string `conf:"ROUTES_FILE"`
}

// DefaultConfig is the configuration that applies when no file, environment
// variables, or programmatic settings override it.
var DefaultConfig = Config{}

// ValidateConfig applies defaults and verifies that the configuration is
// usable. Call this after loading a Config by any means.
func ValidateConfig(c *Config, loggers ldlog.Loggers) error {
	if c.Main.LogLevel.IsDefined() {
		loggers.SetMinLevel(c.Main.LogLevel.GetOrElse(ldlog.Info))
	}
	return nil
}

// ConnectTimeoutOrDefault returns the configured connect timeout or the default.
func (c ClientConfig) ConnectTimeoutOrDefault() time.Duration {
	return c.ConnectTimeout.GetOrElse(DefaultConnectTimeout)
}

// RetryDelayOrDefault returns the configured retry delay or the default.
func (c ClientConfig) RetryDelayOrDefault() time.Duration {
	return c.RetryDelay.GetOrElse(DefaultRetryDelay)
}

// MaxConnectAttemptsOrDefault returns the configured attempt limit or the default.
func (c ClientConfig) MaxConnectAttemptsOrDefault() int {
	return c.MaxConnectAttempts.GetOrElse(DefaultMaxConnectAttempts)
}

// RequestTimeoutOrDefault returns the configured request timeout or the default.
func (c ClientConfig) RequestTimeoutOrDefault() time.Duration {
	return c.RequestTimeout.GetOrElse(DefaultRequestTimeout)
}

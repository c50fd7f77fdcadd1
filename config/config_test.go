package config

import (
	"os"
	"testing"
	"time"

	helpers "github.com/launchdarkly/go-test-helpers/v3"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsApplyWhenNothingIsConfigured(t *testing.T) {
	c := DefaultConfig
	require.NoError(t, ValidateConfig(&c, ldlog.NewDisabledLoggers()))

	assert.Equal(t, time.Second, c.Client.ConnectTimeoutOrDefault())
	assert.Equal(t, 500*time.Millisecond, c.Client.RetryDelayOrDefault())
	assert.Equal(t, 5, c.Client.MaxConnectAttemptsOrDefault())
	assert.Equal(t, 10*time.Second, c.Client.RequestTimeoutOrDefault())
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		helpers.WithTempFile(func(filename string) {
			require.NoError(t, os.WriteFile(filename, []byte(`
[Main]
LogLevel = "debug"

[Client]
ConnectTimeout = 2s
RetryDelay = 250ms
MaxConnectAttempts = 3

[Server]
RoutesFile = "/tmp/routes.json"
`), 0600))

			var c Config
			mockLog := ldlogtest.NewMockLog()
			require.NoError(t, LoadConfigFile(&c, filename, mockLog.Loggers))

			assert.Equal(t, ldlog.Debug, c.Main.LogLevel.GetOrElse(ldlog.Info))
			assert.Equal(t, 2*time.Second, c.Client.ConnectTimeoutOrDefault())
			assert.Equal(t, 250*time.Millisecond, c.Client.RetryDelayOrDefault())
			assert.Equal(t, 3, c.Client.MaxConnectAttemptsOrDefault())
			assert.Equal(t, "/tmp/routes.json", c.Server.RoutesFile)
			assert.Equal(t, ldlog.Debug, mockLog.Loggers.GetMinLevel())
		})
	})

	t.Run("missing file", func(t *testing.T) {
		var c Config
		err := LoadConfigFile(&c, "/no/such/file", ldlog.NewDisabledLoggers())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read configuration file")
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		helpers.WithTempFile(func(filename string) {
			require.NoError(t, os.WriteFile(filename, []byte(`
[Main]
LogLevel = "wrong"
`), 0600))

			var c Config
			err := LoadConfigFile(&c, filename, ldlog.NewDisabledLoggers())
			require.Error(t, err)
			assert.Contains(t, err.Error(), `"wrong" is not a valid log level`)
		})
	})

	t.Run("rejects unknown section", func(t *testing.T) {
		helpers.WithTempFile(func(filename string) {
			require.NoError(t, os.WriteFile(filename, []byte(`
[Nonsense]
Thing = 1
`), 0600))

			var c Config
			err := LoadConfigFile(&c, filename, ldlog.NewDisabledLoggers())
			require.Error(t, err)
		})
	})
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CONNECT_TIMEOUT", "3s")
	t.Setenv("MAX_CONNECT_ATTEMPTS", "7")
	t.Setenv("ROUTES_FILE", "/tmp/r.json")

	var c Config
	mockLog := ldlogtest.NewMockLog()
	require.NoError(t, LoadConfigFromEnvironment(&c, mockLog.Loggers))

	assert.Equal(t, ldlog.Warn, c.Main.LogLevel.GetOrElse(ldlog.Info))
	assert.Equal(t, 3*time.Second, c.Client.ConnectTimeoutOrDefault())
	assert.Equal(t, 7, c.Client.MaxConnectAttemptsOrDefault())
	assert.Equal(t, "/tmp/r.json", c.Server.RoutesFile)
}

func TestLoadConfigFromEnvironmentRejectsBadValue(t *testing.T) {
	t.Setenv("MAX_CONNECT_ATTEMPTS", "zero")

	var c Config
	err := LoadConfigFromEnvironment(&c, ldlog.NewDisabledLoggers())
	require.Error(t, err)
}

func TestOptLogLevel(t *testing.T) {
	t.Run("empty string is undefined", func(t *testing.T) {
		opt, err := NewOptLogLevelFromString("")
		require.NoError(t, err)
		assert.False(t, opt.IsDefined())
		assert.Equal(t, ldlog.Info, opt.GetOrElse(ldlog.Info))
	})

	t.Run("parses level names case-insensitively", func(t *testing.T) {
		for name, expected := range map[string]ldlog.LogLevel{
			"debug":   ldlog.Debug,
			"INFO":    ldlog.Info,
			"Warn":    ldlog.Warn,
			"warning": ldlog.Warn,
			"error":   ldlog.Error,
		} {
			opt, err := NewOptLogLevelFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, expected, opt.GetOrElse(ldlog.None), name)
		}
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := NewOptLogLevelFromString("chatty")
		assert.Error(t, err)
	})
}

package application

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/netmock/relay/config"
)

// LoadConfig builds the daemon configuration from the sources the options
// select: the file first, then environment variables on top, then any
// command-line overrides.
func LoadConfig(o Options, loggers ldlog.Loggers) (config.Config, error) {
	c := config.DefaultConfig

	if o.ConfigFile != "" {
		if err := config.LoadConfigFile(&c, o.ConfigFile, loggers); err != nil {
			return c, err
		}
	}
	if o.UseEnvironment {
		if err := config.LoadConfigFromEnvironment(&c, loggers); err != nil {
			return c, err
		}
	}
	if o.RoutesFile != "" {
		c.Server.RoutesFile = o.RoutesFile
	}
	if err := config.ValidateConfig(&c, loggers); err != nil {
		return c, err
	}
	return c, nil
}

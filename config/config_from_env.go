package config

import (
	ct "github.com/launchdarkly/go-configtypes"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// LoadConfigFromEnvironment sets parameters in a Config struct from
// environment variables, using the names in the struct's "conf" tags.
//
// The Config parameter should be initialized with default values first.
func LoadConfigFromEnvironment(c *Config, loggers ldlog.Loggers) error {
	reader := ct.NewVarReaderFromEnvironment()

	reader.ReadStruct(&c.Main, false)
	reader.ReadStruct(&c.Client, false)
	reader.ReadStruct(&c.Server, false)

	if err := reader.Result().GetError(); err != nil {
		return err
	}
	return ValidateConfig(c, loggers)
}

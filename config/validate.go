package config

import "github.com/Luna88k/msbuild/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Workers: 0 = all CPUs, negative = invalid
	if c.Generate.Workers < 0 {
		return errors.Newf("generate.workers must be >= 0, got %d", c.Generate.Workers)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	for _, attr := range c.Filter.ExcludeAttributes {
		if attr == "" {
			return errors.New("filter.exclude_attributes cannot contain empty names")
		}
	}
	return nil
}

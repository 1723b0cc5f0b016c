package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Luna88k/msbuild/errors"
)

// Load reads the configuration. When path is empty, genapi.toml is searched
// for from the working directory upwards; a missing file is not an error.
// The returned string is the file that was read, or "".
func Load(path string) (*Config, string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to get working directory")
		}
		path = FindConfig(wd)
	} else if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		return nil, "", errors.Wrapf(err, "failed to stat config file %s", path)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", path),
				"run 'genapi config init' to write a fresh genapi.toml")
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to unmarshal config from %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", errors.WithDetailf(err, "config: %s", path)
	}
	return cfg, path, nil
}

// LoadFromFile loads configuration from a specific file path without
// environment overrides.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", path)
	}
	return cfg, nil
}

// FindConfig searches for genapi.toml from dir up to the filesystem root
// and returns its path, or "" if none exists.
func FindConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// newViper returns a viper instance with defaults and environment binding
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

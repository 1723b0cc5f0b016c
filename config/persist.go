package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Luna88k/msbuild/errors"
)

// DefaultFilePermissions for written config files
const DefaultFilePermissions = 0o644

// WriteDefault writes the default configuration to path. An existing file
// is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(errors.Newf("%s already exists", path),
				"pass --force to overwrite it")
		}
	}
	return Save(path, Default())
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create config directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config to %s", path)
	}
	return nil
}

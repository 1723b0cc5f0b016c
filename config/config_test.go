package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luna88k/msbuild/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.Filter.IncludeInternals)
	assert.Equal(t, []string{"System.Runtime.CompilerServices.CompilerGeneratedAttribute"}, cfg.Filter.ExcludeAttributes)
	assert.Equal(t, 0, cfg.Generate.Workers)
	assert.True(t, cfg.Generate.Header)
	assert.Empty(t, cfg.Output.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[filter]
include_internals = true
exclude_api_list = "api/exclude.txt"

[generate]
workers = 4
continue_on_error = true

[output]
path = "ref/Contoso.Widgets.cs"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Filter.IncludeInternals)
	assert.Equal(t, "api/exclude.txt", cfg.Filter.ExcludeAPIList)
	assert.Equal(t, 4, cfg.Generate.Workers)
	assert.True(t, cfg.Generate.ContinueOnError)
	assert.True(t, cfg.Generate.Header, "unset keys keep their defaults")
	assert.Equal(t, "ref/Contoso.Widgets.cs", cfg.Output.Path)
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("[generate]\nworkers = 3\n"), 0o644))
	nested := filepath.Join(root, "src", "widgets")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Generate.Workers)
	assert.Equal(t, filepath.Join(root, FileName), used)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[generate]\nworkers = 3\n"), 0o644))
	t.Setenv("GENAPI_GENERATE_WORKERS", "7")
	t.Setenv("GENAPI_OUTPUT_PATH", "out.cs")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Generate.Workers)
	assert.Equal(t, "out.cs", cfg.Output.Path)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[generate]\nworkers = -1\n"), 0o644))
	_, _, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate.workers")
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", FileName)

	require.NoError(t, WriteDefault(path, false))
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path, false)
	require.Error(t, err, "existing files are not overwritten")
	assert.NoError(t, WriteDefault(path, true))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Generate.Workers = -2 }},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }},
		{"empty attribute", func(c *Config) { c.Filter.ExcludeAttributes = []string{""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

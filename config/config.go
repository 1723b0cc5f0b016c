// Package config loads genapi settings from genapi.toml, GENAPI_*
// environment variables and built-in defaults, in increasing precedence
// order: defaults < file < environment.
package config

// Config is the complete genapi configuration.
type Config struct {
	Filter   FilterConfig   `mapstructure:"filter" toml:"filter" yaml:"filter" json:"filter"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// FilterConfig selects which symbols appear in the surface.
type FilterConfig struct {
	// IncludeInternals also emits internal and private protected symbols
	IncludeInternals bool `mapstructure:"include_internals" toml:"include_internals" yaml:"include_internals" json:"include_internals"`

	// ExcludeAttributes drops symbols carrying any of these attribute types
	ExcludeAttributes []string `mapstructure:"exclude_attributes" toml:"exclude_attributes" yaml:"exclude_attributes" json:"exclude_attributes"`

	// ExcludeAPIList is a file of documentation IDs to drop (one per line)
	ExcludeAPIList string `mapstructure:"exclude_api_list" toml:"exclude_api_list" yaml:"exclude_api_list" json:"exclude_api_list"`
}

// GenerateConfig tunes the traversal.
type GenerateConfig struct {
	// Workers bounds parallel synthesis; 0 uses every CPU
	Workers int `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`

	// ContinueOnError skips symbols that cannot be declared
	ContinueOnError bool `mapstructure:"continue_on_error" toml:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`

	// Header writes the "// Assembly:" line at the top of the output
	Header bool `mapstructure:"header" toml:"header" yaml:"header" json:"header"`

	// VersionConstraint rejects manifests whose version does not match
	// (e.g. ">= 2.0")
	VersionConstraint string `mapstructure:"version_constraint" toml:"version_constraint" yaml:"version_constraint" json:"version_constraint"`
}

// OutputConfig controls where the surface is written.
type OutputConfig struct {
	// Path of the generated file; empty writes to stdout
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"`
}

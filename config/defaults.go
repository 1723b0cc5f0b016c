package config

import "github.com/spf13/viper"

// FileName is the configuration file searched for by Load.
const FileName = "genapi.toml"

// EnvPrefix prefixes environment overrides (GENAPI_GENERATE_WORKERS).
const EnvPrefix = "GENAPI"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Filter defaults
	v.SetDefault("filter.include_internals", false)
	v.SetDefault("filter.exclude_attributes", []string{
		"System.Runtime.CompilerServices.CompilerGeneratedAttribute",
	})
	v.SetDefault("filter.exclude_api_list", "")

	// Generate defaults
	v.SetDefault("generate.workers", 0) // All CPUs
	v.SetDefault("generate.continue_on_error", false)
	v.SetDefault("generate.header", true)
	v.SetDefault("generate.version_constraint", "")

	// Output defaults
	v.SetDefault("output.path", "") // stdout

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		// defaults are static
		panic(err)
	}
	return cfg
}

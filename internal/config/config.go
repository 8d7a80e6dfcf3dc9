package config

import "fmt"

// Config represents the application configuration
type Config struct {
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Completion CompletionConfig `mapstructure:"completion" yaml:"completion"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// CompletionConfig controls filesystem completion of loaded manifests
type CompletionConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	GitRev  string `mapstructure:"git_rev" yaml:"git_rev"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "toml", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want toml, json, or yaml)", c.Output.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = DefaultLogLevel
	}
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

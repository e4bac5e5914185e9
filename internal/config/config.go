// Package config loads and validates intl-extract configuration from
// file, environment, and defaults.
package config

// Config is the complete intl-extract configuration. It can be loaded
// from .intl-extract/config.yml with environment variable overrides.
type Config struct {
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
}

// ExtractConfig holds the extraction policy options.
type ExtractConfig struct {
	MessagesDir           string `yaml:"messages_dir" mapstructure:"messages_dir"`                       // output dir for JSON catalogs; empty disables emission
	ExtractSourceLocation bool   `yaml:"extract_source_location" mapstructure:"extract_source_location"` // attach file/start/end to descriptors
	EnforceDescriptions   bool   `yaml:"enforce_descriptions" mapstructure:"enforce_descriptions"`       // require a non-empty description per message
}

// PathsConfig defines which files to extract from and which to ignore.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			MessagesDir:           "",
			ExtractSourceLocation: false,
			EnforceDescriptions:   false,
		},
		Paths: PathsConfig{
			Source: []string{
				"**/*.js",
				"**/*.jsx",
				"**/*.ts",
				"**/*.tsx",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				"coverage/**",
				".git/**",
				"**/*.d.ts",
			},
		},
	}
}

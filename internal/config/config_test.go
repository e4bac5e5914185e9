package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for configuration loading:
// - Defaults apply when no config file exists
// - .intl-extract/config.yml values override defaults
// - Environment variables override file values
// - Validation rejects empty and malformed glob patterns

func writeConfigFile(t *testing.T, rootDir, content string) {
	t.Helper()
	configDir := filepath.Join(rootDir, ".intl-extract")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Extract.MessagesDir)
	assert.False(t, cfg.Extract.ExtractSourceLocation)
	assert.False(t, cfg.Extract.EnforceDescriptions)
	assert.Contains(t, cfg.Paths.Source, "**/*.jsx")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `
extract:
  messages_dir: build/messages
  extract_source_location: true
  enforce_descriptions: true
paths:
  source:
    - "app/**/*.jsx"
  ignore:
    - "app/vendor/**"
`)

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, "build/messages", cfg.Extract.MessagesDir)
	assert.True(t, cfg.Extract.ExtractSourceLocation)
	assert.True(t, cfg.Extract.EnforceDescriptions)
	assert.Equal(t, []string{"app/**/*.jsx"}, cfg.Paths.Source)
	assert.Equal(t, []string{"app/vendor/**"}, cfg.Paths.Ignore)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `
extract:
  messages_dir: from-file
`)
	t.Setenv("INTL_EXTRACT_EXTRACT_MESSAGES_DIR", "from-env")
	t.Setenv("INTL_EXTRACT_EXTRACT_ENFORCE_DESCRIPTIONS", "true")

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Extract.MessagesDir)
	assert.True(t, cfg.Extract.EnforceDescriptions)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, "extract: [not: a: mapping\n")

	_, err := LoadConfigFromDir(rootDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"defaults are valid",
			func(*Config) {},
			"",
		},
		{
			"empty source patterns",
			func(c *Config) { c.Paths.Source = nil },
			"paths.source must contain at least one pattern",
		},
		{
			"invalid source pattern",
			func(c *Config) { c.Paths.Source = []string{"[bad"} },
			"paths.source pattern",
		},
		{
			"invalid ignore pattern",
			func(c *Config) { c.Paths.Ignore = append(c.Paths.Ignore, "[bad") },
			"paths.ignore pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .viperstate/config.yml and .viperstate/config.yaml
// - Load() merges a partial config file with defaults
// - Environment variables override config file values and defaults
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects each invalid field and reports all of them at once

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	tempDir := t.TempDir()
	dir := filepath.Join(tempDir, DirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	return tempDir
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, 120, cfg.Output.MaxWidth)
	assert.Equal(t, []string{"*"}, cfg.Filter.Include)
	assert.Empty(t, cfg.Filter.Exclude)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 1024, cfg.Cache.Capacity)
	assert.Equal(t, "viperstate", cfg.MCP.Name)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	expected := Default()
	assert.Equal(t, expected.Output, cfg.Output)
	assert.Equal(t, expected.Filter.Include, cfg.Filter.Include)
	assert.Empty(t, cfg.Filter.Exclude)
	assert.Equal(t, expected.Watch, cfg.Watch)
	assert.Equal(t, expected.Cache, cfg.Cache)
	assert.Equal(t, expected.MCP, cfg.MCP)
}

func TestLoadConfig_LoadsFromConfigFile(t *testing.T) {
	t.Parallel()

	content := `
output:
  format: json
  max_width: 0
filter:
  include: ["val", "next"]
  exclude: ["wand"]
watch:
  debounce: 1s
cache:
  capacity: 16
mcp:
  name: verifier-states
`

	for _, name := range []string{"config.yml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewLoader(writeConfig(t, name, content)).Load()
			require.NoError(t, err)

			assert.Equal(t, FormatJSON, cfg.Output.Format)
			assert.Equal(t, 0, cfg.Output.MaxWidth)
			assert.Equal(t, []string{"val", "next"}, cfg.Filter.Include)
			assert.Equal(t, []string{"wand"}, cfg.Filter.Exclude)
			assert.Equal(t, time.Second, cfg.Watch.Debounce)
			assert.Equal(t, 16, cfg.Cache.Capacity)
			assert.Equal(t, "verifier-states", cfg.MCP.Name)
		})
	}
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(writeConfig(t, "config.yml", "output:\n  format: yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, 120, cfg.Output.MaxWidth)
	assert.Equal(t, 1024, cfg.Cache.Capacity)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	dir := writeConfig(t, "config.yml", "output:\n  format: yaml\n  max_width: 80\ncache:\n  capacity: 8\n")

	t.Setenv("VIPERSTATE_OUTPUT_FORMAT", "json")
	t.Setenv("VIPERSTATE_CACHE_CAPACITY", "64")
	t.Setenv("VIPERSTATE_WATCH_DEBOUNCE", "2s")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)

	// Not overridden, comes from the file.
	assert.Equal(t, 80, cfg.Output.MaxWidth)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("VIPERSTATE_MCP_NAME", "from-env")
	t.Setenv("VIPERSTATE_OUTPUT_MAX_WIDTH", "40")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.MCP.Name)
	assert.Equal(t, 40, cfg.Output.MaxWidth)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(writeConfig(t, "config.yml", "output: [unclosed\n")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(writeConfig(t, "config.yml", "output:\n  format: xml\n")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"uppercase format accepted", func(c *Config) { c.Output.Format = "JSON" }, nil},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, ErrInvalidFormat},
		{"negative width", func(c *Config) { c.Output.MaxWidth = -1 }, ErrInvalidWidth},
		{"bad include", func(c *Config) { c.Filter.Include = []string{"[oops"} }, ErrInvalidPattern},
		{"bad exclude", func(c *Config) { c.Filter.Exclude = []string{"{a,b"} }, ErrInvalidPattern},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = 0 }, ErrInvalidDebounce},
		{"zero capacity", func(c *Config) { c.Cache.Capacity = 0 }, ErrInvalidCapacity},
		{"blank name", func(c *Config) { c.MCP.Name = "  " }, ErrEmptyServerName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.Format = "xml"
	cfg.Output.MaxWidth = -5
	cfg.Cache.Capacity = -1

	err := Validate(cfg)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	assert.Contains(t, err.Error(), "validation failed:\n  - ")

	var group validationErrors
	require.True(t, errors.As(err, &group))
	assert.Len(t, group, 3)
}

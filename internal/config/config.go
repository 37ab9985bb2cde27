// Package config loads viperstate settings.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (VIPERSTATE_*)
//  2. Project config (.viperstate/config.yml)
//  3. Built-in defaults
//
// Nested keys map to environment variables with underscores, e.g.
// output.max_width is read from VIPERSTATE_OUTPUT_MAX_WIDTH.
package config

import "time"

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete viperstate configuration.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	MCP    MCPConfig    `yaml:"mcp" mapstructure:"mcp"`
}

// OutputConfig controls how parsed values are rendered.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`       // "text", "json" or "yaml"
	MaxWidth int    `yaml:"max_width" mapstructure:"max_width"` // display columns per text line, 0 = unlimited
}

// FilterConfig selects which heap chunks are shown, by resource name.
type FilterConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // glob patterns, win over include
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// CacheConfig bounds the parse cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   FormatText,
			MaxWidth: 120,
		},
		Filter: FilterConfig{
			Include: []string{"*"},
			Exclude: []string{},
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Cache: CacheConfig{
			Capacity: 1024,
		},
		MCP: MCPConfig{
			Name: "viperstate",
		},
	}
}

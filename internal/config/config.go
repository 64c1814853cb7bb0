package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the fluentgen configuration.
type Config struct {
	Types      TypesConfig      `json:"types"`
	Resolution ResolutionConfig `json:"resolution,omitempty"`
	Output     OutputConfig     `json:"output"`

	// SourceRoot is the directory globs are evaluated against (default "src").
	SourceRoot string `json:"sourceRoot,omitempty"`
}

// TypesConfig specifies which declarations to resolve.
type TypesConfig struct {
	Include []string `json:"include"`           // Glob patterns for source files (e.g., ["src/**/*.model.ts"])
	Exclude []string `json:"exclude,omitempty"` // Type name patterns to skip (e.g., "Internal*")
}

// ResolutionConfig tunes the resolver's depth guards and diagnostics.
// Zero values mean "use the resolver defaults".
type ResolutionConfig struct {
	MaxDepth            int  `json:"maxDepth,omitempty"`
	MaxConditionalDepth int  `json:"maxConditionalDepth,omitempty"`
	MaxUtilityDepth     int  `json:"maxUtilityDepth,omitempty"`
	Strict              bool `json:"strict,omitempty"` // warnings become errors
	Quiet               bool `json:"quiet,omitempty"`  // suppress warnings
}

// OutputConfig specifies where and how resolved type trees are written.
type OutputConfig struct {
	Path          string `json:"path"`
	BuilderSuffix string `json:"builderSuffix,omitempty"` // default "Builder"
	Pretty        bool   `json:"pretty,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Types: TypesConfig{
			Include: []string{"src/**/*.ts"},
		},
		Output: OutputConfig{
			Path:          "dist/types.json",
			BuilderSuffix: "Builder",
			Pretty:        true,
		},
		SourceRoot: "src",
	}
}

// Load reads and parses a fluentgen config file. JSON format only.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if len(c.Types.Include) == 0 {
		return fmt.Errorf("types.include must have at least one pattern")
	}

	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}

	ext := filepath.Ext(c.Output.Path)
	if ext != ".json" {
		return fmt.Errorf("output.path must have a .json extension, got %q", ext)
	}

	if c.Resolution.MaxDepth < 0 {
		return fmt.Errorf("resolution.maxDepth must not be negative, got %d", c.Resolution.MaxDepth)
	}
	if c.Resolution.MaxConditionalDepth < 0 {
		return fmt.Errorf("resolution.maxConditionalDepth must not be negative, got %d", c.Resolution.MaxConditionalDepth)
	}
	if c.Resolution.MaxUtilityDepth < 0 {
		return fmt.Errorf("resolution.maxUtilityDepth must not be negative, got %d", c.Resolution.MaxUtilityDepth)
	}

	return nil
}

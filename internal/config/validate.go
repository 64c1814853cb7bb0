package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	// Types
	if len(c.Types.Include) == 0 {
		result.Errors = append(result.Errors, "types.include: at least one pattern required")
	}
	for _, pattern := range c.Types.Include {
		if !strings.Contains(pattern, "*") && !strings.HasSuffix(pattern, ".ts") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("types.include: pattern %q doesn't contain a wildcard or .ts extension — did you mean %q?", pattern, pattern+"/**/*.ts"))
		}
	}

	// Output — empty path means "print to stdout"
	if c.Output.Path != "" {
		ext := filepath.Ext(c.Output.Path)
		if ext != ".json" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("output.path: extension %q is unusual — expected .json", ext))
		}
	}
	if c.Output.BuilderSuffix != "" && strings.ContainsAny(c.Output.BuilderSuffix, " \t") {
		result.Errors = append(result.Errors,
			fmt.Sprintf("output.builderSuffix: %q must not contain whitespace", c.Output.BuilderSuffix))
	}

	// Resolution
	if c.Resolution.Strict && c.Resolution.Quiet {
		result.Warnings = append(result.Warnings,
			"resolution: strict and quiet are both set — quiet suppresses the warnings strict would promote")
	}
	if c.Resolution.MaxDepth > 0 && c.Resolution.MaxDepth < 5 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("resolution.maxDepth: %d is very low — deeply nested types will resolve to errors", c.Resolution.MaxDepth))
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

package config

import (
	"strings"
	"testing"
)

func TestValidateDetailedCleanConfig(t *testing.T) {
	cfg := DefaultConfig()
	result := cfg.ValidateDetailed()
	if !result.IsValid() {
		t.Fatalf("default config must be valid, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("default config must have no warnings, got %v", result.Warnings)
	}
}

func TestValidateDetailedMissingInclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Include = nil

	result := cfg.ValidateDetailed()
	if result.IsValid() {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(result.Errors[0], "types.include") {
		t.Errorf("expected types.include error, got %v", result.Errors)
	}
}

func TestValidateDetailedSuspiciousPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Include = []string{"src/models"}

	result := cfg.ValidateDetailed()
	if !result.IsValid() {
		t.Fatalf("a suspicious pattern is a warning, not an error: %v", result.Errors)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "src/models") {
		t.Errorf("expected pattern warning, got %v", result.Warnings)
	}
}

func TestValidateDetailedUnusualOutputExtension(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Path = "dist/types.txt"

	result := cfg.ValidateDetailed()
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], ".json") {
		t.Errorf("expected extension warning, got %v", result.Warnings)
	}
}

func TestValidateDetailedEmptyOutputMeansStdout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Path = ""

	result := cfg.ValidateDetailed()
	if !result.IsValid() {
		t.Fatalf("empty output path is valid here, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings for stdout output, got %v", result.Warnings)
	}
}

func TestValidateDetailedWhitespaceSuffix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.BuilderSuffix = "My Builder"

	result := cfg.ValidateDetailed()
	if result.IsValid() {
		t.Fatal("whitespace in the builder suffix must be an error")
	}
	if !strings.Contains(result.Errors[0], "builderSuffix") {
		t.Errorf("expected builderSuffix error, got %v", result.Errors)
	}
}

func TestValidateDetailedStrictAndQuiet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution.Strict = true
	cfg.Resolution.Quiet = true

	result := cfg.ValidateDetailed()
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "quiet") {
		t.Errorf("expected strict+quiet warning, got %v", result.Warnings)
	}
}

func TestValidateDetailedVeryLowMaxDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution.MaxDepth = 2

	result := cfg.ValidateDetailed()
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "maxDepth") {
		t.Errorf("expected low maxDepth warning, got %v", result.Warnings)
	}
}

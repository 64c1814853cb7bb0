package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Types.Include) != 1 || cfg.Types.Include[0] != "src/**/*.ts" {
		t.Fatalf("unexpected default include: %v", cfg.Types.Include)
	}
	if cfg.Output.Path != "dist/types.json" {
		t.Fatalf("unexpected default output path: %q", cfg.Output.Path)
	}
	if cfg.Output.BuilderSuffix != "Builder" {
		t.Fatalf("unexpected default builder suffix: %q", cfg.Output.BuilderSuffix)
	}
	if !cfg.Output.Pretty {
		t.Fatal("expected pretty output by default")
	}
	if cfg.SourceRoot != "src" {
		t.Fatalf("unexpected default source root: %q", cfg.SourceRoot)
	}
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fluentgen.config.json")
	content := `{
		"types": {
			"include": ["src/models/**/*.ts"],
			"exclude": ["Internal*"]
		},
		"resolution": {
			"maxDepth": 64,
			"strict": true
		},
		"output": {
			"path": "dist/api/types.json",
			"builderSuffix": "Factory"
		}
	}`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Types.Include) != 1 || cfg.Types.Include[0] != "src/models/**/*.ts" {
		t.Fatalf("unexpected include: %v", cfg.Types.Include)
	}
	if len(cfg.Types.Exclude) != 1 || cfg.Types.Exclude[0] != "Internal*" {
		t.Fatalf("unexpected exclude: %v", cfg.Types.Exclude)
	}
	if cfg.Resolution.MaxDepth != 64 {
		t.Errorf("expected maxDepth 64, got %d", cfg.Resolution.MaxDepth)
	}
	if !cfg.Resolution.Strict {
		t.Error("expected strict true")
	}
	if cfg.Output.Path != "dist/api/types.json" {
		t.Errorf("unexpected output path: %q", cfg.Output.Path)
	}
	if cfg.Output.BuilderSuffix != "Factory" {
		t.Errorf("unexpected builder suffix: %q", cfg.Output.BuilderSuffix)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fluentgen.config.json")
	content := `{
		"output": { "path": "out/types.json" }
	}`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Types.Include) != 1 || cfg.Types.Include[0] != "src/**/*.ts" {
		t.Fatalf("expected default include, got %v", cfg.Types.Include)
	}
	if cfg.Output.Path != "out/types.json" {
		t.Fatalf("expected overridden output path, got %q", cfg.Output.Path)
	}
	if cfg.Output.BuilderSuffix != "Builder" {
		t.Fatalf("expected default builder suffix kept, got %q", cfg.Output.BuilderSuffix)
	}
	if cfg.SourceRoot != "src" {
		t.Fatalf("expected default source root, got %q", cfg.SourceRoot)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/fluentgen.config.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fluentgen.config.json")
	if err := os.WriteFile(configPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestValidateEmptyInclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Include = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty include")
	}
}

func TestValidateEmptyOutputPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty output path")
	}
}

func TestValidateNonJSONOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Path = "dist/types.yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for non-json output")
	}
}

func TestValidateNegativeDepths(t *testing.T) {
	for _, tc := range []struct {
		name string
		mut  func(*Config)
	}{
		{"maxDepth", func(c *Config) { c.Resolution.MaxDepth = -1 }},
		{"maxConditionalDepth", func(c *Config) { c.Resolution.MaxConditionalDepth = -1 }},
		{"maxUtilityDepth", func(c *Config) { c.Resolution.MaxUtilityDepth = -1 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error for negative depth")
			}
		})
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

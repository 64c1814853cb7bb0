package config

import "testing"

func includeConfig(patterns ...string) *Config {
	cfg := DefaultConfig()
	cfg.Types.Include = patterns
	return &cfg
}

func TestMatchesFileDoubleStar(t *testing.T) {
	cfg := includeConfig("src/**/*.model.ts")

	for _, path := range []string{
		"src/user.model.ts",
		"src/orders/order.model.ts",
		"src/a/b/c/deep.model.ts",
		"/project/src/user.model.ts",
	} {
		if !cfg.MatchesFile(path) {
			t.Errorf("expected %q to match", path)
		}
	}
	for _, path := range []string{
		"src/user.ts",
		"lib/user.model.ts",
		"src/user.model.js",
	} {
		if cfg.MatchesFile(path) {
			t.Errorf("expected %q not to match", path)
		}
	}
}

func TestMatchesFileBareDoubleStar(t *testing.T) {
	cfg := includeConfig("**/*.ts")
	if !cfg.MatchesFile("anywhere/deep/file.ts") {
		t.Error("expected **/*.ts to match any .ts file")
	}
	if cfg.MatchesFile("anywhere/file.go") {
		t.Error("expected **/*.ts not to match .go files")
	}
}

func TestMatchesFileExactPattern(t *testing.T) {
	cfg := includeConfig("src/types.ts")
	if !cfg.MatchesFile("src/types.ts") {
		t.Error("expected exact path to match")
	}
}

func TestMatchesFileNoPatterns(t *testing.T) {
	cfg := includeConfig()
	if cfg.MatchesFile("src/user.ts") {
		t.Error("no include patterns must match nothing")
	}
}

func TestExcludesType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Exclude = []string{"Internal*", "?Temp"}

	for _, name := range []string{"InternalState", "Internal", "XTemp"} {
		if !cfg.ExcludesType(name) {
			t.Errorf("expected %q excluded", name)
		}
	}
	for _, name := range []string{"User", "MyInternal", "Temp"} {
		if cfg.ExcludesType(name) {
			t.Errorf("expected %q kept", name)
		}
	}
}

func TestExcludesTypeEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ExcludesType("Anything") {
		t.Error("no exclude patterns must exclude nothing")
	}
}

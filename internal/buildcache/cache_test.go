package buildcache

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCachePathInOutputDir(t *testing.T) {
	got := CachePath("dist", "tsconfig.json")
	want := filepath.Join("dist", ".fluentgen-cache")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCachePathFallsBackToTSConfigSibling(t *testing.T) {
	tests := []struct {
		tsconf string
		want   string
	}{
		{"/proj/tsconfig.json", "/proj/tsconfig.fluentgen-cache"},
		{"/proj/tsconfig.build.json", "/proj/tsconfig.build.fluentgen-cache"},
		{"tsconfig.json", "tsconfig.fluentgen-cache"},
	}
	for _, tt := range tests {
		if got := CachePath("", tt.tsconf); got != tt.want {
			t.Errorf("CachePath(\"\", %q) = %q, want %q", tt.tsconf, got, tt.want)
		}
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fluentgen-cache")

	c := New("abc123", []string{"dist/types.json"})
	if err := Save(path, c); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := Load(path)
	if loaded == nil {
		t.Fatal("expected cache to load")
	}
	if loaded.V != SchemaVersion {
		t.Errorf("expected version %d, got %d", SchemaVersion, loaded.V)
	}
	if loaded.ConfigHash != "abc123" {
		t.Errorf("expected hash abc123, got %q", loaded.ConfigHash)
	}
	if len(loaded.Outputs) != 1 || loaded.Outputs[0] != "dist/types.json" {
		t.Errorf("unexpected outputs: %v", loaded.Outputs)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", ".fluentgen-cache")
	if err := Save(path, New("", nil)); err != nil {
		t.Fatalf("save into missing directory failed: %v", err)
	}
	if Load(path) == nil {
		t.Fatal("expected cache readable after save")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if Load(filepath.Join(t.TempDir(), "nope")) != nil {
		t.Error("missing file must load as nil")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fluentgen-cache")
	writeFile(t, path, "{not json")
	if Load(path) != nil {
		t.Error("corrupt file must load as nil")
	}
}

func TestIsValid(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "types.json")
	writeFile(t, output, "{}")

	c := New("hash1", []string{output})
	if !c.IsValid("hash1") {
		t.Error("expected valid cache")
	}
}

func TestIsValidNilCache(t *testing.T) {
	var c *Cache
	if c.IsValid("anything") {
		t.Error("nil cache must be invalid")
	}
}

func TestIsValidVersionMismatch(t *testing.T) {
	c := New("hash1", nil)
	c.V = SchemaVersion + 1
	if c.IsValid("hash1") {
		t.Error("version mismatch must invalidate")
	}
}

func TestIsValidConfigHashMismatch(t *testing.T) {
	c := New("hash1", nil)
	if c.IsValid("hash2") {
		t.Error("config change must invalidate")
	}
}

func TestIsValidMissingOutput(t *testing.T) {
	c := New("hash1", []string{filepath.Join(t.TempDir(), "gone.json")})
	if c.IsValid("hash1") {
		t.Error("missing output must invalidate")
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fluentgen-cache")
	if err := Save(path, New("", nil)); err != nil {
		t.Fatal(err)
	}

	Delete(path)
	if Load(path) != nil {
		t.Error("expected cache gone after delete")
	}

	// Deleting a missing file is fine.
	Delete(path)
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")
	writeFile(t, a, "export interface User {}")
	writeFile(t, b, "export interface Order {}")

	ha := HashFile(a)
	if len(ha) != 64 {
		t.Fatalf("expected 64-char hex digest, got %q", ha)
	}
	if ha != HashFile(a) {
		t.Error("hash must be stable")
	}
	if ha == HashFile(b) {
		t.Error("different content must hash differently")
	}
	if HashFile(filepath.Join(dir, "missing.ts")) != "" {
		t.Error("missing file must hash to empty")
	}
}

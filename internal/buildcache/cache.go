// Package buildcache provides an incremental cache for fluentgen runs.
//
// When the host compiler reports no changed source files, fluentgen can skip
// re-resolving every declaration and re-writing the output — but only if the
// fluentgen config and the output files are also unchanged.
//
// The cache is intentionally conservative: if any check fails, the whole
// resolution pipeline runs from scratch. There are no partial invalidation
// shortcuts, because one declaration change can affect every type that
// references it.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SchemaVersion is bumped when the cache format or the resolved output format
// changes. A mismatch forces a full rebuild so binary upgrades never produce
// stale outputs.
const SchemaVersion = 1

// Cache is the on-disk record of what was true when resolution last ran
// successfully.
type Cache struct {
	// V is the schema version. Must match SchemaVersion or the cache is invalid.
	V int `json:"v"`

	// ConfigHash is the SHA-256 hex digest of the fluentgen config file
	// content. Empty string means no config file was used.
	ConfigHash string `json:"configHash"`

	// Outputs lists paths of output files that must still exist on disk for
	// the cache to be valid.
	Outputs []string `json:"outputs"`
}

// CachePath returns the cache file path inside the output directory. The
// cache lives next to the resolved output so deleting the output directory
// also removes the cache.
//
// If outDir is empty, it falls back to a sibling file next to the tsconfig:
// "tsconfig.json" becomes "tsconfig.fluentgen-cache".
func CachePath(outDir string, tsconfigPath string) string {
	if outDir != "" {
		return filepath.Join(outDir, ".fluentgen-cache")
	}
	dir := filepath.Dir(tsconfigPath)
	base := filepath.Base(tsconfigPath)
	name := strings.TrimSuffix(base, ".json")
	return filepath.Join(dir, name+".fluentgen-cache")
}

// Load reads and parses a cache file from disk. Returns nil if the file
// doesn't exist, is unreadable, or is invalid JSON; callers treat nil as a
// cache miss and run full resolution.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}

	return &c
}

// Save writes the cache to disk atomically (write to temp, rename). A failed
// save just means the next run won't benefit from caching; callers may log
// and continue.
func Save(path string, cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the cache file from disk. Errors are ignored.
func Delete(path string) {
	os.Remove(path)
}

// IsValid checks whether the cache can be trusted to skip resolution. All of
// the following must hold:
//
//  1. Schema version matches (catches binary upgrades)
//  2. Config hash matches current config file content
//  3. All output files still exist on disk
//
// The caller is responsible for the "no changed source files" check, which is
// a prerequisite before calling IsValid.
func (c *Cache) IsValid(currentConfigHash string) bool {
	if c == nil {
		return false
	}

	if c.V != SchemaVersion {
		return false
	}

	if c.ConfigHash != currentConfigHash {
		return false
	}

	for _, path := range c.Outputs {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}

	return true
}

// HashFile computes the SHA-256 hex digest of a file's contents. Returns
// empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// New creates a new Cache with the current schema version.
func New(configHash string, outputs []string) *Cache {
	return &Cache{
		V:          SchemaVersion,
		ConfigHash: configHash,
		Outputs:    outputs,
	}
}

package config

import (
	"path/filepath"
	"strings"
)

// MatchesFile checks if a file path matches any of the include patterns from
// types.include.
func (c *Config) MatchesFile(filePath string) bool {
	if len(c.Types.Include) == 0 {
		return false
	}

	filePath = filepath.ToSlash(filePath)

	for _, pattern := range c.Types.Include {
		if globMatch(filePath, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

// ExcludesType checks if a type name matches any of the types.exclude
// patterns. Patterns support basic glob: * matches any sequence, ? matches
// one character ("Internal*" matches "InternalState").
func (c *Config) ExcludesType(typeName string) bool {
	for _, pattern := range c.Types.Exclude {
		if matched, _ := filepath.Match(pattern, typeName); matched {
			return true
		}
	}
	return false
}

// globMatch matches a path against a glob pattern with ** support. Matching
// is done against suffixes of the path — "src/**/*.model.ts" matches any file
// under a "src/" directory whose name matches "*.model.ts".
func globMatch(filePath, pattern string) bool {
	if matched, _ := filepath.Match(pattern, filePath); matched {
		return true
	}

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix == "" {
			if suffix == "" {
				return true
			}
			fileName := filepath.Base(filePath)
			if matched, _ := filepath.Match(suffix, fileName); matched {
				return true
			}
		} else {
			remaining := ""
			if strings.HasPrefix(filePath, prefix+"/") {
				remaining = filePath[len(prefix)+1:]
			} else if idx := strings.Index(filePath, "/"+prefix+"/"); idx >= 0 {
				remaining = filePath[idx+len(prefix)+2:]
			}
			if remaining != "" {
				if suffix == "" {
					return true
				}
				fileName := filepath.Base(remaining)
				if matched, _ := filepath.Match(suffix, fileName); matched {
					return true
				}
				if matched, _ := filepath.Match(suffix, remaining); matched {
					return true
				}
			}
		}
	} else {
		baseName := filepath.Base(filePath)
		patternBase := filepath.Base(pattern)
		if matched, _ := filepath.Match(patternBase, baseName); matched {
			return true
		}
	}

	return false
}

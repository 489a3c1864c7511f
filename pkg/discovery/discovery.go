// Package discovery enumerates component source files under a directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrComponentNotFound is returned by FindComponent when no file matches.
var ErrComponentNotFound = errors.New("component not found")

// Config selects candidate files. Patterns are doublestar globs matched
// against slash-separated paths relative to the root.
type Config struct {
	Include []string
	Exclude []string
}

// DefaultExcludes are directories and files never treated as components.
var DefaultExcludes = []string{
	"node_modules/**",
	"**/node_modules/**",
	".git/**",
	"dist/**",
	"coverage/**",
	"**/__tests__/**",
	"**/__mocks__/**",
	"**/*.spec.*",
	"**/*.test.*",
	"**/*.stories.*",
}

// DefaultConfig includes every file with the given extension (".vue").
func DefaultConfig(ext string) Config {
	return Config{
		Include: []string{"**/*" + ext},
		Exclude: append([]string(nil), DefaultExcludes...),
	}
}

// Validate reports the first malformed pattern.
func (c Config) Validate() error {
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	return nil
}

// Match reports whether relPath (slash-separated, relative to the root) is
// a candidate under c.
func (c Config) Match(relPath string) bool {
	if c.Excluded(relPath) {
		return false
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return true
		}
	}
	return false
}

// Excluded reports whether relPath matches an exclude pattern.
func (c Config) Excluded(relPath string) bool {
	for _, pattern := range c.Exclude {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return true
		}
	}
	return false
}

// DiscoverFiles walks rootDir applying include/exclude globs from cfg.
// Returns a sorted slice of absolute file paths for deterministic output.
// A missing root yields no files.
func DiscoverFiles(rootDir string, cfg Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if cfg.Excluded(relPath) || cfg.Excluded(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Match(relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// FindComponent returns every candidate file under rootDir whose base name,
// without extension, equals name.
func FindComponent(rootDir string, cfg Config, name string) ([]string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, f := range files {
		if BaseName(f) == name {
			matches = append(matches, f)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}
	return matches, nil
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

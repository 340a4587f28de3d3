package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/plugboard/plugboard/pkg/engine"
)

// ExpandPluginDirs resolves the configured plugin directory patterns to
// descriptor resource providers, one per matched directory, in pattern
// order. Patterns support ** via doublestar; non-directory matches are
// skipped.
func (c *Config) ExpandPluginDirs() ([]engine.Provider, error) {
	var providers []engine.Provider
	for _, pattern := range c.PluginDirs {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding plugin dir pattern %q: %w", pattern, err)
		}
		for _, dir := range matches {
			providers = append(providers, engine.Provider{Name: dir, FS: os.DirFS(dir)})
		}
	}
	return providers, nil
}

// expandPattern matches one directory pattern against the filesystem.
// A pattern without metacharacters matches itself when the directory
// exists.
func expandPattern(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		info, err := os.Stat(pattern)
		if err != nil || !info.IsDir() {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, m)
	}
	return dirs, nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// sourceExts are the file extensions the extractor understands
var sourceExts = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// FileInfo describes one file selected for extraction
type FileInfo struct {
	Path string // Absolute path
	Rel  string // Slash-separated path relative to the scan root
}

// Scanner handles file discovery and filtering
type Scanner struct {
	excludeDirs  map[string]bool
	includeGlobs []glob.Glob
	excludeGlobs []glob.Glob
}

// NewScanner creates a new scanner with default exclusions
func NewScanner() *Scanner {
	return &Scanner{
		excludeDirs: map[string]bool{
			"node_modules": true,
			".next":        true,
			"build":        true,
			"dist":         true,
			".git":         true,
		},
	}
}

// SetIncludeGlobs compiles include patterns; files must match one of them.
// Include patterns override exclude patterns.
func (s *Scanner) SetIncludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.includeGlobs = globs
	return nil
}

// SetExcludeGlobs compiles exclude patterns; matching files are skipped.
func (s *Scanner) SetExcludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.excludeGlobs = globs
	return nil
}

// AddExcludeDirs adds directory names to skip while walking
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		s.excludeDirs[dir] = true
	}
}

// ExcludedDirs returns the directory names the scanner prunes
func (s *Scanner) ExcludedDirs() map[string]bool {
	dirs := make(map[string]bool, len(s.excludeDirs))
	for name := range s.excludeDirs {
		dirs[name] = true
	}
	return dirs
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// matchesGlob checks a relative path and its base name against the patterns
func matchesGlob(rel string, globs []glob.Glob) bool {
	base := filepath.Base(rel)
	for _, g := range globs {
		if g.Match(base) || g.Match(rel) {
			return true
		}
	}
	return false
}

// shouldInclude applies include/exclude globs to a relative path
func (s *Scanner) shouldInclude(rel string) bool {
	if len(s.includeGlobs) > 0 {
		return matchesGlob(rel, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(rel, s.excludeGlobs)
	}
	return true
}

// Scan recursively walks the root and returns source files in a stable order.
// filepath.WalkDir yields directory entries lexically, which downstream
// first-occurrence citations depend on.
func (s *Scanner) Scan(rootPath string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != rootPath && s.excludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !s.shouldInclude(rel) {
			return nil
		}

		files = append(files, FileInfo{Path: path, Rel: rel})
		return nil
	})

	return files, err
}

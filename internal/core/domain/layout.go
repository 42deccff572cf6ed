package domain

import (
	"os"
	"path/filepath"
)

const (
	// EvoluxDirName is the name of the per-project metadata directory.
	EvoluxDirName = ".evolux"

	// CacheDirName is the name of the implementation cache directory.
	CacheDirName = "cache"

	// OriginalsDirName holds the "before" snapshots used for diffing.
	OriginalsDirName = "originals"

	// DiffsDirName holds rendered diff artifacts.
	DiffsDirName = "diffs"

	// SettingsFileName is the name of the optional project settings file.
	SettingsFileName = "evolux.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// projectMarkers identify a project root when deriving the default cache
// location from a wrapped function's source file.
var projectMarkers = []string{"go.mod", ".git", "pyproject.toml", "setup.cfg", "setup.py"}

// DefaultCachePath returns the cache directory relative to a project root.
func DefaultCachePath() string {
	return filepath.Join(EvoluxDirName, CacheDirName)
}

// CacheBaseFor derives the cache root for a wrapped function from its
// defining source file: walk up from the file's directory to the nearest
// project marker and place the cache under ".evolux/cache" there. Resolved
// once at wrap time, never looked up ambiently afterwards.
func CacheBaseFor(sourceFile string) string {
	start := ""
	if sourceFile != "" {
		if _, err := os.Stat(sourceFile); err == nil {
			start = filepath.Dir(sourceFile)
		}
	}
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return DefaultCachePath()
		}
		start = cwd
	}
	return filepath.Join(FindProjectRoot(start), EvoluxDirName, CacheDirName)
}

// FindProjectRoot walks up from start until a project marker is found.
// Falls back to start when no marker exists anywhere above it.
func FindProjectRoot(start string) string {
	cur := start
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root
			return start
		}
		cur = parent
	}
}

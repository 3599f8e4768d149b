// Package project locates the project checkout on disk.
package project

import (
	"os"
	"path/filepath"
)

// marker is the directory that identifies the top of a checkout.
const marker = ".git"

// Root returns the nearest ancestor of the current working directory that
// contains a .git directory, or the empty string if no ancestor up to the
// filesystem root has one. It never fails: any problem reading the working
// directory is reported as "not found".
func Root() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return RootFrom(cwd)
}

// RootFrom performs the same upward search as Root but starts from an
// explicit directory instead of the working directory.
func RootFrom(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		info, err := os.Stat(filepath.Join(current, marker))
		if err == nil && info.IsDir() {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached the filesystem root without a match.
			return ""
		}
		current = parent
	}
}

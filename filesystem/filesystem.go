// Package filesystem routes every file operation through a swappable afero backend,
// so clips, manifests and caches can live in memory under test.
package filesystem

import (
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

func API() afero.Afero {
	return backend
}

// SetOsFs switches back to the real disk.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// IsClip reports whether path names a regular file with content.
// Zero-byte files are what an interrupted download leaves behind.
func IsClip(path string) bool {
	info, err := backend.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular() && info.Size() > 0
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	return backend.MkdirAll(dir, os.ModePerm)
}

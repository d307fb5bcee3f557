package filesystem

import (
	"io"
	"os"
	"time"

	"github.com/metafates/gache"
)

// GacheFs lets gache store its JSON files on the active backend.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// Cache returns a gache file cache at path. A zero lifetime never expires.
func Cache[T any](path string, lifetime time.Duration) *gache.Cache[T] {
	return gache.New[T](&gache.Options{
		Path:       path,
		Lifetime:   lifetime,
		FileSystem: &GacheFs{},
	})
}

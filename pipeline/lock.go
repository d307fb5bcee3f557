package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/hoopreel/hoopreel/filesystem"
)

// ErrRunInProgress means another run holds the subject's download directory.
var ErrRunInProgress = errors.New("a run for this subject is already in progress")

const lockName = ".lock"

// lockDir takes an exclusive advisory lock on dir without blocking.
func lockDir(dir string) (unlock func(), err error) {
	if err := filesystem.EnsureDir(dir); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(dir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}

	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrRunInProgress, dir)
	}

	return func() { _ = lock.Unlock() }, nil
}

// Package filelock serializes htmlpublish runs against the same tree with an
// advisory lock file next to the tree root.
package filelock

import (
	"path/filepath"

	"github.com/gofrs/flock"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

// Suffix is appended to the tree root to form the lock file path.
const Suffix = ".lock"

// TreeLock is an exclusive lock on one documentation tree.
type TreeLock struct {
	flock *flock.Flock
	path  string
}

// PathFor returns the lock file path for root: a sibling of the root
// directory, so the lock never appears inside the tree being processed.
func PathFor(root string) string {
	return filepath.Clean(root) + Suffix
}

// New creates a lock for root without acquiring it.
func New(root string) *TreeLock {
	path := PathFor(root)
	return &TreeLock{flock: flock.New(path), path: path}
}

// Path returns the lock file path.
func (l *TreeLock) Path() string { return l.path }

// TryLock acquires the lock without blocking. A lock held by another process
// is reported as a runtime error.
func (l *TreeLock) TryLock() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to acquire lock").
			WithContext("path", l.path).
			Build()
	}
	if !acquired {
		return ferrors.RuntimeError("another run is processing this tree").
			WithContext("path", l.path).
			Build()
	}
	return nil
}

// Unlock releases the lock. The lock file is left in place.
func (l *TreeLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to release lock").
			WithContext("path", l.path).
			Build()
	}
	return nil
}

// Locked reports whether this TreeLock currently holds the lock.
func (l *TreeLock) Locked() bool { return l.flock.Locked() }

// Acquire is New followed by TryLock.
func Acquire(root string) (*TreeLock, error) {
	l := New(root)
	if err := l.TryLock(); err != nil {
		return nil, err
	}
	return l, nil
}

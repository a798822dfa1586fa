package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/srv/site.lock", PathFor("/srv/site/"))
	assert.Equal(t, "site.lock", PathFor("./site"))
}

func TestAcquireAndRelease(t *testing.T) {
	root := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.MkdirAll(root, 0o755))

	lock, err := Acquire(root)
	require.NoError(t, err)
	assert.True(t, lock.Locked())
	assert.FileExists(t, root+Suffix)

	// flock locks are per file descriptor, so a second handle in the same
	// process contends like another process would.
	_, err = Acquire(root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))

	require.NoError(t, lock.Unlock())
	assert.False(t, lock.Locked())

	again, err := Acquire(root)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}

func TestTryLockUnwritableLocation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing", "site")

	err := New(root).TryLock()
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

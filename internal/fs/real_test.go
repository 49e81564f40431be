package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/leapsbounds/internal/fs"
)

func TestRealWriteFileAtomicThenOpenRoundTrips(t *testing.T) {
	t.Parallel()

	real := fs.NewReal()
	path := filepath.Join(t.TempDir(), "bucket.dat")

	require.NoError(t, real.WriteFileAtomic(path, []byte("payload"), 0o644))

	f, err := real.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got := make([]byte, len("payload"))
	_, err = f.Read(got)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestRealMkdirAllThenRemoveAll(t *testing.T) {
	t.Parallel()

	real := fs.NewReal()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, real.MkdirAll(dir, 0o755))

	_, err := os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, real.RemoveAll(filepath.Dir(filepath.Dir(dir))))

	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestRealRemoveMissingFileErrors(t *testing.T) {
	t.Parallel()

	real := fs.NewReal()
	err := real.Remove(filepath.Join(t.TempDir(), "missing"))
	require.True(t, os.IsNotExist(err))
}

package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/leapsbounds/internal/fs"
)

func TestFaultWriteFailRateOneAlwaysFails(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFault(fs.NewReal(), 1, fs.FaultConfig{WriteFailRate: 1.0})
	path := filepath.Join(t.TempDir(), "bucket.dat")

	err := faulty.WriteFileAtomic(path, []byte("x"), 0o644)
	require.Error(t, err)
}

func TestFaultWriteFailRateZeroDelegatesToWrappedFS(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFault(fs.NewReal(), 1, fs.FaultConfig{WriteFailRate: 0})
	path := filepath.Join(t.TempDir(), "bucket.dat")

	require.NoError(t, faulty.WriteFileAtomic(path, []byte("x"), 0o644))

	f, err := faulty.Open(path)
	require.NoError(t, err)
	defer f.Close()
}

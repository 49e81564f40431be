// Package fs provides the small filesystem seam the disk-spill layer runs
// against: a [File]/[FS] pair trimmed to exactly the operations a
// bucket-file store needs (open, write-atomically, remove, lock), plus
// a [Real] implementation and a [Fault] wrapper for exercising I/O-error
// handling in tests without touching the real filesystem's error paths.
package fs

import (
	"io"
	"os"
)

// File is an open file descriptor, trimmed to what bucket reads and the
// scratch-directory lock file need: reading a spilled bucket back in,
// and flock'ing a lock file's [File.Fd].
type File interface {
	io.ReadCloser

	// Fd returns the underlying file descriptor, used for [syscall.Flock].
	Fd() uintptr
}

// FS is the filesystem surface the disk-spill layer depends on. [Real]
// backs it with the OS; [Fault] wraps another FS to inject I/O errors.
type FS interface {
	// Open opens path for reading.
	Open(path string) (File, error)

	// OpenFile opens path with the given flags and permissions, creating
	// it if needed. Used for the scratch directory's lock file.
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm os.FileMode) error

	// Remove deletes a single file.
	Remove(path string) error

	// RemoveAll recursively deletes path. No error if path is absent.
	RemoveAll(path string) error

	// WriteFileAtomic writes data to path via a temp file plus rename, so a
	// crash mid-write never leaves a half-written bucket file behind.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

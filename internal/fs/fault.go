package fs

import (
	"fmt"
	"math/rand"
	"os"
)

// FaultConfig controls the failure rates a [Fault] injects.
type FaultConfig struct {
	// WriteFailRate is the probability, in [0,1], that WriteFileAtomic
	// fails instead of delegating to the wrapped FS.
	WriteFailRate float64
}

// Fault wraps an [FS] and injects write failures at a configured rate, so
// callers can assert that a failed spill write surfaces as an error
// instead of silently losing a bucket. It injects nothing beyond
// WriteFileAtomic: every other method is a passthrough to the wrapped FS.
type Fault struct {
	fs     FS
	rng    *rand.Rand
	config FaultConfig
}

// NewFault returns a [Fault] wrapping fsys, seeded with seed for
// reproducible test runs.
func NewFault(fsys FS, seed int64, config FaultConfig) *Fault {
	return &Fault{fs: fsys, rng: rand.New(rand.NewSource(seed)), config: config}
}

func (f *Fault) Open(path string) (File, error) {
	return f.fs.Open(path)
}

func (f *Fault) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	return f.fs.OpenFile(path, flag, perm)
}

func (f *Fault) MkdirAll(path string, perm os.FileMode) error {
	return f.fs.MkdirAll(path, perm)
}

func (f *Fault) Remove(path string) error {
	return f.fs.Remove(path)
}

func (f *Fault) RemoveAll(path string) error {
	return f.fs.RemoveAll(path)
}

func (f *Fault) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.rng.Float64() < f.config.WriteFailRate {
		return fmt.Errorf("fs: injected write failure for %q", path)
	}

	return f.fs.WriteFileAtomic(path, data, perm)
}

var _ FS = (*Fault)(nil)

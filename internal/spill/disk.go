// Package spill implements the disk layer a [search.Frontier] spills
// into once its in-memory candidate cap is exceeded: an append-only,
// per-(waste, permutations) bucket file store with read-once-then-delete
// semantics.
//
// Grounded on the teacher's internal/fs abstraction (so spill I/O is
// testable with a fault-injecting FS the same way the teacher tests its
// own cache layer) and on cache_binary.go's magic+version binary framing
// for the on-disk format. The scratch directory is additionally guarded
// by an internal/fs.TryLock exclusive lock, the same flock-based guard
// the teacher uses around its ticket store, so two leapsbounds runs never
// spill into the same directory at once.
package spill

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"

	"github.com/calvinalkan/leapsbounds/internal/fs"
	"github.com/calvinalkan/leapsbounds/internal/search"
)

const filePerm = 0o644

// Disk is the on-disk store for bucket files. One bucket file holds the
// full ordered contents of a (waste, permutations) bucket at the moment
// it was spilled; a bucket may accumulate more than one file over its
// lifetime if it is spilled, partially drained via unprune, refilled,
// and spilled again.
type Disk struct {
	fsys fs.FS
	root string
	gzip bool
	n    int
	// index tracks, per bucket, the range of write indices [low, high]
	// currently present on disk. Reads consume from low (the oldest
	// file still present) upward — FIFO per write order — deleting each
	// file as it is read; see DESIGN.md for why FIFO was chosen over the
	// LIFO wording found in an earlier design pass.
	index map[bucketID]*cursor
	lock  *fs.Lock
}

// lockFileSuffix turns root into a sibling lock file path (root.lock),
// deliberately outside root itself so RemoveAll(root) below never
// unlinks the file the lock is held on.
const lockFileSuffix = ".lock"

type bucketID struct {
	waste        int
	permutations int
}

type cursor struct {
	low  int
	high int
}

// New takes an exclusive lock on root first (a sibling lock file, never
// touched by the wipe below), so a second leapsbounds process pointed at
// the same scratch directory fails fast instead of racing the first
// run's wipe. Once locked, it (re)creates a fresh scratch directory at
// root — removing it first if it already exists — and returns a Disk
// that spills buckets there. The lock is held until Close.
func New(fsys fs.FS, root string, gzip bool, n int) (*Disk, error) {
	if err := fsys.MkdirAll(filepath.Dir(root), 0o755); err != nil {
		return nil, fmt.Errorf("spill: creating parent of scratch directory %q: %w", root, err)
	}

	lock, err := fs.TryLock(fsys, root+lockFileSuffix)
	if err != nil {
		return nil, fmt.Errorf("spill: locking scratch directory %q: %w", root, err)
	}

	if err := fsys.RemoveAll(root); err != nil {
		lock.Close()
		return nil, fmt.Errorf("spill: removing scratch directory %q: %w", root, err)
	}

	if err := fsys.MkdirAll(root, 0o755); err != nil {
		lock.Close()
		return nil, fmt.Errorf("spill: creating scratch directory %q: %w", root, err)
	}

	return &Disk{
		fsys:  fsys,
		root:  root,
		gzip:  gzip,
		n:     n,
		index: make(map[bucketID]*cursor),
		lock:  lock,
	}, nil
}

// Close releases the scratch directory lock. Safe to call more than once.
func (d *Disk) Close() error {
	if d.lock == nil {
		return nil
	}

	return d.lock.Close()
}

// Write appends bucket as a new file for (waste, permutations). Any I/O
// failure here is fatal: the search cannot meaningfully continue if a
// spilled bucket might be lost.
func (d *Disk) Write(bucket []search.Candidate, waste, permutations int) error {
	id := bucketID{waste, permutations}

	c, ok := d.index[id]
	if !ok {
		c = &cursor{low: 1, high: 0}
		d.index[id] = c
	}

	c.high++

	data, err := d.encode(bucket)
	if err != nil {
		return fmt.Errorf("spill: encoding bucket (%d,%d): %w", waste, permutations, err)
	}

	path := d.filename(waste, permutations, c.high)
	if err := d.fsys.WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("spill: writing %q: %w", path, err)
	}

	return nil
}

// Read returns the oldest remaining file's contents for (waste,
// permutations), deleting it, or (nil, false, nil) if nothing is spilled
// there. Any I/O failure is fatal.
func (d *Disk) Read(waste, permutations int) ([]search.Candidate, bool, error) {
	id := bucketID{waste, permutations}

	c, ok := d.index[id]
	if !ok || c.low > c.high {
		return nil, false, nil
	}

	index := c.low
	path := d.filename(waste, permutations, index)

	data, err := d.readFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("spill: reading %q: %w", path, err)
	}

	bucket, err := decodeBucket(data, d.n)
	if err != nil {
		return nil, false, fmt.Errorf("spill: decoding %q: %w", path, err)
	}

	if err := d.fsys.Remove(path); err != nil {
		return nil, false, fmt.Errorf("spill: removing %q after read: %w", path, err)
	}

	c.low++
	if c.low > c.high {
		delete(d.index, id)
	}

	return bucket, true, nil
}

func (d *Disk) filename(waste, permutations, index int) string {
	ext := ""
	if d.gzip {
		ext = ".gz"
	}

	return fmt.Sprintf(
		"%s/candidates-with-%d-wasted-symbols-and-%d-permutations.dat%s.%d",
		d.root, waste, permutations, ext, index,
	)
}

func (d *Disk) encode(bucket []search.Candidate) ([]byte, error) {
	raw := encodeBucket(bucket, d.n)

	if !d.gzip {
		return raw, nil
	}

	var out bytes.Buffer

	writer := gzip.NewWriter(&out)
	if _, err := writer.Write(raw); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func (d *Disk) readFile(path string) ([]byte, error) {
	f, err := d.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if !d.gzip {
		return raw, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

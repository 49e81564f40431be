// Package bucketqueue implements a priority queue over small, dense,
// non-negative integer keys: a "bucket queue". Each key indexes an ordered
// sequence ("bucket") of items; priorities are looked up directly by key
// rather than by comparison, so enqueue and keyed lookup are O(1)
// amortized. Finding the lowest or highest populated key scans every key
// present, which stays cheap for the key ranges this search engine
// produces (waste counts and permutation counts, both small integers).
//
// [Frontier] in internal/search builds its two-dimensional (waste,
// permutations) priority queue by nesting an [Index] of [Level] values:
// the outer index is keyed by waste, each entry is a [Level] keyed by
// permutation count, and each [Level] bucket is a FIFO [Deque].
package bucketqueue

// Deque is a FIFO queue of items, the leaf bucket type: the ordered
// sequence of items sharing one (waste, permutations) key.
type Deque[T any] struct {
	items []T
}

// NewDeque returns an empty deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{}
}

// PushBack appends v to the end of the deque.
func (d *Deque[T]) PushBack(v T) {
	d.items = append(d.items, v)
}

// PopFront removes and returns the first item, or the zero value and
// false if the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T

	if len(d.items) == 0 {
		return zero, false
	}

	v := d.items[0]
	d.items = d.items[1:]

	return v, true
}

// Len reports the number of items currently in the deque.
func (d *Deque[T]) Len() int {
	return len(d.items)
}

// IsEmpty reports whether the deque holds no items.
func (d *Deque[T]) IsEmpty() bool {
	return len(d.items) == 0
}

// Items returns the deque's contents in FIFO order. The returned slice
// must not be mutated; it aliases the deque's internal storage.
func (d *Deque[T]) Items() []T {
	return d.items
}

// sized is satisfied by any bucket value an [Index] can hold: both
// *Deque[T] and *Level[T] qualify, which is what lets [Index] nest. Both
// are pointer types, so the comparable constraint lets [Index.Replace]
// detect "no bucket" as a nil comparison instead of needing a separate
// presence flag.
type sized interface {
	comparable
	Len() int
}

// Index is a sparse map from integer key to bucket, with the two
// operations a best-first search needs over its priority axis: find the
// lowest (or highest) populated key, and move a bucket's contents
// wholesale between two Index values (used to split the Frontier into
// its enabled/disabled queues without touching bucket contents).
type Index[T sized] struct {
	buckets map[int]T
}

// NewIndex returns an empty Index.
func NewIndex[T sized]() *Index[T] {
	return &Index[T]{buckets: make(map[int]T)}
}

// Get returns the bucket at key, or the zero value and false if absent.
func (idx *Index[T]) Get(key int) (T, bool) {
	b, ok := idx.buckets[key]

	return b, ok
}

// GetOrCreate returns the bucket at key, creating it via create if absent.
func (idx *Index[T]) GetOrCreate(key int, create func() T) T {
	b, ok := idx.buckets[key]
	if !ok {
		b = create()
		idx.buckets[key] = b
	}

	return b
}

// Replace installs bucket at key and returns whatever was there before
// (the zero value if nothing was). Passing the zero value removes the
// entry entirely, matching the no-overwrite invariant the Frontier relies
// on when swapping buckets between its enabled and disabled queues.
func (idx *Index[T]) Replace(key int, bucket T) T {
	prev := idx.buckets[key]

	var zero T
	if bucket == zero {
		delete(idx.buckets, key)
	} else {
		idx.buckets[key] = bucket
	}

	return prev
}

// Delete removes the bucket at key, if any.
func (idx *Index[T]) Delete(key int) {
	delete(idx.buckets, key)
}

// MinKey returns the smallest key whose bucket is non-empty.
func (idx *Index[T]) MinKey() (int, bool) {
	return idx.extremeKey(func(a, b int) bool { return a < b })
}

// MaxKey returns the largest key whose bucket is non-empty.
func (idx *Index[T]) MaxKey() (int, bool) {
	return idx.extremeKey(func(a, b int) bool { return a > b })
}

func (idx *Index[T]) extremeKey(better func(a, b int) bool) (int, bool) {
	found := false
	best := 0

	for k, b := range idx.buckets {
		if b.Len() == 0 {
			continue
		}

		if !found || better(k, best) {
			best = k
			found = true
		}
	}

	return best, found
}

// Len is the total number of items across every bucket.
func (idx *Index[T]) Len() int {
	total := 0
	for _, b := range idx.buckets {
		total += b.Len()
	}

	return total
}

// Keys returns every key with a non-empty bucket, in ascending order.
func (idx *Index[T]) Keys() []int {
	keys := make([]int, 0, len(idx.buckets))

	for k, b := range idx.buckets {
		if b.Len() > 0 {
			keys = append(keys, k)
		}
	}

	insertionSort(keys)

	return keys
}

func insertionSort(keys []int) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// Level is a [Deque]-bucketed bucket queue: one priority axis, keyed by
// int, each key holding a FIFO deque. It is the inner dimension of the
// Frontier's (waste, permutations) priority queue.
type Level[T any] struct {
	Index[*Deque[T]]
}

// NewLevel returns an empty Level.
func NewLevel[T any]() *Level[T] {
	return &Level[T]{Index: *NewIndex[*Deque[T]]()}
}

// Enqueue appends v to the bucket at key, creating the bucket if needed.
func (l *Level[T]) Enqueue(key int, v T) {
	l.GetOrCreate(key, NewDeque[T]).PushBack(v)
}

// DequeueMax removes and returns the front item of the bucket with the
// largest key, i.e. the highest-priority item under (key DESC, FIFO)
// ordering.
func (l *Level[T]) DequeueMax() (T, bool) {
	var zero T

	key, ok := l.MaxKey()
	if !ok {
		return zero, false
	}

	bucket, _ := l.Get(key)

	return bucket.PopFront()
}

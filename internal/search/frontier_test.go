package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/leapsbounds/internal/bitset"
	"github.com/calvinalkan/leapsbounds/internal/search"
)

// fakeDisk is an in-memory stand-in for internal/spill.Disk, avoiding a
// real filesystem in Frontier-only tests.
type fakeDisk struct {
	buckets map[[2]int][]search.Candidate
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{buckets: make(map[[2]int][]search.Candidate)}
}

func (d *fakeDisk) Write(bucket []search.Candidate, waste, permutations int) error {
	key := [2]int{waste, permutations}
	d.buckets[key] = append(d.buckets[key], bucket...)

	return nil
}

func (d *fakeDisk) Read(waste, permutations int) ([]search.Candidate, bool, error) {
	key := [2]int{waste, permutations}

	bucket, ok := d.buckets[key]
	if !ok {
		return nil, false, nil
	}

	delete(d.buckets, key)

	return bucket, true, nil
}

func seedChildren(n int) []search.Candidate {
	return search.Seed(n).Expand(search.Factorial(n), n)
}

// syntheticCandidate builds a Candidate whose total_waste is exactly
// waste and whose permutation count is exactly permutations, for n=5,
// bypassing Expand so Frontier tests can target precise (waste,
// permutations) buckets directly. A full-length tail (n-1 symbols)
// makes future_waste zero, so total_waste equals the wasted counter.
func syntheticCandidate(n, waste, permutations int) search.Candidate {
	set := bitset.New(search.Factorial(n))
	for id := 0; id < permutations; id++ {
		set.Insert(id)
	}

	tail := make([]int, n-1)
	for i := range tail {
		tail[i] = i
	}

	return search.FromParts(set, tail, waste)
}

func TestFrontierNextOrdersByWasteThenPermutationsDesc(t *testing.T) {
	t.Parallel()

	const n = 5

	f := search.NewFrontier(newFakeDisk(), 12, n, nil)

	for _, c := range seedChildren(n) {
		f.Add(c)
	}

	first, ok := f.Next()
	require.True(t, ok)
	require.Equal(t, 0, first.TotalWaste(n))
	require.Equal(t, 2, first.NumberOfPermutations())

	second, ok := f.Next()
	require.True(t, ok)
	require.Equal(t, 1, second.TotalWaste(n))
}

func TestFrontierNextEmptyReturnsFalse(t *testing.T) {
	t.Parallel()

	f := search.NewFrontier(newFakeDisk(), 12, 5, nil)

	_, ok := f.Next()
	require.False(t, ok)
}

func TestFrontierPruneMovesBelowThresholdBucketsToDisabled(t *testing.T) {
	t.Parallel()

	const n = 5

	f := search.NewFrontier(newFakeDisk(), 12, n, nil)

	for _, c := range seedChildren(n) {
		f.Add(c)
	}

	require.Equal(t, 4, f.Len())

	// The three wasteful children hold permutations=1 at total waste 1, 2
	// and 3 (shorter tails add future waste); an eager prune from waste=1
	// with threshold=2 should move all of them out of "enabled".
	f.Prune(1, 2, true)

	waste, ok := f.MinWaste()
	require.True(t, ok)
	require.Equal(t, 0, waste, "waste=0 bucket must remain enabled; only waste>=1 was pruned")

	_, ok = f.Next()
	require.True(t, ok)

	_, ok = f.Next()
	require.False(t, ok, "the three permutations=1 candidates were pruned below threshold and must not be poppable")

	require.Equal(t, 3, f.Len(), "pruned candidates remain in memory (disabled), not discarded")
}

func TestFrontierPruneIsIdempotent(t *testing.T) {
	t.Parallel()

	const n = 5

	f := search.NewFrontier(newFakeDisk(), 12, n, nil)
	for _, c := range seedChildren(n) {
		f.Add(c)
	}

	f.Prune(1, 2, false)
	lenAfterFirst := f.Len()

	f.Prune(1, 2, false)
	require.Equal(t, lenAfterFirst, f.Len())
}

// TestFrontierUnpruneResurrectsFromDisabledQueue exercises the
// descending-waste search loop with a bucket at waste=2 (the inner loop
// only ever visits waste levels strictly above 1), pruned below
// threshold and then resurrected once bounds make it relevant again.
func TestFrontierUnpruneResurrectsFromDisabledQueue(t *testing.T) {
	t.Parallel()

	const n = 5

	f := search.NewFrontier(newFakeDisk(), 12, n, nil)

	target := syntheticCandidate(n, 2, 2)
	f.Add(target)

	f.Prune(2, 3, false) // threshold=3 prunes permutations<3, so (2,2) is disabled

	_, ok := f.Next()
	require.False(t, ok, "the only candidate was pruned below threshold")

	lowerBounds := []int{0, 0, 1} // lowerBounds[wastePrev=2] = 1
	upperBounds := []int{1, 2, 3} // upperBounds[allowedWaste=0] = 1, upperBounds[w=2] = 3

	resumeWaste := f.Unprune(3, lowerBounds, upperBounds)
	require.Equal(t, 2, resumeWaste, "the pruned (waste=2, permutations=2) bucket must be resurrected")

	c, ok := f.Next()
	require.True(t, ok)
	require.Equal(t, 2, c.TotalWaste(n))
	require.Equal(t, 2, c.NumberOfPermutations())
}

func TestFrontierUnpruneBelowBoundsLengthIsNoop(t *testing.T) {
	t.Parallel()

	f := search.NewFrontier(newFakeDisk(), 12, 5, nil)

	resumeWaste := f.Unprune(1, []int{0, 0, 0}, []int{1, 2, 3})
	require.Equal(t, 1, resumeWaste, "wasteCurrent below len(lowerBounds) must be a no-op")
}

func TestFrontierSpillAndEnableRoundTrip(t *testing.T) {
	t.Parallel()

	const n = 5

	disk := newFakeDisk()
	// A zero cap forces maybe_spill to fire on every Add call once any
	// candidate sits in the disabled queue.
	f := search.NewFrontier(disk, 0, n, nil)

	f.Add(syntheticCandidate(n, 2, 2))
	f.Prune(2, 3, false)
	f.Add(syntheticCandidate(n, 0, 1)) // triggers maybe_spill since cap is effectively zero

	require.NotEmpty(t, disk.buckets, "disabled buckets must have spilled to disk once over cap")

	lowerBounds := []int{0, 0, 1}
	upperBounds := []int{1, 2, 3}

	resumeWaste := f.Unprune(3, lowerBounds, upperBounds)
	require.Equal(t, 2, resumeWaste, "unprune must load the spilled bucket from disk, not just skip it")
}

// TestFrontierSpillThenDrainPreservesPopOrder is the spill round-trip
// scenario: 1,000 identical candidates, forced to spill to disk and
// back, must pop in the same order and with the same content as an
// equivalent run that never spilled.
func TestFrontierSpillThenDrainPreservesPopOrder(t *testing.T) {
	t.Parallel()

	const n = 5
	const count = 1000

	noSpill := search.NewFrontier(newFakeDisk(), 12, n, nil)
	for i := 0; i < count; i++ {
		noSpill.Add(syntheticCandidate(n, 2, 2))
	}

	var wantTails [][]int
	var wantWastes []int

	for i := 0; i < count; i++ {
		c, ok := noSpill.Next()
		require.True(t, ok)

		wantTails = append(wantTails, c.Tail())
		wantWastes = append(wantWastes, c.WastedSymbols())
	}

	spilled := search.NewFrontier(newFakeDisk(), 0, n, nil)
	for i := 0; i < count; i++ {
		spilled.Add(syntheticCandidate(n, 2, 2))
	}

	spilled.Prune(2, 3, false) // routes the whole bucket to disabled
	spilled.Add(syntheticCandidate(n, 0, 1)) // nudges maybe_spill to fire with cap=0

	resumeWaste := spilled.Unprune(3, []int{0, 0, 1}, []int{1, 2, 3})
	require.Equal(t, 2, resumeWaste)

	// The nudge candidate sits at waste=0, strictly ahead of the
	// resurrected waste=2 bucket in pop order; drain it first.
	nudge, ok := spilled.Next()
	require.True(t, ok)
	require.Equal(t, 0, nudge.TotalWaste(n))

	var gotTails [][]int
	var gotWastes []int

	for i := 0; i < count; i++ {
		c, ok := spilled.Next()
		require.True(t, ok)

		gotTails = append(gotTails, c.Tail())
		gotWastes = append(gotWastes, c.WastedSymbols())
	}

	require.Equal(t, wantTails, gotTails)
	require.Equal(t, wantWastes, gotWastes)

	_, ok = spilled.Next()
	require.False(t, ok, "every candidate must have been drained")
}

func TestFrontierLenCountsEnabledAndDisabledNotDisk(t *testing.T) {
	t.Parallel()

	const n = 5

	disk := newFakeDisk()
	f := search.NewFrontier(disk, 12, n, nil)

	for _, c := range seedChildren(n) {
		f.Add(c)
	}

	require.Equal(t, 4, f.Len())

	f.Prune(1, 2, false)
	require.Equal(t, 4, f.Len(), "pruning moves candidates between in-memory queues, count is unchanged")
}

func TestMemoryPerCandidateAndQueueLimit(t *testing.T) {
	t.Parallel()

	const n = 5

	bytesPer := search.MemoryPerCandidate(n)
	require.Positive(t, bytesPer)

	limit := search.QueueLimit(1, n)
	require.Positive(t, limit)

	// Doubling the memory budget must not shrink the candidate cap.
	doubled := search.QueueLimit(2, n)
	require.GreaterOrEqual(t, doubled, limit)
}

package search

import (
	"github.com/calvinalkan/leapsbounds/internal/bucketqueue"
)

// diskStore is the subset of [spill.Disk]'s method set the Frontier
// needs, so tests can substitute a fake without touching a filesystem.
type diskStore interface {
	Write(bucket []Candidate, waste, permutations int) error
	Read(waste, permutations int) ([]Candidate, bool, error)
}

type bucketID struct {
	waste        int
	permutations int
}

// levels is the Frontier's two-dimensional priority queue: outer key is
// waste, inner key is permutations seen, each cell an ordered (FIFO)
// deque of candidates.
type levels = bucketqueue.Index[*bucketqueue.Level[Candidate]]

// Frontier is the open set of the search: a best-first priority queue
// ordered by (waste ASC, permutations DESC), split into an enabled queue
// (the live frontier) and a disabled queue (buckets pruned by threshold,
// kept separate so [Frontier.Next] never has to skip past them). Once
// the in-memory candidate count exceeds its cap, disabled buckets are
// spilled to disk to bound memory use.
type Frontier struct {
	enabled  *levels
	disabled *levels
	// disabledIDs mirrors which (waste, permutations) cells are
	// currently routed to the disabled queue; add() consults it instead
	// of scanning both queues on every insert.
	disabledIDs map[bucketID]bool
	disk        diskStore
	cap         int
	reporter    Reporter
	n           int
}

// Reporter receives progress events the original CLI printed directly;
// splitting it out lets the Driver and Frontier stay silent in tests
// while the real CLI still gets the full set of progress lines.
type Reporter interface {
	Progressf(format string, args ...any)
	Spilling()
	SpilledBucket(waste, permutations, count int)
	SpillDone()
	Unpruned(waste, permutations int, fromDisk bool)
}

// NoopReporter discards every event.
type NoopReporter struct{}

func (NoopReporter) Progressf(string, ...any)    {}
func (NoopReporter) Spilling()                   {}
func (NoopReporter) SpilledBucket(int, int, int) {}
func (NoopReporter) SpillDone()                  {}
func (NoopReporter) Unpruned(int, int, bool)     {}

// NewFrontier returns an empty Frontier for an alphabet of n symbols. The
// in-memory candidate cap is derived from memoryLimitGiB the same way
// the original tool derives it (see [MemoryPerCandidate]).
func NewFrontier(disk diskStore, memoryLimitGiB float64, n int, reporter Reporter) *Frontier {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	queueCap := QueueLimit(memoryLimitGiB, n)
	reporter.Progressf("Each candidate string consumes approximately %d bytes of memory.", MemoryPerCandidate(n))
	reporter.Progressf("The queue limit has been set to %.2gGiB / %dB = %d candidates.", memoryLimitGiB, MemoryPerCandidate(n), queueCap)

	return &Frontier{
		enabled:     bucketqueue.NewIndex[*bucketqueue.Level[Candidate]](),
		disabled:    bucketqueue.NewIndex[*bucketqueue.Level[Candidate]](),
		disabledIDs: make(map[bucketID]bool),
		disk:        disk,
		cap:         queueCap,
		reporter:    reporter,
		n:           n,
	}
}

// MemoryPerCandidate estimates the in-memory footprint of one Candidate
// for an alphabet of n symbols: the packed bitset plus the tail plus the
// waste counter.
func MemoryPerCandidate(n int) int {
	factorial := Factorial(n)
	bitsetBytes := (factorial + 7) / 8
	tailBytes := (n - 1) * 8
	wasteBytes := 8

	return bitsetBytes + tailBytes + wasteBytes
}

// QueueLimit converts a memory budget in GiB into a candidate count cap.
func QueueLimit(memoryLimitGiB float64, n int) int {
	bytesPerCandidate := float64(MemoryPerCandidate(n))
	gib := memoryLimitGiB * 1024 * 1024 * 1024

	return int(gib / bytesPerCandidate)
}

// Add inserts a candidate, routing it to whichever queue currently owns
// its (waste, permutations) bucket, then spills disabled buckets to disk
// if the in-memory cap has been exceeded.
func (f *Frontier) Add(c Candidate) {
	waste := c.TotalWaste(f.n)
	permutations := c.NumberOfPermutations()
	id := bucketID{waste, permutations}

	queue := f.enabled
	if f.disabledIDs[id] {
		queue = f.disabled
	}

	queue.GetOrCreate(waste, bucketqueue.NewLevel[Candidate]).Enqueue(permutations, c)

	f.maybeSpill()
}

// Next pops the highest-priority candidate from the enabled queue: the
// lowest waste, and within that the most permutations, FIFO among ties.
// Returns false if the enabled queue is empty.
func (f *Frontier) Next() (Candidate, bool) {
	waste, ok := f.MinWaste()
	if !ok {
		return Candidate{}, false
	}

	bucket, _ := f.enabled.Get(waste)

	return bucket.DequeueMax()
}

// MinWaste returns the lowest waste level with any enabled candidate.
func (f *Frontier) MinWaste() (int, bool) {
	return f.enabled.MinKey()
}

// MaxWaste returns the highest waste level with any enabled candidate.
func (f *Frontier) MaxWaste() (int, bool) {
	return f.enabled.MaxKey()
}

// Len is the total number of candidates held in memory (enabled plus
// disabled); on-disk candidates are not counted, so the spill cap this
// feeds into is therefore approximate.
func (f *Frontier) Len() int {
	return f.enabled.Len() + f.disabled.Len()
}

// Prune moves every bucket (w, p) with w in [waste, wasteMax] and p <
// threshold from enabled to disabled. wasteMax is the current max
// enabled waste when eager is true, or just waste otherwise.
func (f *Frontier) Prune(waste, threshold int, eager bool) {
	wasteMax := waste

	if eager {
		highest, ok := f.MaxWaste()
		if !ok {
			return
		}

		wasteMax = highest
	}

	for w := waste; w <= wasteMax; w++ {
		for p := 0; p < threshold; p++ {
			f.disable(bucketID{w, p})
		}
	}
}

func (f *Frontier) disable(id bucketID) {
	if f.disabledIDs[id] {
		return
	}

	f.disabledIDs[id] = true
	f.swap(f.enabled, f.disabled, id)
}

// Unprune looks for previously pruned buckets that are newly worth
// resurrecting now that waste has advanced past wasteCurrent: descending
// waste (from wasteCurrent-1 down to 2; waste 1 is not visited), then
// descending permutation count within the range the bounds vectors say
// could still matter. Returns the waste level to resume the loop at —
// either wasteCurrent unchanged, or the waste level of whatever got
// re-enabled.
func (f *Frontier) Unprune(wasteCurrent int, lowerBounds, upperBounds []int) int {
	if wasteCurrent < len(lowerBounds) {
		return wasteCurrent
	}

	wastePrev := wasteCurrent - 1
	lowerBound := lowerBounds[wastePrev]

	for w := wastePrev; w > 1; w-- {
		allowedWaste := wastePrev - w
		remaining := upperBoundAt(upperBounds, allowedWaste)

		maxP := upperBoundAt(upperBounds, w)
		minP := lowerBound + 1 - remaining

		for p := maxP - 1; p >= minP; p-- {
			if f.enable(bucketID{w, p}) {
				return w
			}
		}
	}

	return wasteCurrent
}

func upperBoundAt(upperBounds []int, waste int) int {
	if waste < 0 || waste >= len(upperBounds) {
		if len(upperBounds) == 0 {
			return 0
		}

		return upperBounds[len(upperBounds)-1]
	}

	return upperBounds[waste]
}

func (f *Frontier) enable(id bucketID) bool {
	if !f.disabledIDs[id] {
		return false
	}

	if f.enableFromDisk(id) {
		f.reporter.Unpruned(id.waste, id.permutations, true)

		return true
	}

	delete(f.disabledIDs, id)

	if f.swap(f.disabled, f.enabled, id) {
		f.reporter.Unpruned(id.waste, id.permutations, false)

		return true
	}

	return false
}

func (f *Frontier) enableFromDisk(id bucketID) bool {
	bucket, ok, err := f.disk.Read(id.waste, id.permutations)
	if err != nil {
		panic(err) // disk I/O failure is unrecoverable; search state would be inconsistent
	}

	if !ok {
		return false
	}

	level := f.enabled.GetOrCreate(id.waste, bucketqueue.NewLevel[Candidate])
	if existing, had := level.Get(id.permutations); had && existing.Len() > 0 {
		panic("frontier: about to overwrite a non-empty enabled bucket while loading from disk")
	}

	deque := bucketqueue.NewDeque[Candidate]()
	for _, c := range bucket {
		deque.PushBack(c)
	}

	level.Replace(id.permutations, deque)
	delete(f.disabledIDs, id)

	return true
}

// swap moves the bucket at id from one queue to the other, provided it
// is non-empty in from. Returns whether anything moved.
func (f *Frontier) swap(from, to *levels, id bucketID) bool {
	fromLevel, ok := from.Get(id.waste)
	if !ok {
		return false
	}

	bucket, ok := fromLevel.Get(id.permutations)
	if !ok || bucket.IsEmpty() {
		return false
	}

	fromLevel.Replace(id.permutations, nil)

	toLevel := to.GetOrCreate(id.waste, bucketqueue.NewLevel[Candidate])
	toLevel.Replace(id.permutations, bucket)

	return true
}

// maybeSpill offloads every non-empty disabled bucket to disk once the
// in-memory total exceeds the cap. Spilling only ever touches the
// disabled queue, so the live search frontier is never evicted.
func (f *Frontier) maybeSpill() {
	if f.Len() <= f.cap {
		return
	}

	f.reporter.Spilling()

	wasteMin, ok := f.disabled.MinKey()
	if !ok {
		return
	}

	wasteMax, _ := f.disabled.MaxKey()

	for w := wasteMin; w <= wasteMax; w++ {
		f.spillWasteLevel(w)
	}

	f.reporter.SpillDone()
}

func (f *Frontier) spillWasteLevel(waste int) {
	level, ok := f.disabled.Get(waste)
	if !ok {
		return
	}

	permMin, ok := level.MinKey()
	if !ok {
		return
	}

	permMax, _ := level.MaxKey()

	for p := permMin; p <= permMax; p++ {
		bucket, ok := level.Get(p)
		if !ok || bucket.IsEmpty() {
			continue
		}

		items := append([]Candidate(nil), bucket.Items()...)
		if err := f.disk.Write(items, waste, p); err != nil {
			panic(err) // disk I/O failure is unrecoverable; search state would be inconsistent
		}

		f.reporter.SpilledBucket(waste, p, len(items))
		level.Replace(p, nil)
	}
}

package search

import (
	"github.com/calvinalkan/leapsbounds/internal/bitset"
	"github.com/calvinalkan/leapsbounds/internal/lehmer"
)

// Candidate is an immutable search-state node: the implicit string it
// represents is never materialized in full, only its last (up to) n
// symbols (tail), which permutations it has witnessed so far
// (permutations), and how many symbols it has wasted getting there.
//
// Expansion never mutates a Candidate in place; children are built from
// independent copies (see internal/bitset's Clone), so a parent can be
// discarded once its children exist.
type Candidate struct {
	permutations *bitset.Set
	tail         []int
	wasted       int
}

// Seed returns the starting Candidate for an alphabet of n symbols: the
// tail [1, 2, ..., n-1] with permutation 0 (0, 1, ..., n-1, i.e. the
// identity permutation) already witnessed, at zero waste.
func Seed(n int) Candidate {
	seen := bitset.New(lehmer.MaxValue(n))
	seen.Insert(0)

	tail := make([]int, n-1)
	for i := range tail {
		tail[i] = i + 1
	}

	return Candidate{permutations: seen, tail: tail, wasted: 0}
}

// NumberOfPermutations returns how many distinct permutations this
// candidate has witnessed.
func (c Candidate) NumberOfPermutations() int {
	return c.permutations.Len()
}

// Tail returns the candidate's tail (its last up-to-n symbols). The
// returned slice must not be mutated.
func (c Candidate) Tail() []int {
	return c.tail
}

// Permutations returns the candidate's witnessed-permutations bit set.
// Exposed only so internal/spill can serialize it; callers must not
// mutate the returned value.
func (c Candidate) Permutations() *bitset.Set {
	return c.permutations
}

// FromParts reconstructs a Candidate from its raw fields. It exists for
// internal/spill to rebuild candidates read back from disk and bypasses
// the expansion rules entirely, so callers must only ever pass values
// that originated from a real Candidate's own fields.
func FromParts(permutations *bitset.Set, tail []int, wasted int) Candidate {
	return Candidate{permutations: permutations, tail: tail, wasted: wasted}
}

// WastedSymbols returns the number of appended symbols that did not
// complete a newly witnessed permutation.
func (c Candidate) WastedSymbols() int {
	return c.wasted
}

// FutureWaste is the number of symbols still needed to complete the next
// full permutation window, given the tail isn't yet of length n.
func (c Candidate) FutureWaste(n int) int {
	return n - len(c.tail) - 1
}

// TotalWaste is the key the Frontier uses as outer priority: symbols
// already charged, plus the unavoidable cost of finishing the window
// currently in progress.
func (c Candidate) TotalWaste(n int) int {
	return c.wasted + c.FutureWaste(n)
}

// Expand produces one child candidate per symbol in [0, n), in ascending
// order, skipping the symbol that would immediately repeat the last
// symbol of the tail (n-1 children in total, one per remaining choice).
// upperBound is the caller's current best-known ceiling on permutations
// reachable at this candidate's waste level; expandOne uses it to cut
// off a branch early once it provably cannot improve on that ceiling.
func (c Candidate) Expand(upperBound, n int) []Candidate {
	if len(c.tail) == 0 {
		// n=1: the alphabet has a single symbol, the seed's lone
		// permutation is already witnessed, and there is no "last tail
		// symbol" to branch expansion on — nothing more to explore.
		return nil
	}

	last := c.tail[len(c.tail)-1]

	atUpperBound := c.NumberOfPermutations() >= upperBound
	children := make([]Candidate, 0, n-1)

	for s := 0; s < n; s++ {
		if s == last {
			continue
		}

		children = append(children, c.expandOne(s, atUpperBound, n))
	}

	return children
}

// expandOne builds the child candidate for appending symbol s, applying
// the classification and waste penalty rules:
//
//   - warm-up (tail not yet at full length n-1 either before or after
//     appending): penalty 1, bitset unchanged.
//   - immediate repeat (s rotates back to the window's first symbol,
//     reproducing the same permutation): penalty 1, bitset unchanged.
//   - at upper bound (caller asserts this branch cannot improve): penalty
//     1, bitset unchanged (early cutoff).
//   - new permutation: penalty 0, bitset gains the id.
//   - repeat permutation: penalty 1 or 2 depending on whether the unique
//     forced next completion is also already seen (look-ahead).
func (c Candidate) expandOne(s int, atUpperBound bool, n int) Candidate {
	newTail := c.buildTail(s, n)

	if lessThanFull(c.tail, n) || lessThanFull(newTail, n) {
		return c.withWastedSymbol(newTail)
	}

	if s == c.tail[0] {
		return c.withWastedSymbol(newTail)
	}

	if atUpperBound {
		return c.withWastedSymbol(newTail)
	}

	id := permutationID(c.tail, s)

	if !c.permutations.Contains(id) {
		return c.withNewPermutation(newTail, id)
	}

	return c.withRepeatPermutation(newTail, n)
}

// withRepeatPermutation handles the "already seen" branch: look ahead to
// the unique symbol missing from newTail (the tail always holds n-1
// distinct symbols once full). If completing the window one more step
// forward is also already seen, two symbols are unavoidably wasted
// before any new permutation can appear; otherwise only one is.
func (c Candidate) withRepeatPermutation(newTail []int, n int) Candidate {
	missing := missingSymbol(newTail, n)
	lookaheadID := permutationID(newTail, missing)

	penalty := 1
	if c.permutations.Contains(lookaheadID) {
		penalty = 2
	}

	return Candidate{
		permutations: c.permutations.Clone(),
		tail:         newTail,
		wasted:       c.wasted + penalty,
	}
}

func (c Candidate) withWastedSymbol(newTail []int) Candidate {
	return Candidate{
		permutations: c.permutations.Clone(),
		tail:         newTail,
		wasted:       c.wasted + 1,
	}
}

func (c Candidate) withNewPermutation(newTail []int, id int) Candidate {
	permutations := c.permutations.Clone()
	permutations.Insert(id)

	return Candidate{
		permutations: permutations,
		tail:         newTail,
		wasted:       c.wasted,
	}
}

// buildTail computes the new tail after appending symbol s to the
// window:
//   - if s already occurs in the tail at position k, the window slides:
//     the new tail drops everything up to and including that occurrence
//     and appends s.
//   - else if the tail hasn't reached its full length yet, s is simply
//     absorbed (warm-up).
//   - else the window slides by exactly one symbol.
func (c Candidate) buildTail(s, n int) []int {
	head := c.tail

	index := len(head)
	for i, v := range head {
		if v == s {
			index = i + 1

			break
		}
	}

	if index == len(head) {
		if lessThanFull(head, n) {
			index = 0
		} else {
			index = 1
		}
	}

	newTail := make([]int, 0, len(head)-index+1)
	newTail = append(newTail, head[index:]...)
	newTail = append(newTail, s)

	return newTail
}

func lessThanFull(tail []int, n int) bool {
	return len(tail) < n-1
}

// permutationID computes the Lehmer id of the permutation formed by the
// window head followed by symbol s.
func permutationID(head []int, s int) int {
	perm := make([]int, 0, len(head)+1)
	perm = append(perm, head...)
	perm = append(perm, s)

	return lehmer.Encode(perm)
}

// missingSymbol returns the one symbol in [0, n) absent from a tail that
// holds n-1 pairwise-distinct symbols.
func missingSymbol(tail []int, n int) int {
	present := make([]bool, n)
	for _, v := range tail {
		present[v] = true
	}

	for s := 0; s < n; s++ {
		if !present[s] {
			return s
		}
	}

	panic("missingSymbol: tail has no missing symbol")
}

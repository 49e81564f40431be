package search

// Result is the outcome the Driver reports once a run halts.
type Result struct {
	// Waste is the waste level at which the full set of n! permutations
	// was first witnessed.
	Waste int
	// Permutations is always n! on success; it is whatever the highest
	// bound reached was if the search exhausted its frontier first.
	Permutations int
	// Length is the length of the minimal superpermutation implied by
	// this result: (n-1) + n! + Waste.
	Length int
	// Exhausted is true if the loop halted because the frontier ran dry
	// before Bounds.Found, rather than because a solution was found.
	Exhausted bool
}

// Run drives the bounded best-first search for an alphabet of n symbols
// to completion: seed a Candidate into frontier, then repeatedly pop the
// best candidate, fold its permutation count into bounds, prune newly
// dominated buckets, expand, and re-enqueue — until bounds reports n!
// permutations witnessed or the frontier runs dry.
func Run(frontier *Frontier, bounds *Bounds, n int) Result {
	frontier.Add(Seed(n))

	for {
		waste, ok := frontier.MinWaste()
		if !ok {
			return Result{
				Waste:        bounds.Waste(),
				Permutations: bounds.LowerBounds()[bounds.Waste()],
				Length:       length(n, bounds.Waste()),
				Exhausted:    true,
			}
		}

		waste = frontier.Unprune(waste, bounds.LowerBounds(), bounds.UpperBounds())

		candidate, ok := frontier.Next()
		if !ok {
			panic("search: frontier.Next returned none immediately after unprune reported a waste level")
		}

		permutations := candidate.NumberOfPermutations()

		if bounds.Update(waste, permutations) {
			frontier.Prune(waste, bounds.Threshold(waste), true)
		}

		upperBound := bounds.Upper(waste)
		for _, child := range candidate.Expand(upperBound, n) {
			frontier.Add(child)
		}

		if bounds.Found() {
			return Result{
				Waste:        waste,
				Permutations: bounds.Max(),
				Length:       length(n, waste),
			}
		}
	}
}

// length computes the minimal-superpermutation length implied by a
// search that reached n! permutations at the given waste level: the
// n-1 symbols warming up the first window, plus one symbol per
// permutation, plus every wasted symbol along the way.
func length(n, waste int) int {
	return n - 1 + Factorial(n) + waste
}

// Package report prints search progress and the final result the way
// the teacher's CLIs print directly to stdout with fmt, rather than
// through a structured logging library — this codebase never pulls one
// in, so progress output follows that same plain convention.
package report

import (
	"fmt"
	"io"

	"github.com/calvinalkan/leapsbounds/internal/search"
)

// Printer implements [search.Reporter] by writing human-readable lines
// to w. Verbose gates the per-event spill/unprune tracing; the two
// startup Progressf lines about memory sizing always print.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New returns a Printer writing to w.
func New(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

func (p *Printer) Progressf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Spilling() {
	if !p.verbose {
		return
	}

	fmt.Fprintln(p.w, "Spilling disabled buckets to disk...")
}

func (p *Printer) SpilledBucket(waste, permutations, count int) {
	if !p.verbose {
		return
	}

	fmt.Fprintf(p.w, "  spilled %d candidates (waste=%d, permutations=%d)\n", count, waste, permutations)
}

func (p *Printer) SpillDone() {
	if !p.verbose {
		return
	}

	fmt.Fprintln(p.w, "Spill complete.")
}

func (p *Printer) Unpruned(waste, permutations int, fromDisk bool) {
	if !p.verbose {
		return
	}

	source := "memory"
	if fromDisk {
		source = "disk"
	}

	fmt.Fprintf(p.w, "  unpruned bucket (waste=%d, permutations=%d) from %s\n", waste, permutations, source)
}

// BoundsVector prints the given lower-bounds vector on one line when
// verbose. It is not part of [search.Reporter], and the search loop does
// not call it, so a run prints no bounds-vector progress lines.
func (p *Printer) BoundsVector(lowerBounds []int) {
	if !p.verbose {
		return
	}

	fmt.Fprintf(p.w, "bounds: %v\n", lowerBounds)
}

// Final prints the closing report: the waste level at which n! was
// reached, n!, and the minimal superpermutation length implied by that
// waste.
func (p *Printer) Final(n int, result search.Result) {
	fmt.Fprintln(p.w)

	if result.Exhausted {
		fmt.Fprintf(p.w, "search space exhausted before reaching %d! permutations (best: %d at waste %d)\n",
			n, result.Permutations, result.Waste)

		return
	}

	fmt.Fprintf(p.w, "%d wasted symbols: at most %d permutations\n", result.Waste, result.Permutations)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "--->>> Done!")
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "A maximum of %d wasted symbols can fit all %d! = %d permutations.\n", result.Waste, n, result.Permutations)
	fmt.Fprintf(p.w, "The shortest superpermutation contains %d + %d + %d = %d symbols.\n",
		n-1, result.Permutations, result.Waste, result.Length)
}

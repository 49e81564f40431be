// leapsbounds-bench runs the search across a range of alphabet sizes and
// reports timing for each, the way the teacher's seed-bench.go looped
// over a fixed set of sizes and reported elapsed time per size.
package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/leapsbounds/internal/fs"
	"github.com/calvinalkan/leapsbounds/internal/search"
	"github.com/calvinalkan/leapsbounds/internal/spill"
)

// benchResult mirrors the teacher's bench-result shape (label, timing,
// a couple of summary numbers) adapted to this domain: n in place of a
// dataset size, waste/length in place of throughput.
type benchResult struct {
	n       int
	elapsed time.Duration
	waste   int
	length  int
}

func main() {
	maxN := flag.IntP("max-n", "n", 6, "largest alphabet size to benchmark (runs 1..max-n)")
	scratchRoot := flag.String("scratch-root", "bench-scratch", "scratch directory root, one subdirectory per n")
	memory := flag.Float64("memory", 12, "memory budget in GiB for every run")
	flag.Parse()

	results := make([]benchResult, 0, *maxN)

	for n := 1; n <= *maxN; n++ {
		result, err := runOne(n, *scratchRoot, *memory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "n=%d: error: %v\n", n, err)
			os.Exit(1)
		}

		results = append(results, result)
		fmt.Printf("n=%-2d waste=%-4d length=%-6d elapsed=%s\n", n, result.waste, result.length, result.elapsed)
	}
}

func runOne(n int, scratchRoot string, memoryLimitGiB float64) (benchResult, error) {
	root := fmt.Sprintf("%s/n-%d", scratchRoot, n)

	disk, err := spill.New(fs.NewReal(), root, false, n)
	if err != nil {
		return benchResult{}, err
	}
	defer disk.Close()

	frontier := search.NewFrontier(disk, memoryLimitGiB, n, search.NoopReporter{})
	bounds := search.NewBounds(n)

	start := time.Now()
	result := search.Run(frontier, bounds, n)
	elapsed := time.Since(start)

	return benchResult{n: n, elapsed: elapsed, waste: result.Waste, length: result.Length}, nil
}

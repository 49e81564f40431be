// leapsbounds runs the bounded best-first search for minimal
// superpermutations.
//
// Usage:
//
//	leapsbounds [flags]
//
// With no flags, n, the memory budget, gzip and verbosity are asked for
// interactively (the scratch directory is never prompted for); any of
// those flags explicitly set on the command line skips its corresponding
// prompt, following the same precedence pflag's Changed() tracking
// gives the teacher's own flag-parsing commands.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/leapsbounds/internal/config"
	"github.com/calvinalkan/leapsbounds/internal/fs"
	"github.com/calvinalkan/leapsbounds/internal/report"
	"github.com/calvinalkan/leapsbounds/internal/search"
	"github.com/calvinalkan/leapsbounds/internal/spill"
	"github.com/calvinalkan/leapsbounds/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := flag.NewFlagSet("leapsbounds", flag.ContinueOnError)

	n := flagSet.Int("n", 0, "alphabet size")
	memory := flagSet.Float64("memory", 0, "memory budget in GiB")
	gzip := flagSet.Bool("gzip", false, "gzip scratch files")
	verbose := flagSet.Bool("verbose", false, "print verbose progress")
	scratch := flagSet.String("scratch", "", "scratch directory for disk spill")
	configPath := flagSet.String("config", "", "path to a JSONC config file")
	noninteractive := flagSet.Bool("non-interactive", false, "never prompt; fail if --n is unset")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}

	overrides := config.Config{
		N:              *n,
		MemoryLimitGiB: *memory,
		Gzip:           *gzip,
		Verbose:        *verbose,
		ScratchDir:     *scratch,
	}
	overridden := map[string]bool{
		"n":                flagSet.Changed("n"),
		"memory_limit_gib": flagSet.Changed("memory"),
		"gzip":             flagSet.Changed("gzip"),
		"verbose":          flagSet.Changed("verbose"),
		"scratch_dir":      flagSet.Changed("scratch"),
	}

	if *noninteractive && !overridden["n"] {
		return errNonInteractiveRequiresN
	}

	cfg, _, err := config.Load(workDir, *configPath, overrides, overridden, os.Environ())
	if err != nil {
		return err
	}

	if !*noninteractive {
		cfg, err = promptMissing(cfg, overridden)
		if err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ui.Banner(os.Stdout)

	printer := report.New(os.Stdout, cfg.Verbose)

	disk, err := spill.New(fs.NewReal(), cfg.ScratchDir, cfg.Gzip, cfg.N)
	if err != nil {
		return fmt.Errorf("initializing scratch directory: %w", err)
	}
	defer disk.Close()

	frontier := search.NewFrontier(disk, cfg.MemoryLimitGiB, cfg.N, printer)
	bounds := search.NewBounds(cfg.N)

	result := search.Run(frontier, bounds, cfg.N)

	printer.Final(cfg.N, result)

	return nil
}

// promptMissing fills in any run parameter not explicitly set on the
// command line by asking for it interactively, defaulting to whatever
// config.Load already resolved.
func promptMissing(cfg config.Config, overridden map[string]bool) (config.Config, error) {
	prompter := ui.New()
	defer prompter.Close()

	var err error

	if !overridden["n"] {
		cfg.N, err = prompter.N(cfg.N)
		if err != nil {
			return cfg, err
		}
	}

	if !overridden["memory_limit_gib"] {
		cfg.MemoryLimitGiB, err = prompter.MemoryLimitGiB(cfg.MemoryLimitGiB)
		if err != nil {
			return cfg, err
		}
	}

	if !overridden["gzip"] {
		cfg.Gzip, err = prompter.Gzip(cfg.Gzip)
		if err != nil {
			return cfg, err
		}
	}

	if !overridden["verbose"] {
		cfg.Verbose, err = prompter.Verbose(cfg.Verbose)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

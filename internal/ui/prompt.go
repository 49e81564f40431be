// Package ui implements the interactive startup prompt, grounded on
// cmd/sloty's REPL: a peterh/liner line editor used for single-shot
// prompts rather than a long-running read loop.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// Prompter asks the four startup questions the interactive CLI needs,
// each with a default that an empty response accepts.
type Prompter struct {
	line *liner.State
}

// New returns a Prompter backed by a fresh liner line editor.
func New() *Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	return &Prompter{line: line}
}

// Close releases the underlying terminal state.
func (p *Prompter) Close() error {
	return p.line.Close()
}

// N asks for the alphabet size, defaulting to def.
func (p *Prompter) N(def int) (int, error) {
	answer, err := p.ask(fmt.Sprintf("n (default %d): ", def))
	if err != nil {
		return 0, err
	}

	if answer == "" {
		return def, nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNNotAnInteger, answer)
	}

	return n, nil
}

// MemoryLimitGiB asks for the memory budget in GiB, defaulting to def.
func (p *Prompter) MemoryLimitGiB(def float64) (float64, error) {
	answer, err := p.ask(fmt.Sprintf("memory budget in GiB (default %g): ", def))
	if err != nil {
		return 0, err
	}

	if answer == "" {
		return def, nil
	}

	value, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMemoryNotANumber, answer)
	}

	return value, nil
}

// Gzip asks whether scratch files should be compressed, defaulting to
// def.
func (p *Prompter) Gzip(def bool) (bool, error) {
	return p.askYesNo("gzip scratch files", def)
}

// Verbose asks whether to print verbose progress, defaulting to def.
func (p *Prompter) Verbose(def bool) (bool, error) {
	return p.askYesNo("print verbose progress", def)
}

func (p *Prompter) askYesNo(question string, def bool) (bool, error) {
	defLabel := "y/N"
	if def {
		defLabel = "Y/n"
	}

	answer, err := p.ask(fmt.Sprintf("%s? (%s): ", question, defLabel))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", errNotYesOrNo, answer)
	}
}

func (p *Prompter) ask(question string) (string, error) {
	answer, err := p.line.Prompt(question)
	if err != nil {
		if err == liner.ErrPromptAborted || err == io.EOF {
			return "", errPromptAborted
		}

		return "", fmt.Errorf("reading prompt: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

package spill

import "errors"

// Spill errors. Every one of these is fatal: the search
// state is only globally consistent if every spilled bucket survives, so
// there is no retry path — the caller is expected to propagate and exit.
var (
	errInvalidMagic       = errors.New("spill: invalid file magic")
	errVersionMismatch    = errors.New("spill: file version mismatch")
	errFileTooSmall       = errors.New("spill: file too small to contain a header")
	errTruncatedRecord    = errors.New("spill: truncated candidate record")
	errCandidateCountZero = errors.New("spill: bucket file has zero candidates")
)

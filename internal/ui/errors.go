package ui

import "errors"

var (
	errNNotAnInteger    = errors.New("n must be a positive integer")
	errMemoryNotANumber = errors.New("memory budget must be a number")
	errNotYesOrNo       = errors.New("expected y/yes or n/no")
	errPromptAborted    = errors.New("prompt aborted")
)

package main

import "errors"

var errNonInteractiveRequiresN = errors.New("--non-interactive requires --n")

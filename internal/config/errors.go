package config

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errNInvalid           = errors.New("n must be a positive integer")
	errMemoryInvalid      = errors.New("memory budget must be a positive number of gibibytes")
)

package config

import "errors"

// ErrConfigNotFound reports that a requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig reports a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

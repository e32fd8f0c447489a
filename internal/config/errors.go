package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a setting is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

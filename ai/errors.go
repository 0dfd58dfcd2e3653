package ai

import "errors"

var (
	// ErrInvalidConfig is returned when an embedding configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid ai config")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

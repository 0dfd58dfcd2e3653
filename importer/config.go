package importer

import (
	"fmt"
	"time"
)

const (
	// DefaultBatchSize is the largest inline import the store accepts comfortably.
	DefaultBatchSize = 100

	// DefaultTimeout bounds the wait on one batch's import operation.
	DefaultTimeout = 300 * time.Second
)

// Config holds configuration for an import run.
type Config struct {
	// BatchSize is the maximum number of documents per import request.
	BatchSize int

	// Timeout bounds each batch, including the wait for the store to finish.
	Timeout time.Duration

	// DryRun reports the batch plan without contacting a store.
	DryRun bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		Timeout:   DefaultTimeout,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, c.BatchSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}
	return nil
}

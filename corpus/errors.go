package corpus

import "errors"

var (
	// ErrMalformedRecord is returned when a corpus line cannot be decoded.
	ErrMalformedRecord = errors.New("malformed corpus record")

	// ErrDispatcherRequired is returned when an Assembler is created without a dispatcher.
	ErrDispatcherRequired = errors.New("dispatcher is required")
)

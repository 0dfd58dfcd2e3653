package segment

import "errors"

var (
	// ErrInvalidPattern is returned when a header pattern does not compile.
	ErrInvalidPattern = errors.New("invalid header pattern")

	// ErrNoAnchorGroup is returned when a header pattern has no capture group for the anchor.
	ErrNoAnchorGroup = errors.New("header pattern must capture an anchor group")
)

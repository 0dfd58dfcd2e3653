package format

import "errors"

var (
	// ErrRuleRequired is returned when WithRule is given a nil rule.
	ErrRuleRequired = errors.New("rule required")

	// ErrNoRule is returned when no rule is registered for a document's format.
	ErrNoRule = errors.New("no rule registered for format")
)

package source

import "errors"

var (
	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrDuplicateStem is returned when two entries share a stem.
	ErrDuplicateStem = errors.New("duplicate stem")

	// ErrEmptyPath is returned when an entry has no path.
	ErrEmptyPath = errors.New("entry path cannot be empty")
)

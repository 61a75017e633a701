package domain

import "errors"

var (
	// ErrLoadFailure: the source could not be read. Fatal to the render.
	ErrLoadFailure = errors.New("load failure")
	// ErrMissingColumn: a required column is absent after normalization. Fatal to the render.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoData: the source has no rows for a platform.
	ErrNoData = errors.New("no data for this platform")
	// ErrNoText: rows exist but carry no usable review text.
	ErrNoText = errors.New("no review text found")
	// ErrUnknownPlatform: identifier outside the fixed platform set.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrNotFound is returned by caches and repositories on a miss.
	ErrNotFound = errors.New("not found")
)

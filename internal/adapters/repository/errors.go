package repository

import "errors"

// Sentinel kinds for roster errors.
var (
	// ErrLoad marks a roster that could not be fetched or parsed.
	ErrLoad = errors.New("roster load failed")
	// ErrNotReady is returned until the first successful load.
	ErrNotReady = errors.New("roster not loaded")
)

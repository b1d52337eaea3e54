package matching

import "errors"

// Sentinel errors for malformed match requests.
var (
	// ErrInvalidTopK marks a shortlist size outside the allowed range.
	ErrInvalidTopK = errors.New("invalid shortlist size")
	// ErrEmptyBatch is returned for a batch with no queries.
	ErrEmptyBatch = errors.New("batch has no queries")
	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

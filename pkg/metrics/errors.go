package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrNoSuchMetric = errors.New("no such metric")
)

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config holding the defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Errors returned from this package wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath points at the roster JSON document on disk.
	RosterPath string `koanf:"roster_path"`

	// RosterURL fetches the roster over HTTP instead. It wins over RosterPath.
	RosterURL string `koanf:"roster_url"`

	// LoadTimeoutMS bounds a single roster load.
	LoadTimeoutMS int `koanf:"load_timeout_ms"`

	// TopK is the default shortlist length.
	TopK int `koanf:"top_k"`

	// MaxTopK caps the k a client may ask for.
	MaxTopK int `koanf:"max_top_k"`

	// MinTokenLength is the shortest term the tokenizer keeps.
	MinTokenLength int `koanf:"min_token_length"`

	// StopWords replaces the built-in stop-word list when non-empty.
	StopWords []string `koanf:"stop_words"`

	// BatchWorkers sets how many queries of a batch are ranked at once.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps the number of queries in one batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxDescriptionLength caps the description a client may submit.
	MaxDescriptionLength int `koanf:"max_description_length"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		RosterPath:           "data/matchmaking.json",
		LoadTimeoutMS:        5000,
		TopK:                 3,
		MaxTopK:              25,
		MinTokenLength:       3,
		BatchWorkers:         runtime.NumCPU(),
		MaxBatchSize:         100,
		MaxDescriptionLength: 5000,
	}
}

// LoadTimeout returns LoadTimeoutMS as a duration.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMS) * time.Millisecond
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RosterPath == "" && c.RosterURL == "":
		return fmt.Errorf("%w: one of roster_path or roster_url must be set", ErrInvalidConfig)
	case c.LoadTimeoutMS <= 0:
		return fmt.Errorf("%w: load_timeout_ms must be positive", ErrInvalidConfig)
	case c.TopK < 1:
		return fmt.Errorf("%w: top_k must be at least 1", ErrInvalidConfig)
	case c.MaxTopK < c.TopK:
		return fmt.Errorf("%w: max_top_k must not be below top_k", ErrInvalidConfig)
	case c.MinTokenLength < 1:
		return fmt.Errorf("%w: min_token_length must be at least 1", ErrInvalidConfig)
	case c.BatchWorkers < 1:
		return fmt.Errorf("%w: batch_workers must be at least 1", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be at least 1", ErrInvalidConfig)
	case c.MaxDescriptionLength < 1:
		return fmt.Errorf("%w: max_description_length must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScorerURL points at the external scoring endpoint.
	ScorerURL string `koanf:"scorer_url"`

	// ScorerMaxRetries bounds the total attempts per score fetch.
	ScorerMaxRetries int `koanf:"scorer_max_retries"`

	// ScorerTimeoutMS caps each upstream attempt in milliseconds.
	ScorerTimeoutMS int `koanf:"scorer_timeout_ms"`

	// ScorerBatchConcurrency bounds parallel fetches in one batch.
	ScorerBatchConcurrency int `koanf:"scorer_batch_concurrency"`

	// PrefetchWorkers sets the number of background score workers.
	PrefetchWorkers int `koanf:"prefetch_workers"`

	// QueueSize bounds the in-memory score prefetch queue.
	QueueSize int `koanf:"queue_size"`

	// MaxTeamSize caps the requested team size on the form-team endpoint.
	MaxTeamSize int `koanf:"max_team_size"`

	// MaxCandidates caps the candidate pool on the form-team endpoint.
	MaxCandidates int `koanf:"max_candidates"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8000",
		ScorerURL:              "http://localhost:9001/api/v1/special-score",
		ScorerMaxRetries:       5,
		ScorerTimeoutMS:        30_000,
		ScorerBatchConcurrency: runtime.NumCPU() * 4,
		PrefetchWorkers:        runtime.NumCPU(),
		QueueSize:              10_000,
		MaxTeamSize:            10,
		MaxCandidates:          100,
	}
}

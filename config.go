package pqsort

import (
	"runtime"
)

// Config holds configuration settings for a Sorter
type Config struct {
	NumWorkers      int // size of the worker pool, also bounds the parallel recursion depth
	MinParallelSize int // sequences shorter than this are sorted sequentially, 0 disables the cutoff
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		NumWorkers:      runtime.NumCPU(),
		MinParallelSize: 0,
	}
}

// mergeConfig takes a provided config and replaces any optional values not set with the defaults.
// NumWorkers is not defaulted: a worker count below one is a configuration error.
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	merged := *c
	if merged.MinParallelSize < 0 {
		merged.MinParallelSize = d.MinParallelSize
	}
	return &merged
}

// validate reports a ConfigError for settings the sorter cannot run with
func (c *Config) validate() error {
	if c.NumWorkers < 1 {
		return NewConfigError("NumWorkers", c.NumWorkers, "must be at least 1")
	}
	return nil
}

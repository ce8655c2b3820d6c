package harness

import (
	"fmt"
	"time"
)

// Config describes one measured run. Immutable once handed to New; the
// harness validates it before any worker or shared state exists.
type Config struct {
	// Workers is the number of participants, including the caller, which
	// runs worker 0 inline. Must be >= 1.
	Workers int

	// Total is the wall-clock budget of the run, evaluated only by
	// worker 0. Must be positive. The CLI deals in whole seconds; the
	// harness accepts any positive duration so tests can run short.
	Total time.Duration
}

// ConfigError reports a configuration rejected before the run started.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate rejects configurations that could never produce a run. It runs
// before the barrier, the stop flag, or any worker is created.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("must be >= 1, got %d", c.Workers)}
	}
	if c.Total <= 0 {
		return &ConfigError{Field: "total", Reason: fmt.Sprintf("must be positive, got %v", c.Total)}
	}
	return nil
}

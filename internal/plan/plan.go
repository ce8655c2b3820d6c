// Package plan loads run plans: named YAML profiles bundling the knobs of
// one workload shape so measurement campaigns can be replayed by file
// instead of by remembering flag combinations.
package plan

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tdurand/strobe/internal/harness"
	"github.com/tdurand/strobe/internal/workload"
)

// Plan is one workload profile.
type Plan struct {
	// Name identifies the profile in logs and the trace store.
	Name string `yaml:"name"`

	// Description explains what the profile is for.
	Description string `yaml:"description,omitempty"`

	// Workers is the participant count, including the driving thread.
	Workers int `yaml:"workers"`

	// Seconds is the wall-clock budget of the run.
	Seconds int `yaml:"seconds"`

	// PhaseMillis is the length of one phase window in milliseconds.
	// Zero means the default of one second.
	PhaseMillis int `yaml:"phase_millis,omitempty"`

	// IdleChancePct is the percent probability of light work per idle
	// poll. Zero means the default.
	IdleChancePct int `yaml:"idle_chance_pct,omitempty"`
}

// Load reads and parses a plan file. Unknown fields are rejected so a typo
// in a knob name fails the load instead of silently running the default.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

// Validate checks required fields and value ranges.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", p.Workers)
	}
	if p.Seconds < 1 {
		return fmt.Errorf("seconds must be >= 1, got %d", p.Seconds)
	}
	if p.PhaseMillis < 0 {
		return fmt.Errorf("phase_millis must not be negative, got %d", p.PhaseMillis)
	}
	if p.IdleChancePct < 0 || p.IdleChancePct > 100 {
		return fmt.Errorf("idle_chance_pct must be in [0, 100], got %d", p.IdleChancePct)
	}
	return nil
}

// HarnessConfig converts the plan to a harness configuration.
func (p *Plan) HarnessConfig() harness.Config {
	return harness.Config{
		Workers: p.Workers,
		Total:   time.Duration(p.Seconds) * time.Second,
	}
}

// WorkloadOptions returns the workload knobs the plan overrides.
func (p *Plan) WorkloadOptions() []workload.Option {
	var opts []workload.Option
	if p.PhaseMillis > 0 {
		opts = append(opts, workload.WithPhaseDuration(time.Duration(p.PhaseMillis)*time.Millisecond))
	}
	if p.IdleChancePct > 0 {
		opts = append(opts, workload.WithIdleChance(p.IdleChancePct))
	}
	return opts
}

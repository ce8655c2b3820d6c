// Package harness drives a set of workers through alternating busy and idle
// CPU phases for an external measurement tool.
//
// One run: every worker rendezvous at a reusable barrier, then cycles
// busy phase, idle phase, emitting a marker at each phase boundary. The
// caller's own goroutine acts as worker 0; it alone watches the wall-clock
// budget and requests the stop that the other workers observe at cycle
// boundaries. The harness joins every worker before it returns, so the
// barrier and the shared stop flag never outlive their users.
package harness

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tdurand/strobe/internal/barrier"
	"github.com/tdurand/strobe/internal/sim"
	"github.com/tdurand/strobe/internal/workload"
)

// Factory builds the workload for one worker. Each worker gets its own
// value so random sources and operand buffers stay thread-local.
type Factory func(worker int) workload.Workload

// Summary describes a completed run.
type Summary struct {
	// Token identifies the run in logs and the trace store.
	Token string

	// Workers is the participant count, including worker 0.
	Workers int

	// Elapsed is the wall time from worker 0 entering its own cycle,
	// just before it arrives at the barrier, to the last join.
	Elapsed time.Duration

	// Cycles holds the completed busy+idle pair count per worker.
	Cycles []int64
}

// Harness coordinates one measured run.
type Harness struct {
	cfg     Config
	inst    sim.Instrument
	factory Factory
	tokens  TokenGenerator
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithInstrument attaches a marker backend. Defaults to sim.Nop.
func WithInstrument(inst sim.Instrument) Option {
	return func(h *Harness) {
		h.inst = inst
	}
}

// WithWorkloadFactory replaces the per-worker workload constructor. Tests
// use it to substitute fast deterministic phases for the CPU kernels.
func WithWorkloadFactory(f Factory) Option {
	return func(h *Harness) {
		h.factory = f
	}
}

// WithTokenGenerator replaces the run-token source. Defaults to UUIDv7;
// tests use a FixedGenerator for deterministic traces.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(h *Harness) {
		h.tokens = g
	}
}

// WithClock replaces the wall-clock source used for the time budget.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		h.now = now
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(h *Harness) {
		h.log = log
	}
}

// New creates a harness for the given configuration. The configuration is
// validated here, before any shared state exists; an invalid one is the
// only non-fatal failure the harness knows.
func New(cfg Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:    cfg,
		inst:   sim.Nop{},
		tokens: UUIDv7Generator{},
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.factory == nil {
		h.factory = func(worker int) workload.Workload {
			return workload.New(worker)
		}
	}
	return h, nil
}

// Run executes one measured run and blocks until every worker has been
// joined. The ROI markers bracket everything: region start and the "begin"
// marker precede the first spawn, the "end" marker and region end follow
// the last join, so no phase marker is ever emitted outside the region.
func (h *Harness) Run() (*Summary, error) {
	token := h.tokens.Generate()
	h.log.Info("run starting",
		"token", token,
		"workers", h.cfg.Workers,
		"total", h.cfg.Total,
	)

	// Owned here, shared by reference with every worker, and dropped only
	// after the join below: no worker can observe either after the run.
	bar := barrier.New(h.cfg.Workers)
	st := &runState{}
	cycles := make([]int64, h.cfg.Workers)

	h.inst.RegionStart()
	h.inst.NamedMarker(sim.NamedBegin, "begin")

	var wg sync.WaitGroup
	for i := 1; i < h.cfg.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			h.cycle(worker, bar, st, &cycles[worker])
		}(i)
	}

	started := h.now()
	h.cycle(0, bar, st, &cycles[0])
	wg.Wait()
	elapsed := h.now().Sub(started)

	h.inst.NamedMarker(sim.NamedEnd, "end")
	h.inst.RegionEnd()

	h.log.Info("run complete",
		"token", token,
		"elapsed", elapsed,
		"cycles", cycles,
	)

	return &Summary{
		Token:   token,
		Workers: h.cfg.Workers,
		Elapsed: elapsed,
		Cycles:  cycles,
	}, nil
}

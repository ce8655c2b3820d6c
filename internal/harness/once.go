package harness

import (
	"github.com/tdurand/strobe/internal/sim"
)

// RunCycles executes a fixed number of busy+idle cycles on the calling
// goroutine alone: no barrier, no spawned workers, no time budget. It is
// the single-shot variant for calibrating or eyeballing a trace where the
// cycle count, not the wall clock, should decide the run length.
func (h *Harness) RunCycles(n int) (*Summary, error) {
	if n < 1 {
		return nil, &ConfigError{Field: "cycles", Reason: "must be >= 1"}
	}

	token := h.tokens.Generate()
	h.log.Info("single-shot run starting", "token", token, "cycles", n)

	h.inst.RegionStart()
	h.inst.NamedMarker(sim.NamedBegin, "begin")
	h.inst.SetThreadName(workerName(0))

	w := h.factory(0)
	started := h.now()
	var done int64
	for i := 0; i < n; i++ {
		h.inst.PhaseMarker(sim.MarkerBusyStart, 0)
		w.Busy()
		h.inst.PhaseMarker(sim.MarkerBusyEnd, 0)

		h.inst.PhaseMarker(sim.MarkerIdleStart, 0)
		w.Idle()
		h.inst.PhaseMarker(sim.MarkerIdleEnd, 0)
		done++
	}
	elapsed := h.now().Sub(started)

	h.inst.NamedMarker(sim.NamedEnd, "end")
	h.inst.RegionEnd()

	h.log.Info("single-shot run complete", "token", token, "elapsed", elapsed)

	return &Summary{
		Token:   token,
		Workers: 1,
		Elapsed: elapsed,
		Cycles:  []int64{done},
	}, nil
}

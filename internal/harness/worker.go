package harness

import (
	"github.com/tdurand/strobe/internal/barrier"
	"github.com/tdurand/strobe/internal/sim"
)

// cycle is one worker's control loop: label the worker, seed its private
// workload, rendezvous with every other worker, then alternate busy and
// idle phases until the run is over.
//
// Worker 0 is the only worker that looks at the clock; it checks the budget
// before each cycle and, once the budget is spent, flips the shared stop
// flag and leaves. Every other worker is purely reactive: it polls the flag
// after each cycle, so it overruns a stop request by at most one cycle.
func (h *Harness) cycle(worker int, bar *barrier.Barrier, st *runState, cycles *int64) {
	h.inst.SetThreadName(workerName(worker))
	w := h.factory(worker)

	// No worker starts its first busy phase until all have arrived, so the
	// external tool observes a synchronized start.
	bar.Arrive()
	start := h.now()

	for {
		if worker == 0 && h.now().Sub(start) >= h.cfg.Total {
			st.requestStop()
			break
		}

		h.inst.PhaseMarker(sim.MarkerBusyStart, worker)
		w.Busy()
		h.inst.PhaseMarker(sim.MarkerBusyEnd, worker)

		h.inst.PhaseMarker(sim.MarkerIdleStart, worker)
		w.Idle()
		h.inst.PhaseMarker(sim.MarkerIdleEnd, worker)

		*cycles++

		if st.stopped() {
			break
		}
	}
}

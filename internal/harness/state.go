package harness

import (
	"fmt"
	"sync/atomic"
)

// runState is the shared state of one run. Exactly one instance exists per
// run; the harness owns it and lets it go out of scope only after every
// worker has been joined.
//
// The stop flag has a single writer: worker 0, the only worker that
// evaluates the time budget. All workers read it at cycle boundaries.
type runState struct {
	stop atomic.Bool
}

func (s *runState) requestStop() {
	s.stop.Store(true)
}

func (s *runState) stopped() bool {
	return s.stop.Load()
}

// workerName is the label reported to the instrumentation backend, matching
// the thread0..threadN-1 convention external tooling expects.
func workerName(worker int) string {
	return fmt.Sprintf("thread%d", worker)
}

// Package sim defines the instrumentation port through which the harness
// reports its progress to an external measurement tool.
//
// The port mirrors the Sniper-style magic-instruction API: a region of
// interest (ROI) bracketing the whole measured run, singular named markers,
// and per-worker phase-boundary markers. All calls are fire-and-forget; the
// harness never blocks on, or branches on, anything an Instrument does.
package sim

// Marker ids for per-worker phase boundaries.
const (
	MarkerBusyStart = 1
	MarkerBusyEnd   = 2
	MarkerIdleStart = 3
	MarkerIdleEnd   = 4
)

// Named-marker ids bracketing the run inside the ROI.
const (
	NamedBegin = 4
	NamedEnd   = 5
)

// Instrument receives execution markers from the harness.
//
// Implementations must be safe for concurrent use: every worker emits phase
// markers and its thread name from its own goroutine.
type Instrument interface {
	// RegionStart and RegionEnd bracket the measured region of interest.
	RegionStart()
	RegionEnd()

	// NamedMarker reports a singular labeled event, e.g. begin/end of the run.
	NamedMarker(id int, label string)

	// PhaseMarker reports a phase boundary for one worker. id is one of the
	// Marker* constants; worker is the emitting worker's index.
	PhaseMarker(id int, worker int)

	// SetThreadName labels the calling worker for the external tool.
	// Cosmetic; called once per worker before its first phase.
	SetThreadName(name string)
}

// Nop discards every marker. It is the default backend when no external
// tool or recorder is attached.
type Nop struct{}

func (Nop) RegionStart()            {}
func (Nop) RegionEnd()              {}
func (Nop) NamedMarker(int, string) {}
func (Nop) PhaseMarker(int, int)    {}
func (Nop) SetThreadName(string)    {}

// Tee fans every marker out to each of its backends in order.
type Tee []Instrument

func (t Tee) RegionStart() {
	for _, in := range t {
		in.RegionStart()
	}
}

func (t Tee) RegionEnd() {
	for _, in := range t {
		in.RegionEnd()
	}
}

func (t Tee) NamedMarker(id int, label string) {
	for _, in := range t {
		in.NamedMarker(id, label)
	}
}

func (t Tee) PhaseMarker(id int, worker int) {
	for _, in := range t {
		in.PhaseMarker(id, worker)
	}
}

func (t Tee) SetThreadName(name string) {
	for _, in := range t {
		in.SetThreadName(name)
	}
}

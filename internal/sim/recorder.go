package sim

import (
	"fmt"
	"strings"
	"sync"
)

// EventKind distinguishes the recorded marker calls.
type EventKind string

const (
	EventRegionStart EventKind = "region-start"
	EventRegionEnd   EventKind = "region-end"
	EventNamed       EventKind = "named"
	EventPhase       EventKind = "phase"
	EventThreadName  EventKind = "thread-name"
)

// Event is one recorded marker call, in arrival order.
type Event struct {
	Seq    int64
	Kind   EventKind
	ID     int    // marker id for named/phase events
	Worker int    // emitting worker for phase events
	Label  string // label for named events, name for thread-name events
}

// Recorder is an Instrument that keeps every marker in memory.
//
// It backs tests and the trace store: markers arrive from all worker
// goroutines and are sequenced under a single mutex, so Seq reflects
// a total arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev.Seq = int64(len(r.events) + 1)
	r.events = append(r.events, ev)
}

func (r *Recorder) RegionStart() {
	r.record(Event{Kind: EventRegionStart})
}

func (r *Recorder) RegionEnd() {
	r.record(Event{Kind: EventRegionEnd})
}

func (r *Recorder) NamedMarker(id int, label string) {
	r.record(Event{Kind: EventNamed, ID: id, Label: label})
}

func (r *Recorder) PhaseMarker(id int, worker int) {
	r.record(Event{Kind: EventPhase, ID: id, Worker: worker})
}

func (r *Recorder) SetThreadName(name string) {
	r.record(Event{Kind: EventThreadName, Label: name})
}

// Events returns a copy of everything recorded so far, in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Render formats the recorded events as one line per event. The format is
// stable and used for golden-file comparison of deterministic runs.
func (r *Recorder) Render() string {
	var b strings.Builder
	for _, ev := range r.Events() {
		switch ev.Kind {
		case EventNamed:
			fmt.Fprintf(&b, "%s id=%d label=%s\n", ev.Kind, ev.ID, ev.Label)
		case EventPhase:
			fmt.Fprintf(&b, "%s id=%d worker=%d\n", ev.Kind, ev.ID, ev.Worker)
		case EventThreadName:
			fmt.Fprintf(&b, "%s name=%s\n", ev.Kind, ev.Label)
		default:
			fmt.Fprintf(&b, "%s\n", ev.Kind)
		}
	}
	return b.String()
}

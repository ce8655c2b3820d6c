package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_SequencesInArrivalOrder(t *testing.T) {
	rec := NewRecorder()

	rec.RegionStart()
	rec.NamedMarker(NamedBegin, "begin")
	rec.SetThreadName("thread0")
	rec.PhaseMarker(MarkerBusyStart, 0)
	rec.PhaseMarker(MarkerBusyEnd, 0)
	rec.NamedMarker(NamedEnd, "end")
	rec.RegionEnd()

	events := rec.Events()
	require.Len(t, events, 7)
	for i, ev := range events {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
	assert.Equal(t, EventRegionStart, events[0].Kind)
	assert.Equal(t, Event{Seq: 4, Kind: EventPhase, ID: MarkerBusyStart, Worker: 0}, events[3])
	assert.Equal(t, EventRegionEnd, events[6].Kind)
}

func TestRecorder_EventsReturnsACopy(t *testing.T) {
	rec := NewRecorder()
	rec.RegionStart()

	events := rec.Events()
	events[0].Kind = EventRegionEnd

	assert.Equal(t, EventRegionStart, rec.Events()[0].Kind)
}

func TestRecorder_ConcurrentMarkers(t *testing.T) {
	const workers = 8
	const perWorker = 200

	rec := NewRecorder()
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rec.PhaseMarker(MarkerBusyStart, worker)
			}
		}(w)
	}
	wg.Wait()

	events := rec.Events()
	require.Len(t, events, workers*perWorker)

	seen := make(map[int64]bool)
	for _, ev := range events {
		assert.False(t, seen[ev.Seq], "seq %d assigned twice", ev.Seq)
		seen[ev.Seq] = true
	}
}

func TestRecorder_Render(t *testing.T) {
	rec := NewRecorder()
	rec.RegionStart()
	rec.NamedMarker(NamedBegin, "begin")
	rec.SetThreadName("thread0")
	rec.PhaseMarker(MarkerIdleEnd, 3)
	rec.RegionEnd()

	want := "region-start\n" +
		"named id=4 label=begin\n" +
		"thread-name name=thread0\n" +
		"phase id=4 worker=3\n" +
		"region-end\n"
	assert.Equal(t, want, rec.Render())
}

func TestTee_FansOutToAllBackends(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	tee := Tee{a, b}

	tee.RegionStart()
	tee.NamedMarker(NamedBegin, "begin")
	tee.SetThreadName("thread0")
	tee.PhaseMarker(MarkerBusyStart, 1)
	tee.RegionEnd()

	assert.Equal(t, a.Events(), b.Events())
	assert.Len(t, a.Events(), 5)
}

func TestNop_ImplementsInstrument(t *testing.T) {
	var inst Instrument = Nop{}

	// Must all be safe no-ops.
	inst.RegionStart()
	inst.NamedMarker(NamedBegin, "begin")
	inst.PhaseMarker(MarkerBusyStart, 0)
	inst.SetThreadName("thread0")
	inst.RegionEnd()
}

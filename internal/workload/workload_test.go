package workload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusy_FeedsResultSink(t *testing.T) {
	w := New(0, WithSeed(1), WithPhaseDuration(time.Millisecond))

	before := SinkValue()
	w.Busy()
	assert.NotEqual(t, before, SinkValue(), "busy phase must leave an observable result")
}

func TestBusy_RunsForAtLeastThePhaseWindow(t *testing.T) {
	const phase = 20 * time.Millisecond
	w := New(0, WithSeed(1), WithPhaseDuration(phase))

	start := time.Now()
	w.Busy()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, phase)
	// One buffer pass costs microseconds, so the overrun past the window
	// stays far below a second.
	assert.Less(t, elapsed, phase+time.Second)
}

func TestIdle_SleepsThroughThePhaseWindow(t *testing.T) {
	const phase = 20 * time.Millisecond
	w := New(0, WithSeed(1), WithPhaseDuration(phase))

	start := time.Now()
	w.Idle()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, phase)
}

func TestIdle_ZeroChanceSkipsLightWork(t *testing.T) {
	// With idle work disabled the phase is pure sleep; it still must feed
	// the sink so the call as a whole stays non-elidable.
	w := New(0, WithSeed(1), WithPhaseDuration(time.Millisecond), WithIdleChance(0))

	before := SinkValue()
	w.Idle()
	assert.NotEqual(t, before, SinkValue())
}

func TestRefill_DeterministicForSeed(t *testing.T) {
	w1 := New(0, WithSeed(42))
	w2 := New(7, WithSeed(42))

	w1.refill()
	w2.refill()
	assert.Equal(t, w1.buf, w2.buf, "same seed must produce the same operand buffer")
}

func TestRefill_DivergesAcrossSeeds(t *testing.T) {
	w1 := New(0, WithSeed(1))
	w2 := New(1, WithSeed(2))

	w1.refill()
	w2.refill()
	assert.NotEqual(t, w1.buf, w2.buf, "distinct seeds must decorrelate the buffers")
}

func TestRefill_ValuesInRange(t *testing.T) {
	w := New(0, WithSeed(3))
	w.refill()

	for i, v := range w.buf {
		require.GreaterOrEqual(t, v, int64(-100), "buf[%d]", i)
		require.LessOrEqual(t, v, int64(100), "buf[%d]", i)
	}
}

func TestBusyPass_MutatesBuffer(t *testing.T) {
	w := New(0, WithSeed(5))
	w.refill()

	before := w.buf
	w.busyPass()
	assert.NotEqual(t, before, w.buf, "successive passes must diverge")
}

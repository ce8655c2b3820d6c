package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdurand/strobe/internal/sim"
)

func TestRunCycles_RunsExactCount(t *testing.T) {
	rec := sim.NewRecorder()

	var busyRuns, idleRuns int
	h, err := New(
		Config{Workers: 1, Total: time.Second},
		WithInstrument(rec),
		WithTokenGenerator(NewFixedGenerator("once-1")),
		WithWorkloadFactory(stubFactory(
			func() { busyRuns++ },
			func() { idleRuns++ },
		)),
	)
	require.NoError(t, err)

	summary, err := h.RunCycles(3)
	require.NoError(t, err)

	assert.Equal(t, "once-1", summary.Token)
	assert.Equal(t, []int64{3}, summary.Cycles)
	assert.Equal(t, 3, busyRuns)
	assert.Equal(t, 3, idleRuns)

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, sim.EventRegionStart, events[0].Kind)
	assert.Equal(t, sim.EventRegionEnd, events[len(events)-1].Kind)

	phases := 0
	for _, ev := range events {
		if ev.Kind == sim.EventPhase {
			phases++
			assert.Equal(t, 0, ev.Worker)
		}
	}
	assert.Equal(t, 3*4, phases, "four phase markers per cycle")
}

func TestRunCycles_RejectsNonPositiveCount(t *testing.T) {
	h, err := New(Config{Workers: 1, Total: time.Second})
	require.NoError(t, err)

	for _, n := range []int{0, -1} {
		summary, err := h.RunCycles(n)
		require.Error(t, err)
		assert.Nil(t, summary)

		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	}
}

package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animseq/util"
)

func intp(n int) *int { return &n }

func steps(durations ...float64) []Step {
	out := make([]Step, len(durations))
	for i, d := range durations {
		out[i] = DefaultStep()
		out[i].Index = intp(i)
		out[i].Duration = d
	}
	return out
}

func TestScheduleForward(t *testing.T) {
	timings, total := Schedule(steps(1, 1, 1), true)

	assert.InDelta(t, 3.0, total, 1e-9)
	assert.Equal(t, 0.0, timings[util.Index(0)].Delay)
	assert.Equal(t, 1.0, timings[util.Index(1)].Delay)
	assert.Equal(t, 2.0, timings[util.Index(2)].Delay)

	for _, timing := range timings {
		assert.True(t, timing.Play)
		assert.False(t, timing.Pause)
		assert.True(t, timing.Controlled)
		assert.Equal(t, 1.0, timing.Span)
	}
}

func TestScheduleReverse(t *testing.T) {
	timings, total := Schedule(steps(1, 1, 1), false)

	assert.InDelta(t, 3.0, total, 1e-9)
	assert.Equal(t, 2.0, timings[util.Index(0)].Delay)
	assert.Equal(t, 1.0, timings[util.Index(1)].Delay)
	assert.Equal(t, 0.0, timings[util.Index(2)].Delay)
	assert.True(t, timings[util.Index(0)].Pause)
	assert.False(t, timings[util.Index(0)].Play)
}

func TestScheduleOverlay(t *testing.T) {
	s := steps(1, 1)
	s[0].Overlay = 0.3

	timings, total := Schedule(s, true)
	assert.InDelta(t, 0.7, timings[util.Index(1)].Delay, 1e-9)
	assert.InDelta(t, 1.7, total, 1e-9)
}

func TestScheduleDelays(t *testing.T) {
	s := steps(1, 1, 1)
	s[0].Delay = 0.5
	s[2].Delay = 0.25

	timings, total := Schedule(s, true)
	assert.Equal(t, 0.5, timings[util.Index(0)].Delay)
	assert.Equal(t, 1.5, timings[util.Index(1)].Delay)
	assert.Equal(t, 2.0, timings[util.Index(2)].Delay, "a delay without an overlay does not move the start")
	assert.Equal(t, 3.75, total)
}

func TestScheduleDelayWithOverlay(t *testing.T) {
	s := steps(1, 1, 1)
	s[1].Overlay = 0.5
	s[1].Delay = 0.25
	s[2].Delay = 0.25

	timings, total := Schedule(s, true)
	assert.Equal(t, 1.25, timings[util.Index(1)].Delay)
	assert.Equal(t, 1.75, timings[util.Index(2)].Delay)
	assert.Equal(t, 3.0, total)
}

func TestScheduleOverlayLargerThanStep(t *testing.T) {
	s := steps(0.2, 1)
	s[0].Overlay = 1

	timings, total := Schedule(s, true)
	assert.Equal(t, 0.0, timings[util.Index(1)].Delay)
	assert.Equal(t, 1.0, total)
}

func TestPlanPositionalFallback(t *testing.T) {
	s := []Step{DefaultStep(), DefaultStep()}
	s[0].Duration = 1
	s[1].ID = "second"

	entries, _ := Plan(s, false)
	require.Len(t, entries, 2)
	assert.Equal(t, util.Named("second"), entries[0].ID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, util.Index(1), entries[1].ID, "fallback uses the playback position")
	assert.Equal(t, 0, entries[1].Position)
}

func TestPlanEmpty(t *testing.T) {
	entries, total := Plan(nil, true)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, total)
}

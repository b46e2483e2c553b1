package stream

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/util"
)

const controllerSequence = `
play: true
steps:
  - duration: 1
    start: {opacity: 0}
    end: {opacity: 1}
  - sequenceId: glow
    duration: 0.5
    keyframes:
      - "opacity: 0.2"
      - "opacity: 1"
  - duration: 1
    start: {left: 0px}
    end: {left: 10px}
`

type sinkSet struct {
	mu    sync.Mutex
	sinks map[util.ID]*recordingSink
}

func (s *sinkSet) For(id util.ID) Sink {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sinks == nil {
		s.sinks = make(map[util.ID]*recordingSink)
	}
	r := &recordingSink{}
	s.sinks[id] = r
	return r
}

func newTestController(t *testing.T) (*Controller, *sinkSet) {
	t.Helper()
	f, err := sequence.Load(strings.NewReader(controllerSequence))
	require.NoError(t, err)
	sinks := &sinkSet{}
	c, err := NewController(f, sinks.For, WithRegistry(quietRegistry()), WithScheduler(&fakeScheduler{}))
	require.NoError(t, err)
	return c, sinks
}

func TestControllerForward(t *testing.T) {
	c, sinks := newTestController(t)
	c.Mount()
	defer c.Unmount()

	assert.True(t, c.Playing())
	assert.InDelta(t, 2.5, c.Span(), 1e-9)

	states := c.States()
	require.Len(t, states, 3)
	assert.Equal(t, []string{"0", "glow", "2"}, []string{states[0].ID, states[1].ID, states[2].ID})
	assert.InDelta(t, 0, states[0].Delay, 1e-9)
	assert.InDelta(t, 1, states[1].Delay, 1e-9)
	assert.InDelta(t, 1.5, states[2].Delay, 1e-9)
	for _, s := range states {
		assert.Equal(t, "playing", s.State)
	}

	v, _ := sinks.sinks[util.Index(2)].Last().Get("transition")
	assert.Equal(t, "all 1s linear 1.5s", v)
	assert.Equal(t, 2, strings.Count(c.StyleSheet(), "@keyframes"))
}

func TestControllerReverse(t *testing.T) {
	c, _ := newTestController(t)
	c.Mount()
	defer c.Unmount()

	c.Play(false)
	states := c.States()
	assert.InDelta(t, 1.5, states[0].Delay, 1e-9)
	assert.InDelta(t, 1, states[1].Delay, 1e-9)
	assert.InDelta(t, 0, states[2].Delay, 1e-9)
	assert.Equal(t, "idle", states[1].State)

	v, _ := states[1].Style.Get("animation")
	assert.Contains(t, v, "paused RSI-")
}

func TestControllerFrame(t *testing.T) {
	c, _ := newTestController(t)
	c.Mount()

	f := c.Frame(time.Now())
	require.Len(t, f.Steps, 3)
	assert.Equal(t, "glow", f.Steps[1].ID)

	c.Unmount()
	assert.Empty(t, c.Frame(time.Now()).Steps)
	assert.Equal(t, "", c.StyleSheet())
}

func TestControllerRejectsDuplicateIdentity(t *testing.T) {
	one := 1
	a, b := sequence.DefaultStep(), sequence.DefaultStep()
	b.Index = &one
	// the first step falls back to index 0, the third collides with b
	c := sequence.DefaultStep()
	c.Index = &one
	_, err := NewController(&sequence.File{Steps: []sequence.Step{a, b, c}}, nil, WithRegistry(quietRegistry()))
	assert.EqualError(t, err, "steps 1 and 2 share identity 1")
}

package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animseq/util"
)

func TestGroupDeclared(t *testing.T) {
	g := NewGroup(true, steps(1, 1, 1)...)

	var seen []Timings
	cancel := g.Subscribe(func(t Timings) { seen = append(seen, t) })

	g.Mount()
	require.Len(t, seen, 1)
	assert.Equal(t, 2.0, seen[0][util.Index(2)].Delay)
	assert.Equal(t, 3.0, g.Span())
	assert.True(t, g.Playing())

	g.SetPlay(true)
	assert.Len(t, seen, 1, "unchanged play flag does not recompute")

	g.SetPlay(false)
	require.Len(t, seen, 2)
	assert.Equal(t, 0.0, seen[1][util.Index(2)].Delay)
	timing, ok := g.Timing(util.Index(0))
	require.True(t, ok)
	assert.Equal(t, 2.0, timing.Delay)
	assert.True(t, timing.Pause)

	cancel()
	g.SetPlay(true)
	assert.Len(t, seen, 2)
}

func TestGroupSetPlayBeforeMount(t *testing.T) {
	g := NewGroup(false, steps(1)...)
	g.SetPlay(true)
	assert.Empty(t, g.Timings())

	g.Mount()
	timing, ok := g.Timing(util.Index(0))
	require.True(t, ok)
	assert.True(t, timing.Play)
}

func TestGroupDiscoveredOrder(t *testing.T) {
	g := NewGroup(true)

	named := DefaultStep()
	named.ID = "title"
	named.Duration = 1
	g.Register(named)

	for _, i := range []int{2, 0} {
		s := DefaultStep()
		s.Index = intp(i)
		s.Duration = 1
		g.Register(s)
	}

	anonymous := DefaultStep()
	g.Register(anonymous)

	ordered := g.Steps()
	require.Len(t, ordered, 3)
	assert.Equal(t, 0, *ordered[0].Index)
	assert.Equal(t, 2, *ordered[1].Index)
	assert.Equal(t, "title", ordered[2].ID)

	g.Mount()
	timings := g.Timings()
	assert.Equal(t, 0.0, timings[util.Index(0)].Delay)
	assert.Equal(t, 1.0, timings[util.Index(2)].Delay)
	assert.Equal(t, 2.0, timings[util.Named("title")].Delay)
}

func TestGroupRegisterReplacesAndDeregisters(t *testing.T) {
	g := NewGroup(true)

	s := DefaultStep()
	s.ID = "a"
	s.Duration = 1
	g.Register(s)
	s.Duration = 2
	g.Register(s)

	other := DefaultStep()
	other.ID = "b"
	g.Register(other)

	ordered := g.Steps()
	require.Len(t, ordered, 2)
	assert.Equal(t, 2.0, ordered[0].Duration)

	g.Deregister(util.Named("a"))
	g.Deregister(util.Named("missing"))
	ordered = g.Steps()
	require.Len(t, ordered, 1)
	assert.Equal(t, "b", ordered[0].ID)
}

func TestGroupDeclaredWinsOverRegistered(t *testing.T) {
	g := NewGroup(true, steps(1)...)
	s := DefaultStep()
	s.ID = "ignored"
	g.Register(s)

	assert.Len(t, g.Steps(), 1)
}

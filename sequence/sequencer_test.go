package sequence

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/style"
)

func TestSequencer(t *testing.T) {
	registry := sheet.NewRegistry()

	fade := DefaultStep()
	fade.Duration = 1
	fade.Start = style.Props{{Name: "opacity", Value: "0"}}
	fade.End = style.Props{{Name: "opacity", Value: "1"}}

	pulse := DefaultStep()
	pulse.Duration = 0.5
	pulse.Keyframes = []keyframe.Keyframe{keyframe.Raw("opacity: 0"), keyframe.Raw("opacity: 1")}

	s := NewSequencer(registry, fade, pulse)
	assert.Equal(t, []style.Props{fade.Start, nil}, s.Styles())

	s.Mount()
	sh := registry.Sheet()
	require.NotNil(t, sh)
	require.Equal(t, 2, sh.Len())
	rules := sh.Rules()
	forward, reverse := rules[0].Name, rules[1].Name

	styles := s.Play(true)
	assert.True(t, s.Playing())
	require.Len(t, styles, 2)
	assert.Equal(t, style.Props{{Name: "opacity", Value: "1"}, {Name: "transition", Value: "all 1s linear 0s"}}, styles[0])
	assert.Equal(t, style.Props{{Name: "animation", Value: "0.5s linear 1s 1 normal none running " + forward}}, styles[1])

	styles = s.Play(false)
	assert.False(t, s.Playing())
	assert.Equal(t, style.Props{{Name: "opacity", Value: "0"}, {Name: "transition", Value: "all 1s linear 0.5s"}}, styles[0])
	assert.Equal(t, style.Props{{Name: "animation", Value: "0.5s linear 0s 1 normal none running " + reverse}}, styles[1])
	assert.Equal(t, styles, s.Styles())

	s.Unmount()
	assert.Equal(t, 0, sh.Len())
	s.Unmount()
}

func TestSequencerRejectedRule(t *testing.T) {
	registry := sheet.NewRegistry(sheet.WithLimit(1), sheet.WithLogger(log.New(io.Discard, "", 0)))

	pulse := DefaultStep()
	pulse.Keyframes = []keyframe.Keyframe{keyframe.Raw("opacity: 0"), keyframe.Raw("opacity: 1")}
	s := NewSequencer(registry, pulse)
	s.Mount()
	defer s.Unmount()

	forward := registry.Sheet().Rules()[0].Name
	assert.Equal(t, style.Props{{Name: "animation", Value: "0.3s linear 0s 1 normal none running " + forward}}, s.Play(true)[0])
	assert.Equal(t, style.Props{{Name: "animation", Value: "0.3s linear 0s 1 normal none running "}}, s.Play(false)[0])
}

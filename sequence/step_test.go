package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/style"
)

func TestStepShorthands(t *testing.T) {
	s := DefaultStep()
	assert.Equal(t, "all 0.3s linear 0s", s.Transition(0))

	s.Duration = 1
	s.Easing = "easeInQuad"
	assert.Equal(t, "all 1s cubic-bezier(0.55, 0.085, 0.68, 0.53) 0.7s", s.Transition(0.7))

	s.Easing = "ease-in"
	s.IterationCount = "infinite"
	assert.Equal(t, "1s ease-in 2s infinite normal none running RSI-abc", s.Animation(2, false, "RSI-abc"))
	assert.Equal(t, "1s ease-in 2s infinite normal none paused ", s.Animation(2, true, ""))
}

func TestStepZeroValueShorthands(t *testing.T) {
	var s Step
	assert.Equal(t, "0s linear 0s 1 normal none running x", s.Animation(0, false, "x"))
}

func TestStepValidate(t *testing.T) {
	s := DefaultStep()
	assert.NoError(t, s.Validate())

	s.Overlay = -1
	assert.Error(t, s.Validate())

	s = DefaultStep()
	s.Keyframes = []keyframe.Keyframe{keyframe.Raw("opacity: 0")}
	s.End = style.Props{{Name: "opacity", Value: "1"}}
	assert.Error(t, s.Validate())
}

func TestStepIdentity(t *testing.T) {
	s := DefaultStep()
	assert.False(t, s.HasExplicitID())
	assert.Equal(t, "4", s.Identity(4).String())

	s.ID = "fade"
	assert.True(t, s.HasExplicitID())
	assert.Equal(t, "fade", s.Identity(4).String())
}

// Package sequence computes playback timing for ordered sets of animation
// steps and drives them forward or in reverse.
package sequence

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

// Stock values for fields a step leaves unset.
const (
	// DefaultDuration is the step length in seconds.
	DefaultDuration = 0.3
	// DefaultDirection is the animation-direction of keyframe steps.
	DefaultDirection = "normal"
	// DefaultFillMode is the animation-fill-mode of keyframe steps.
	DefaultFillMode = "none"
	// DefaultIterationCount is the animation-iteration-count of keyframe steps.
	DefaultIterationCount = "1"
)

// CSS animation-play-state values.
const (
	Running = "running"
	Paused  = "paused"
)

// Step is one animatable unit. It is rendered either from its Start/End pair
// or from Keyframes, never both.
type Step struct {
	Index *int   `yaml:"sequenceIndex,omitempty"`
	ID    string `yaml:"sequenceId,omitempty"`

	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
	Overlay  float64 `yaml:"overlay"`
	Easing   string  `yaml:"easeType"`

	Start    style.Props `yaml:"start,omitempty"`
	End      style.Props `yaml:"end,omitempty"`
	Complete style.Props `yaml:"complete,omitempty"`

	Keyframes      []keyframe.Keyframe `yaml:"keyframes,omitempty"`
	IterationCount string              `yaml:"iterationCount"`
	Direction      string              `yaml:"direction"`
	FillMode       string              `yaml:"fillMode"`
}

// DefaultStep returns a step carrying the stock timing values.
func DefaultStep() Step {
	return Step{
		Duration:       DefaultDuration,
		Easing:         util.DefaultEasing,
		IterationCount: DefaultIterationCount,
		Direction:      DefaultDirection,
		FillMode:       DefaultFillMode,
	}
}

// UnmarshalYAML fills fields missing from the document with the defaults.
func (s *Step) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain Step
	p := plain(DefaultStep())
	if err := unmarshal(&p); err != nil {
		return err
	}
	*s = Step(p)
	return nil
}

// Identity resolves the step's identity, falling back to position.
func (s Step) Identity(position int) util.ID {
	return util.ResolveID(s.Index, s.ID, position)
}

// HasExplicitID reports whether the step names its own index or id.
func (s Step) HasExplicitID() bool {
	return s.Index != nil || s.ID != ""
}

// HasKeyframes reports whether the step renders from a keyframe list.
func (s Step) HasKeyframes() bool {
	return len(s.Keyframes) > 0
}

// Span is the time the step adds to its sequence.
func (s Step) Span() float64 {
	return util.TotalSpan(s.Duration, s.Delay, s.Overlay)
}

// Validate checks the step's invariants.
func (s Step) Validate() error {
	if s.Duration < 0 || s.Delay < 0 || s.Overlay < 0 {
		return errors.New("duration, delay and overlay must not be negative")
	}
	if s.HasKeyframes() && (s.Start != nil || s.End != nil) {
		return errors.New("keyframes and start/end states are mutually exclusive")
	}
	return nil
}

// Transition renders the transition shorthand for an absolute delay.
func (s Step) Transition(delay float64) string {
	return fmt.Sprintf("all %ss %s %ss", FormatSeconds(s.Duration), util.LookupEasing(s.Easing).CSS, FormatSeconds(delay))
}

// Animation renders the animation shorthand for an absolute delay, play
// state and rule name. An empty name leaves the trailing field blank.
func (s Step) Animation(delay float64, paused bool, name string) string {
	return fmt.Sprintf("%ss %s %ss %s %s %s %s %s",
		FormatSeconds(s.Duration),
		util.LookupEasing(s.Easing).CSS,
		FormatSeconds(delay),
		orDefault(s.IterationCount, DefaultIterationCount),
		orDefault(s.Direction, DefaultDirection),
		orDefault(s.FillMode, DefaultFillMode),
		PlayState(paused),
		name,
	)
}

// PlayState maps a pause flag to the CSS play state.
func PlayState(paused bool) string {
	if paused {
		return Paused
	}
	return Running
}

// FormatSeconds prints seconds the shortest way: 0.3, 1, 1.25.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

type adapter interface {
	Animation
	Mount()
	Unmount()
	ID() util.ID
	State() State
	Style() style.Props
}

// StepState is a snapshot of one step under a Controller.
type StepState struct {
	ID    string      `json:"id"`
	State string      `json:"state"`
	Delay float64     `json:"delay"`
	Span  float64     `json:"span"`
	Play  bool        `json:"play"`
	Pause bool        `json:"pause"`
	Style style.Props `json:"style"`
}

// Controller mounts one adapter per step of a sequence file under a shared
// group and plays them together.
type Controller struct {
	mu       sync.Mutex
	group    *sequence.Group
	registry *sheet.Registry
	adapters []adapter
	mounted  bool
}

// NewController builds the adapters for f. Steps without an index or id are
// given their position as index. sinkFor may be nil.
func NewController(f *sequence.File, sinkFor func(util.ID) Sink, opts ...Option) (*Controller, error) {
	steps := make([]sequence.Step, len(f.Steps))
	seen := make(map[util.ID]int, len(f.Steps))
	for i, step := range f.Steps {
		if !step.HasExplicitID() {
			index := i
			step.Index = &index
		}
		id := step.Identity(i)
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("steps %d and %d share identity %s", prev, i, id)
		}
		seen[id] = i
		steps[i] = step
	}

	o := newOptions(opts)
	c := &Controller{
		group:    sequence.NewGroup(f.Play, steps...),
		registry: o.registry,
	}
	opts = append(opts, WithGroup(c.group), WithRegistry(o.registry))

	for _, step := range steps {
		var sink Sink
		if sinkFor != nil {
			sink = sinkFor(step.Identity(0))
		}
		if step.HasKeyframes() {
			c.adapters = append(c.adapters, NewAnimateKeyframes(KeyframesProps{Step: step, Sink: sink}, opts...))
		} else {
			c.adapters = append(c.adapters, NewAnimate(AnimateProps{Step: step, Sink: sink}, opts...))
		}
	}
	return c, nil
}

// Mount mounts every step and then the group, so the first timings see all
// steps.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return
	}
	for _, a := range c.adapters {
		a.Mount()
	}
	c.group.Mount()
	c.mounted = true
}

// Unmount tears every step down.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.adapters {
		a.Unmount()
	}
	c.mounted = false
}

// Play sets the playback direction of the whole sequence.
func (c *Controller) Play(play bool) {
	c.group.SetPlay(play)
}

// Playing reports the playback direction.
func (c *Controller) Playing() bool {
	return c.group.Playing()
}

// Span is the length of the sequence in seconds.
func (c *Controller) Span() float64 {
	return c.group.Span()
}

// States returns a snapshot of every step in declared order.
func (c *Controller) States() []StepState {
	out := make([]StepState, 0, len(c.adapters))
	for _, a := range c.adapters {
		id := a.ID()
		timing, _ := c.group.Timing(id)
		out = append(out, StepState{
			ID:    id.String(),
			State: a.State().String(),
			Delay: timing.Delay,
			Span:  timing.Span,
			Play:  timing.Play,
			Pause: timing.Pause,
			Style: a.Style(),
		})
	}
	return out
}

// StyleSheet returns the text of the shared sheet.
func (c *Controller) StyleSheet() string {
	sh := c.registry.Sheet()
	if sh == nil {
		return ""
	}
	return sh.String()
}

// Frame samples every step at now.
func (c *Controller) Frame(now time.Time) *Frame {
	f := NewFrame()
	for _, a := range c.adapters {
		f.Append(a.Frame(now))
	}
	return f
}

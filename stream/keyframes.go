package stream

import (
	"strconv"
	"sync"
	"time"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

// ControlMode records whether a keyframe step follows its own play and pause
// props or the group's timing.
type ControlMode int

const (
	// Uncontrolled steps follow their own props until the group first
	// plays them.
	Uncontrolled ControlMode = iota
	// Controlled steps follow the group from then on, for good.
	Controlled
)

func (m ControlMode) String() string {
	if m == Controlled {
		return "controlled"
	}
	return "uncontrolled"
}

// KeyframesProps are the inputs of a keyframe step.
type KeyframesProps struct {
	Step       sequence.Step
	Play       bool
	Pause      bool
	OnComplete func()
	Sink       Sink
}

// AnimateKeyframes renders one step as a keyframe animation. Mounting
// compiles the step's keyframes forward and reversed into the registry;
// unmounting removes both rules.
type AnimateKeyframes struct {
	mu          sync.Mutex
	opts        options
	props       KeyframesProps
	id          util.ID
	state       State
	released    bool
	mode        ControlMode
	observed    sequence.Timing
	def         keyframe.Definition
	sheets      [2]*sheet.Sheet
	names       [2]string
	style       style.Props
	done        completion
	unsubscribe func()
}

// NewAnimateKeyframes creates an unmounted keyframe adapter.
func NewAnimateKeyframes(props KeyframesProps, opts ...Option) *AnimateKeyframes {
	o := newOptions(opts)
	return &AnimateKeyframes{
		opts:  o,
		props: props,
		id:    props.Step.Identity(0),
		done:  completion{scheduler: o.scheduler},
	}
}

// ID returns the step's identity.
func (a *AnimateKeyframes) ID() util.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

// State returns the adapter's lifecycle state.
func (a *AnimateKeyframes) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Mode returns whether the step follows the group.
func (a *AnimateKeyframes) Mode() ControlMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Style returns the style last rendered.
func (a *AnimateKeyframes) Style() style.Props {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.style.Clone()
}

// Definition returns the compiled rule pair.
func (a *AnimateKeyframes) Definition() keyframe.Definition {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.def
}

// Mount registers the forward and reverse rules under fresh names, joins the
// group if any and renders.
func (a *AnimateKeyframes) Mount() {
	a.mu.Lock()
	if a.released || a.state != Unmounted {
		a.mu.Unlock()
		return
	}
	a.state = Idle
	step := a.props.Step
	a.def = keyframe.NewDefinition(step.Keyframes)
	a.sheets[0], a.names[0] = a.register(a.def.Name, a.def.Text)
	a.sheets[1], a.names[1] = a.register(a.def.ReverseName, a.def.ReverseText)
	a.mu.Unlock()

	if g := a.opts.group; g != nil {
		g.Register(step)
		unsubscribe := g.Subscribe(func(sequence.Timings) { a.refresh() })
		a.mu.Lock()
		a.unsubscribe = unsubscribe
		a.mu.Unlock()
	}
	a.refresh()
}

// register inserts a rule. A rule the sheet rejected yields an empty name so
// the step renders without an animation.
func (a *AnimateKeyframes) register(name, text string) (*sheet.Sheet, string) {
	sh, _ := a.opts.registry.Register(name, text)
	if sh.IndexOf(name) < 0 {
		return sh, ""
	}
	return sh, name
}

// Update replaces the props and re-renders. The compiled keyframes are kept
// from Mount.
func (a *AnimateKeyframes) Update(props KeyframesProps) {
	a.mu.Lock()
	oldID := a.id
	a.props = props
	a.id = props.Step.Identity(0)
	mounted := a.state != Unmounted
	a.mu.Unlock()

	if !mounted {
		return
	}
	if g := a.opts.group; g != nil {
		if oldID != props.Step.Identity(0) {
			g.Deregister(oldID)
		}
		g.Register(props.Step)
	}
	a.refresh()
}

// Unmount cancels any pending completion, leaves the group and removes both
// rules.
func (a *AnimateKeyframes) Unmount() {
	a.mu.Lock()
	if a.state == Unmounted {
		a.released = true
		a.mu.Unlock()
		return
	}
	a.done.cancel()
	a.state = Unmounted
	a.released = true
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	id, explicit := a.id, a.props.Step.HasExplicitID()
	sheets, def := a.sheets, a.def
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if g := a.opts.group; g != nil && explicit {
		g.Deregister(id)
	}
	a.opts.registry.Unregister(sheets[0], def.Name)
	a.opts.registry.Unregister(sheets[1], def.ReverseName)
}

func (a *AnimateKeyframes) timing() (sequence.Timing, bool) {
	if a.opts.group == nil {
		return sequence.Timing{}, false
	}
	return a.opts.group.Timing(a.id)
}

func (a *AnimateKeyframes) refresh() {
	a.mu.Lock()
	if a.state == Unmounted {
		a.mu.Unlock()
		return
	}
	step := a.props.Step
	timing, ok := a.timing()

	paused, forward, delay := a.props.Pause, a.props.Play, step.Delay
	switch {
	case a.mode == Controlled:
		if ok {
			a.observed = timing
		}
		paused, forward, delay = a.observed.Pause, a.observed.Play, a.observed.Delay
	case ok && timing.Controlled:
		paused, forward, delay = timing.Pause, timing.Play, timing.Delay
		if !timing.Pause {
			a.mode = Controlled
			a.observed = timing
		}
	}

	name := a.names[1]
	if forward {
		name = a.names[0]
	}
	next := style.Props{{Name: "animation", Value: step.Animation(delay, paused, name)}}
	if (a.state == Settled || a.state == Playing) && next.Equal(a.style) {
		a.mu.Unlock()
		return
	}
	a.style = next

	a.done.cancel()
	if forward && !paused && name != "" {
		a.state = Playing
		if total, ok := runLength(step, delay); ok {
			a.done.arm(total, a.complete)
		}
	} else {
		a.state = Idle
	}
	sink, s := a.sink(), a.style.Clone()
	a.mu.Unlock()

	sink.Render(s)
}

// runLength is the delay plus every iteration. Infinite animations never
// complete.
func runLength(step sequence.Step, delay float64) (time.Duration, bool) {
	count := 1.0
	if step.IterationCount != "" {
		n, err := strconv.ParseFloat(step.IterationCount, 64)
		if err != nil {
			return 0, false
		}
		count = n
	}
	return util.SecToDuration(delay + step.Duration*count), true
}

func (a *AnimateKeyframes) complete(gen uint64) {
	a.mu.Lock()
	if a.state != Playing || !a.done.current(gen) {
		a.mu.Unlock()
		return
	}
	a.done.timer = nil
	a.state = Settled
	onComplete := a.props.OnComplete
	a.mu.Unlock()

	if onComplete != nil {
		onComplete()
	}
}

func (a *AnimateKeyframes) sink() Sink {
	if a.props.Sink == nil {
		return nopSink{}
	}
	return a.props.Sink
}

// Frame reports the current animation shorthand.
func (a *AnimateKeyframes) Frame(now time.Time) *Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Unmounted {
		return NewFrame()
	}
	return NewFrame(StepFrame{ID: a.id.String(), Style: a.style.Clone()})
}

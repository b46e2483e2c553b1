package stream

import (
	"sync"
	"time"

	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

// AnimateProps are the inputs of a transition step.
type AnimateProps struct {
	Step       sequence.Step
	Play       bool
	OnComplete func()
	Sink       Sink
}

// Animate renders one step as a property transition between its Start and
// End styles. Inside a group the orchestrated timing overrides the step's
// own play flag and delay.
type Animate struct {
	mu          sync.Mutex
	opts        options
	props       AnimateProps
	id          util.ID
	state       State
	released    bool
	style       style.Props
	computed    style.Props
	done        completion
	unsubscribe func()

	// the transition currently shown, for frame sampling
	from  style.Props
	to    style.Props
	since time.Time
	delay float64
}

// NewAnimate creates an unmounted transition adapter.
func NewAnimate(props AnimateProps, opts ...Option) *Animate {
	o := newOptions(opts)
	return &Animate{
		opts:  o,
		props: props,
		id:    props.Step.Identity(0),
		done:  completion{scheduler: o.scheduler},
	}
}

// ID returns the step's identity.
func (a *Animate) ID() util.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

// State returns the adapter's lifecycle state.
func (a *Animate) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Style returns the style last rendered.
func (a *Animate) Style() style.Props {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.style.Clone()
}

// Mount renders the start style, joins the group if any and applies the
// current timing.
func (a *Animate) Mount() {
	a.mu.Lock()
	if a.released || a.state != Unmounted {
		a.mu.Unlock()
		return
	}
	a.state = Idle
	a.style = a.props.Step.Start.Clone()
	a.from, a.to = a.style, a.style
	a.since = a.opts.now()
	step := a.props.Step
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

// Update replaces the props and re-renders.
func (a *Animate) Update(props AnimateProps) {
	a.mu.Lock()
	if a.state == Unmounted {
		a.props = props
		a.id = props.Step.Identity(0)
		a.mu.Unlock()
		return
	}
	oldID := a.id
	a.props = props
	a.id = props.Step.Identity(0)
	a.mu.Unlock()

	if g := a.opts.group; g != nil {
		if oldID != a.ID() {
			g.Deregister(oldID)
		}
		g.Register(props.Step)
	}
	a.refresh()
}

// Unmount cancels any pending completion and leaves the group. The adapter
// cannot be mounted again.
func (a *Animate) Unmount() {
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
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if g := a.opts.group; g != nil && explicit {
		g.Deregister(id)
	}
}

func (a *Animate) timing() (sequence.Timing, bool) {
	if a.opts.group == nil {
		return sequence.Timing{}, false
	}
	return a.opts.group.Timing(a.id)
}

func (a *Animate) refresh() {
	a.mu.Lock()
	if a.state == Unmounted {
		a.mu.Unlock()
		return
	}
	timing, controlled := a.timing()
	step := a.props.Step

	active := a.props.Play || (controlled && timing.Play)
	delay := step.Delay
	if controlled {
		delay = timing.Delay
	}
	target := step.Start
	if active {
		target = step.End
	}
	next := target.Set("transition", step.Transition(delay))

	// unchanged inputs keep a pending completion armed
	if (a.state == Settled || a.state == Playing) && active && next.Equal(a.computed) && delay == a.delay {
		a.mu.Unlock()
		return
	}
	if !target.Equal(a.to) || delay != a.delay {
		a.from, a.to = a.to, target.Clone()
		a.since = a.opts.now()
		a.delay = delay
	}
	a.style = next
	a.computed = next

	a.done.cancel()
	if active {
		a.state = Playing
		if step.Complete != nil || a.props.OnComplete != nil {
			a.done.arm(util.SecToDuration(delay+step.Duration), a.complete)
		}
	} else {
		a.state = Idle
	}
	sink, s := a.sink(), a.style.Clone()
	a.mu.Unlock()

	sink.Render(s)
}

func (a *Animate) complete(gen uint64) {
	a.mu.Lock()
	if a.state != Playing || !a.done.current(gen) {
		a.mu.Unlock()
		return
	}
	a.done.timer = nil
	a.state = Settled
	settled := a.props.Step.Complete != nil
	if settled {
		a.style = a.props.Step.Complete.Clone()
	}
	onComplete := a.props.OnComplete
	sink, s := a.sink(), a.style.Clone()
	a.mu.Unlock()

	if settled {
		sink.Render(s)
	}
	if onComplete != nil {
		onComplete()
	}
}

func (a *Animate) sink() Sink {
	if a.props.Sink == nil {
		return nopSink{}
	}
	return a.props.Sink
}

// Frame samples the transition at now, easing from the previous target
// style to the current one. A settled step shows its settled style.
func (a *Animate) Frame(now time.Time) *Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	var s style.Props
	switch a.state {
	case Unmounted:
		return NewFrame()
	case Settled:
		s = a.to
		if a.props.Step.Complete != nil {
			s = a.props.Step.Complete
		}
	default:
		t := 1.0
		if d := a.props.Step.Duration; d > 0 {
			t = (now.Sub(a.since).Seconds() - a.delay) / d
		}
		progress := util.LookupEasing(a.props.Step.Easing).Progress(t)
		s = style.Interpolate(a.from, a.to, progress)
	}
	return NewFrame(StepFrame{ID: a.id.String(), Style: s.Clone()})
}

package stream

import (
	"sync"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

// Player drives a single transition step imperatively through Play.
type Player struct {
	mu         sync.Mutex
	step       sequence.Step
	onComplete func()
	sink       Sink
	playing    bool
	closed     bool
	style      style.Props
	done       completion
}

// NewPlayer creates a stopped player showing the step's start style.
func NewPlayer(step sequence.Step, onComplete func(), sink Sink, opts ...Option) *Player {
	o := newOptions(opts)
	if sink == nil {
		sink = nopSink{}
	}
	return &Player{
		step:       step,
		onComplete: onComplete,
		sink:       sink,
		style:      step.Start.Set("transition", step.Transition(step.Delay)),
		done:       completion{scheduler: o.scheduler},
	}
}

// Play moves to the end style, or back to the start style when play is
// false. Playing forward arms the completion timer when the step has a
// settled style or a completion callback.
func (p *Player) Play(play bool) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	target := p.step.Start
	if play {
		target = p.step.End
	}
	p.style = target.Set("transition", p.step.Transition(p.step.Delay))
	p.playing = play

	p.done.cancel()
	if play && (p.step.Complete != nil || p.onComplete != nil) {
		p.done.arm(util.SecToDuration(p.step.Delay+p.step.Duration), p.complete)
	}
	s := p.style.Clone()
	p.mu.Unlock()

	p.sink.Render(s)
}

func (p *Player) complete(gen uint64) {
	p.mu.Lock()
	if p.closed || !p.done.current(gen) {
		p.mu.Unlock()
		return
	}
	p.done.timer = nil
	settled := p.step.Complete != nil
	if settled {
		p.style = p.step.Complete.Clone()
	}
	s := p.style.Clone()
	p.mu.Unlock()

	if p.onComplete != nil {
		p.onComplete()
	}
	if settled {
		p.sink.Render(s)
	}
}

// Playing reports the direction of the last Play.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Style returns the current style.
func (p *Player) Style() style.Props {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.style.Clone()
}

// Close cancels a pending completion. Later calls to Play are ignored.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done.cancel()
	p.closed = true
}

// KeyframePlayer drives a single keyframe step imperatively. No animation
// is named until the first Play.
type KeyframePlayer struct {
	mu       sync.Mutex
	registry *sheet.Registry
	step     sequence.Step
	def      keyframe.Definition
	sheets   [2]*sheet.Sheet
	playing  *bool
	paused   bool
	mounted  bool
}

// NewKeyframePlayer creates an unmounted keyframe player.
func NewKeyframePlayer(step sequence.Step, opts ...Option) *KeyframePlayer {
	o := newOptions(opts)
	return &KeyframePlayer{registry: o.registry, step: step}
}

// Mount compiles and registers the forward and reverse rules.
func (k *KeyframePlayer) Mount() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.mounted {
		return
	}
	k.def = keyframe.NewDefinition(k.step.Keyframes)
	k.sheets[0], _ = k.registry.Register(k.def.Name, k.def.Text)
	k.sheets[1], _ = k.registry.Register(k.def.ReverseName, k.def.ReverseText)
	k.mounted = true
}

// Unmount removes both rules.
func (k *KeyframePlayer) Unmount() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.mounted {
		return
	}
	k.registry.Unregister(k.sheets[0], k.def.Name)
	k.registry.Unregister(k.sheets[1], k.def.ReverseName)
	k.mounted = false
}

// Play selects the forward or reverse rule.
func (k *KeyframePlayer) Play(play bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.playing = &play
}

// Pause sets the play state.
func (k *KeyframePlayer) Pause(pause bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.paused = pause
}

// Playing reports whether the forward rule is selected.
func (k *KeyframePlayer) Playing() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.playing != nil && *k.playing
}

// Style returns the animation shorthand. A rule that is not in the sheet,
// because it was rejected or the player is unmounted, yields no name.
func (k *KeyframePlayer) Style() style.Props {
	k.mu.Lock()
	defer k.mu.Unlock()
	name := ""
	if k.playing != nil {
		name = k.def.NameFor(*k.playing)
		sh := k.sheets[1]
		if *k.playing {
			sh = k.sheets[0]
		}
		if sh == nil || sh.IndexOf(name) < 0 {
			name = ""
		}
	}
	return style.Props{{Name: "animation", Value: k.step.Animation(k.step.Delay, k.paused, name)}}
}

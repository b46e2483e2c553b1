package sequence

import (
	"sync"

	"github.com/matt-g-everett/animseq/keyframe"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
)

type rules struct {
	def   keyframe.Definition
	sheet *sheet.Sheet
	// names are blank for rules the sheet rejected
	names [2]string
}

func (r *rules) nameFor(play bool) string {
	if play {
		return r.names[0]
	}
	return r.names[1]
}

// Sequencer plays a fixed list of steps imperatively and hands back one
// style per step. Keyframe steps get their forward and reverse rules
// registered on Mount and removed on Unmount.
type Sequencer struct {
	mu       sync.Mutex
	registry *sheet.Registry
	steps    []Step
	rules    map[util.ID]*rules
	styles   []style.Props
	playing  bool
}

// NewSequencer creates a sequencer whose styles start at each step's Start.
func NewSequencer(registry *sheet.Registry, steps ...Step) *Sequencer {
	s := &Sequencer{
		registry: registry,
		steps:    steps,
		rules:    make(map[util.ID]*rules),
		styles:   make([]style.Props, len(steps)),
	}
	for i, step := range steps {
		s.styles[i] = step.Start.Clone()
	}
	return s
}

// Mount compiles and registers the keyframe rules of every keyframe step.
func (s *Sequencer) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, step := range s.steps {
		if !step.HasKeyframes() {
			continue
		}
		id := step.Identity(i)
		if old, ok := s.rules[id]; ok {
			s.release(old)
		}
		def := keyframe.NewDefinition(step.Keyframes)
		sh, _ := s.registry.Register(def.Name, def.Text)
		s.registry.Register(def.ReverseName, def.ReverseText)
		r := &rules{def: def, sheet: sh}
		for j, name := range []string{def.Name, def.ReverseName} {
			if sh.IndexOf(name) >= 0 {
				r.names[j] = name
			}
		}
		s.rules[id] = r
	}
}

// Unmount removes every rule the sequencer registered.
func (s *Sequencer) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.rules {
		s.release(r)
		delete(s.rules, id)
	}
}

func (s *Sequencer) release(r *rules) {
	s.registry.Unregister(r.sheet, r.def.Name)
	s.registry.Unregister(r.sheet, r.def.ReverseName)
}

// Play lays the steps out forward or reversed and returns the new styles in
// declared order.
func (s *Sequencer) Play(play bool) []style.Props {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _ := Plan(s.steps, play)
	styles := make([]style.Props, len(s.steps))
	for _, e := range entries {
		styles[e.Position] = s.styleFor(e, play)
	}
	s.styles = styles
	s.playing = play
	return cloneStyles(styles)
}

func (s *Sequencer) styleFor(e Entry, play bool) style.Props {
	step := e.Step
	if step.HasKeyframes() {
		name := ""
		if r, ok := s.rules[step.Identity(e.Position)]; ok {
			name = r.nameFor(play)
		}
		return style.Props{{Name: "animation", Value: step.Animation(e.Timing.Delay, false, name)}}
	}
	state := step.Start
	if play {
		state = step.End
	}
	return state.Set("transition", step.Transition(e.Timing.Delay))
}

// Styles returns the current style of each step in declared order.
func (s *Sequencer) Styles() []style.Props {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStyles(s.styles)
}

// Playing reports the direction of the last Play.
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func cloneStyles(in []style.Props) []style.Props {
	out := make([]style.Props, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

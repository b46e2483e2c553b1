package sequence

import (
	"sort"
	"sync"

	"github.com/matt-g-everett/animseq/util"
)

// Group orchestrates a set of steps. Declared steps are used when given;
// otherwise the steps that registered themselves are scheduled, integer ids
// first in ascending order and then string ids in registration order.
//
// Timings are recomputed on Mount and whenever the play flag changes. Every
// step's timing is computed before any subscriber is notified.
type Group struct {
	mu       sync.Mutex
	play     bool
	mounted  bool
	declared []Step

	registered map[util.ID]Step
	named      []util.ID

	timings Timings
	span    float64

	subscribers map[int]func(Timings)
	nextSub     int
}

// NewGroup creates a group. With no steps the group discovers them through
// Register.
func NewGroup(play bool, steps ...Step) *Group {
	return &Group{
		play:        play,
		declared:    steps,
		registered:  make(map[util.ID]Step),
		timings:     make(Timings),
		subscribers: make(map[int]func(Timings)),
	}
}

// Register records a mounting step. Steps without an explicit index or id
// are ignored; a step registering an id already present replaces it.
func (g *Group) Register(step Step) {
	if !step.HasExplicitID() {
		return
	}
	id := step.Identity(0)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.registered[id]; !ok && id.IsNamed() {
		g.named = append(g.named, id)
	}
	g.registered[id] = step
}

// Deregister forgets a step that unmounted.
func (g *Group) Deregister(id util.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.registered[id]; !ok {
		return
	}
	delete(g.registered, id)
	for i, n := range g.named {
		if n == id {
			g.named = append(g.named[:i], g.named[i+1:]...)
			break
		}
	}
}

// Steps returns the steps that would be scheduled now.
func (g *Group) Steps() []Step {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stepsLocked()
}

func (g *Group) stepsLocked() []Step {
	if len(g.declared) > 0 {
		out := make([]Step, len(g.declared))
		copy(out, g.declared)
		return out
	}

	indexed := make([]util.ID, 0, len(g.registered))
	for id := range g.registered {
		if !id.IsNamed() {
			indexed = append(indexed, id)
		}
	}
	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].Int() < indexed[j].Int()
	})

	out := make([]Step, 0, len(g.registered))
	for _, id := range indexed {
		out = append(out, g.registered[id])
	}
	for _, id := range g.named {
		out = append(out, g.registered[id])
	}
	return out
}

// Mount computes the initial timings from whatever has registered.
func (g *Group) Mount() {
	g.mu.Lock()
	g.mounted = true
	g.recomputeLocked()
	timings, subs := g.snapshotLocked()
	g.mu.Unlock()

	notify(subs, timings)
}

// SetPlay switches playback direction. Timings are recomputed only when the
// flag changes on a mounted group.
func (g *Group) SetPlay(play bool) {
	g.mu.Lock()
	if g.play == play {
		g.mu.Unlock()
		return
	}
	g.play = play
	if !g.mounted {
		g.mu.Unlock()
		return
	}
	g.recomputeLocked()
	timings, subs := g.snapshotLocked()
	g.mu.Unlock()

	notify(subs, timings)
}

func (g *Group) recomputeLocked() {
	g.timings, g.span = Schedule(g.stepsLocked(), g.play)
}

func (g *Group) snapshotLocked() (Timings, []func(Timings)) {
	timings := make(Timings, len(g.timings))
	for id, t := range g.timings {
		timings[id] = t
	}
	keys := make([]int, 0, len(g.subscribers))
	for k := range g.subscribers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	subs := make([]func(Timings), 0, len(keys))
	for _, k := range keys {
		subs = append(subs, g.subscribers[k])
	}
	return timings, subs
}

func notify(subs []func(Timings), timings Timings) {
	for _, fn := range subs {
		fn(timings)
	}
}

// Playing reports the group's play flag.
func (g *Group) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.play
}

// Span returns the total length of the last computed schedule.
func (g *Group) Span() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.span
}

// Timing returns the orchestrated state of one step.
func (g *Group) Timing(id util.ID) (Timing, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.timings[id]
	return t, ok
}

// Timings returns a copy of the last computed timings.
func (g *Group) Timings() Timings {
	g.mu.Lock()
	defer g.mu.Unlock()
	timings, _ := g.snapshotLocked()
	return timings
}

// Subscribe calls fn with the full timing map after each recomputation. The
// returned func cancels the subscription.
func (g *Group) Subscribe(fn func(Timings)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := g.nextSub
	g.nextSub++
	g.subscribers[key] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, key)
	}
}

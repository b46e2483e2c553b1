package stream

// State is the lifecycle position of a step adapter.
//
//	Unmounted -> Idle -> Playing -> Settled
//
// Playing returns to Idle when play is switched off before completion.
// Unmount moves any state to Unmounted, which is final once left.
type State int

const (
	Unmounted State = iota
	Idle
	Playing
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Settled:
		return "settled"
	default:
		return "unmounted"
	}
}

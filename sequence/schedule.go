package sequence

import "github.com/matt-g-everett/animseq/util"

// Timing is the orchestrated state of one step.
type Timing struct {
	Play       bool    `json:"play"`
	Pause      bool    `json:"pause"`
	Delay      float64 `json:"delay"`
	Span       float64 `json:"span"`
	Controlled bool    `json:"controlled"`
}

// Timings maps step identity to its orchestrated state.
type Timings map[util.ID]Timing

// Entry is a step placed on the timeline.
type Entry struct {
	// Position is the step's index in the declared order.
	Position int
	ID       util.ID
	Step     Step
	Timing   Timing
}

// Plan lays steps out in playback order: declared order when play is true,
// reversed otherwise. The first step starts after its own delay; every later
// step starts once the spans of the steps before it have elapsed. A later
// step adds its own delay to that start only when it has an overlay; without
// one its delay only lengthens its span. A step's overlay shortens its span,
// pulling the next step in.
// Steps without an explicit identity fall back to their playback position.
func Plan(steps []Step, play bool) ([]Entry, float64) {
	entries := make([]Entry, 0, len(steps))
	cumulative := 0.0
	for i := range steps {
		position := i
		if !play {
			position = len(steps) - 1 - i
		}
		step := steps[position]

		delay := step.Delay
		if i > 0 {
			delay = cumulative
			if step.Overlay != 0 {
				delay += step.Delay
			}
		}
		span := step.Span()
		entries = append(entries, Entry{
			Position: position,
			ID:       step.Identity(i),
			Step:     step,
			Timing: Timing{
				Play:       play,
				Pause:      !play,
				Delay:      delay,
				Span:       span,
				Controlled: true,
			},
		})
		cumulative += span
	}
	return entries, cumulative
}

// Schedule returns the timing of every step keyed by identity and the total
// span of the sequence.
func Schedule(steps []Step, play bool) (Timings, float64) {
	entries, total := Plan(steps, play)
	timings := make(Timings, len(entries))
	for _, e := range entries {
		timings[e.ID] = e.Timing
	}
	return timings, total
}

package stream

import "time"

// An Animation produces the frame to display at a point in time.
type Animation interface {
	Frame(now time.Time) *Frame
}

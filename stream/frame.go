package stream

import (
	"encoding/json"

	"github.com/matt-g-everett/animseq/style"
)

// StepFrame is the style of one step within a Frame.
type StepFrame struct {
	ID    string      `json:"id"`
	Style style.Props `json:"style"`
}

// Frame represents the styles of a set of steps at one instant.
type Frame struct {
	Steps []StepFrame `json:"steps"`
}

// NewFrame creates a new Frame instance.
func NewFrame(steps ...StepFrame) *Frame {
	return &Frame{Steps: steps}
}

// Append adds the steps of f2 to f.
func (f *Frame) Append(f2 *Frame) {
	if f2 == nil {
		return
	}
	f.Steps = append(f.Steps, f2.Steps...)
}

// MarshalBinary converts a Frame into the JSON payload published to devices.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(f)
}

// Package keyframe compiles keyframe lists into @keyframes rule text.
package keyframe

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matt-g-everett/animseq/style"
	"github.com/matt-g-everett/animseq/util"
	"gopkg.in/yaml.v2"
)

// Keyframe is one entry of a keyframe list. Exactly one form is used:
//   - At set: an explicit percentage with Raw as its content
//   - Props set: a property map placed at a generated percentage
//   - otherwise Raw is a style fragment placed at a generated percentage
type Keyframe struct {
	At    string
	Raw   string
	Props style.Props
}

// Raw returns a style fragment keyframe.
func Raw(fragment string) Keyframe {
	return Keyframe{Raw: fragment}
}

// Props returns a property map keyframe.
func Props(props style.Props) Keyframe {
	return Keyframe{Props: props}
}

// At returns a keyframe pinned to an explicit percentage.
func At(percent, fragment string) Keyframe {
	return Keyframe{At: percent, Raw: fragment}
}

// UnmarshalYAML accepts a scalar fragment, a single-entry mapping keyed by a
// number, or a property mapping.
func (k *Keyframe) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var fragment string
	if err := unmarshal(&fragment); err == nil {
		*k = Raw(fragment)
		return nil
	}

	var slice yaml.MapSlice
	if err := unmarshal(&slice); err != nil {
		return fmt.Errorf("keyframe must be a string or a mapping: %w", err)
	}
	if len(slice) > 0 {
		if key := fmt.Sprint(slice[0].Key); isNumber(key) {
			*k = At(key, fmt.Sprint(slice[0].Value))
			return nil
		}
	}
	props, err := style.FromMapSlice(slice)
	if err != nil {
		return err
	}
	*k = Props(props)
	return nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// Percentages returns the generated percentage for each of n entries. Two
// entries get 0 and 100; otherwise each step is 100/(n-1) rounded to two
// decimals and multiplied by the position, so the last entry may fall short
// of 100.
func Percentages(n int) []float64 {
	out := make([]float64, n)
	if n == 2 {
		out[1] = 100
		return out
	}
	if n < 2 {
		return out
	}
	step := round2(100 / float64(n-1))
	for i := range out {
		out[i] = step * float64(i)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Body renders the inside of an @keyframes block.
func Body(frames []Keyframe) string {
	var b strings.Builder
	percentages := Percentages(len(frames))
	for i, frame := range frames {
		switch {
		case frame.At != "":
			fmt.Fprintf(&b, " %s%% {%s}", frame.At, frame.Raw)
		case len(frame.Props) > 0:
			fmt.Fprintf(&b, " %s%% {%s}", formatPercent(percentages[i]), frame.Props.Declarations())
		default:
			fmt.Fprintf(&b, " %s%% {%s}", formatPercent(percentages[i]), frame.Raw)
		}
	}
	return b.String()
}

// Compile renders a complete @keyframes rule named name.
func Compile(name string, frames []Keyframe) string {
	return fmt.Sprintf("@keyframes %s {%s}", name, Body(frames))
}

// Reverse returns the frames in reverse order. frames is left untouched.
func Reverse(frames []Keyframe) []Keyframe {
	out := make([]Keyframe, len(frames))
	for i, frame := range frames {
		out[len(frames)-1-i] = frame
	}
	return out
}

// Definition is a compiled forward and reverse rule pair.
type Definition struct {
	Name        string
	ReverseName string
	Text        string
	ReverseText string
}

// NewDefinition compiles frames forward and reversed under fresh names.
func NewDefinition(frames []Keyframe) Definition {
	d := Definition{
		Name:        util.RandomName(),
		ReverseName: util.RandomName(),
	}
	d.Text = Compile(d.Name, frames)
	d.ReverseText = Compile(d.ReverseName, Reverse(frames))
	return d
}

// NameFor returns the rule name for the play direction.
func (d Definition) NameFor(forward bool) string {
	if forward {
		return d.Name
	}
	return d.ReverseName
}

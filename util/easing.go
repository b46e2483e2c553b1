package util

import (
	"github.com/fogleman/ease"
)

// DefaultEasing is used when a step names no easing.
const DefaultEasing = "linear"

// Easing pairs a named timing function with the CSS text emitted into
// transition and animation shorthands and a curve used to sample progress.
type Easing struct {
	Name  string
	CSS   string
	Curve func(t float64) float64
}

// Progress returns the eased progress for a linear fraction t, clamped to [0,1].
func (e Easing) Progress(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if e.Curve == nil {
		return t
	}
	return e.Curve(t)
}

var easings = []Easing{
	{"linear", "linear", ease.Linear},
	{"ease", "ease", ease.InOutSine},
	{"ease-in", "ease-in", ease.InQuad},
	{"ease-out", "ease-out", ease.OutQuad},
	{"ease-in-out", "ease-in-out", ease.InOutQuad},

	{"easeInBack", "cubic-bezier(0.6, -0.28, 0.735, 0.045)", ease.InBack},
	{"easeInCirc", "cubic-bezier(0.6, 0.04, 0.98, 0.335)", ease.InCirc},
	{"easeInCubic", "cubic-bezier(0.55, 0.055, 0.675, 0.19)", ease.InCubic},
	{"easeInExpo", "cubic-bezier(0.95, 0.05, 0.795, 0.035)", ease.InExpo},
	{"easeInQuad", "cubic-bezier(0.55, 0.085, 0.68, 0.53)", ease.InQuad},
	{"easeInQuart", "cubic-bezier(0.895, 0.03, 0.685, 0.22)", ease.InQuart},
	{"easeInQuint", "cubic-bezier(0.755, 0.05, 0.855, 0.06)", ease.InQuint},
	{"easeInSine", "cubic-bezier(0.47, 0, 0.745, 0.715)", ease.InSine},

	{"easeOutBack", "cubic-bezier(0.175, 0.885, 0.32, 1.275)", ease.OutBack},
	{"easeOutCirc", "cubic-bezier(0.075, 0.82, 0.165, 1)", ease.OutCirc},
	{"easeOutCubic", "cubic-bezier(0.215, 0.61, 0.355, 1)", ease.OutCubic},
	{"easeOutExpo", "cubic-bezier(0.19, 1, 0.22, 1)", ease.OutExpo},
	{"easeOutQuad", "cubic-bezier(0.25, 0.46, 0.45, 0.94)", ease.OutQuad},
	{"easeOutQuart", "cubic-bezier(0.165, 0.84, 0.44, 1)", ease.OutQuart},
	{"easeOutQuint", "cubic-bezier(0.23, 1, 0.32, 1)", ease.OutQuint},
	{"easeOutSine", "cubic-bezier(0.39, 0.575, 0.565, 1)", ease.OutSine},

	{"easeInOutBack", "cubic-bezier(0.68, -0.55, 0.265, 1.55)", ease.InOutBack},
	{"easeInOutCirc", "cubic-bezier(0.785, 0.135, 0.15, 0.86)", ease.InOutCirc},
	{"easeInOutCubic", "cubic-bezier(0.645, 0.045, 0.355, 1)", ease.InOutCubic},
	{"easeInOutExpo", "cubic-bezier(1, 0, 0, 1)", ease.InOutExpo},
	{"easeInOutQuad", "cubic-bezier(0.455, 0.03, 0.515, 0.955)", ease.InOutQuad},
	{"easeInOutQuart", "cubic-bezier(0.77, 0, 0.175, 1)", ease.InOutQuart},
	{"easeInOutQuint", "cubic-bezier(0.86, 0, 0.07, 1)", ease.InOutQuint},
	{"easeInOutSine", "cubic-bezier(0.445, 0.05, 0.55, 0.95)", ease.InOutSine},
}

var easingIndex = func() map[string]Easing {
	m := make(map[string]Easing, len(easings)*2)
	for _, e := range easings {
		m[e.Name] = e
		m[e.CSS] = e
	}
	return m
}()

// LookupEasing resolves a name or a CSS timing function. Unknown values are
// passed through verbatim as CSS and sampled linearly.
func LookupEasing(name string) Easing {
	if name == "" {
		name = DefaultEasing
	}
	if e, ok := easingIndex[name]; ok {
		return e
	}
	return Easing{Name: name, CSS: name, Curve: ease.Linear}
}

// GenerateLut samples an easing into a look-up table of length entries
// spanning progress 0 to 1.
func GenerateLut(e Easing, length int) []float64 {
	if length <= 0 {
		return nil
	}
	lut := make([]float64, length)
	if length == 1 {
		lut[0] = e.Progress(1)
		return lut
	}
	increment := 1.0 / float64(length-1)
	for i := range lut {
		lut[i] = e.Progress(float64(i) * increment)
	}
	return lut
}

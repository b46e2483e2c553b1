package style

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolate blends from towards to at transition point t in [0,1]. Hex
// colours blend in HCL space, numbers sharing a unit blend linearly and
// anything else flips from the old value to the new one half way through.
// The result carries the keys of to.
func Interpolate(from, to Props, t float64) Props {
	t = math.Max(0, math.Min(1, t))
	out := make(Props, 0, len(to))
	for _, prop := range to {
		old, ok := from.Get(prop.Name)
		if !ok {
			out = append(out, prop)
			continue
		}
		out = append(out, Prop{prop.Name, blendValue(old, prop.Value, t)})
	}
	return out
}

func blendValue(a, b string, t float64) string {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	if c1, err := colorful.Hex(a); err == nil {
		if c2, err := colorful.Hex(b); err == nil {
			return c1.BlendHcl(c2, t).Clamped().Hex()
		}
	}
	n1, unit1, ok1 := splitNumber(a)
	n2, unit2, ok2 := splitNumber(b)
	if ok1 && ok2 && unit1 == unit2 {
		v := n1 + (n2-n1)*t
		v = math.Round(v*10000) / 10000
		return strconv.FormatFloat(v, 'f', -1, 64) + unit1
	}
	if t < 0.5 {
		return a
	}
	return b
}

// splitNumber splits "12.5px" into 12.5 and "px".
func splitNumber(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", false
	}
	return n, s[end:], true
}

package util

import (
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const nameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// TotalSpan is the time a step adds to a sequence: duration plus delay, minus
// the overlay pulled into the previous step. Never negative.
func TotalSpan(duration, delay, overlay float64) float64 {
	return math.Max(duration+delay-overlay, 0)
}

// SecToDuration converts seconds into a time.Duration for timers.
func SecToDuration(sec float64) time.Duration {
	if sec <= 0 || math.IsNaN(sec) {
		return 0
	}
	return time.Duration(sec * float64(time.Second))
}

// CamelCaseToDash turns backgroundColor into background-color.
func CamelCaseToDash(camelCase string) string {
	var b strings.Builder
	for _, r := range camelCase {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RandomName generates an animation-name token of the form RSI-xxxxxxxxx.
func RandomName() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = nameAlphabet[rand.Intn(len(nameAlphabet))]
	}
	return "RSI-" + string(b)
}

// Package sheet keeps the shared text stylesheet that compiled keyframe rules
// are inserted into.
package sheet

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// Tag marks the shared stylesheet so it is found and reused.
const Tag = "rsi"

var (
	// ErrMalformedRule is returned for rule text that is not a well formed
	// @keyframes block.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrSheetFull is returned when the sheet's rule limit is reached.
	ErrSheetFull = errors.New("sheet rule limit reached")
	// ErrIndexOutOfRange is returned for insert or delete positions past the
	// end of the sheet.
	ErrIndexOutOfRange = errors.New("rule index out of range")
)

// Rule is one @keyframes rule held by a Sheet.
type Rule struct {
	Name string
	Text string
}

// Sheet is an ordered list of rules, the in-memory stand-in for a style
// element.
type Sheet struct {
	mu    sync.Mutex
	tag   string
	limit int
	rules []Rule
}

// NewSheet creates an empty sheet. A limit of zero means unlimited.
func NewSheet(tag string, limit int) *Sheet {
	return &Sheet{tag: tag, limit: limit}
}

// Tag returns the identifying tag.
func (s *Sheet) Tag() string {
	return s.tag
}

// Len returns the current rule count.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rules)
}

// Rules returns a copy of the current rules.
func (s *Sheet) Rules() []Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// InsertRule parses text and inserts it at index.
func (s *Sheet) InsertRule(text string, index int) error {
	rule, err := ParseRule(text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.rules) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if s.limit > 0 && len(s.rules) >= s.limit {
		return ErrSheetFull
	}
	s.rules = append(s.rules, Rule{})
	copy(s.rules[index+1:], s.rules[index:])
	s.rules[index] = rule
	return nil
}

// DeleteRule removes the rule at index.
func (s *Sheet) DeleteRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rules) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.rules = append(s.rules[:index], s.rules[index+1:]...)
	return nil
}

// IndexOf returns the position of the first rule named name, or -1.
func (s *Sheet) IndexOf(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rule := range s.rules {
		if rule.Name == name {
			return i
		}
	}
	return -1
}

// String renders the sheet as CSS text, one rule per line.
func (s *Sheet) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, len(s.rules))
	for i, rule := range s.rules {
		texts[i] = rule.Text
	}
	return strings.Join(texts, "\n")
}

// ParseRule checks that text is "@keyframes <name> {...}" with balanced
// braces and returns the rule.
func ParseRule(text string) (Rule, error) {
	rest := strings.TrimSpace(text)
	if !strings.HasPrefix(rest, "@keyframes") {
		return Rule{}, fmt.Errorf("%w: missing @keyframes", ErrMalformedRule)
	}
	rest = strings.TrimLeftFunc(strings.TrimPrefix(rest, "@keyframes"), unicode.IsSpace)

	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return Rule{}, fmt.Errorf("%w: missing block", ErrMalformedRule)
	}
	name := strings.TrimSpace(rest[:open])
	if !validName(name) {
		return Rule{}, fmt.Errorf("%w: invalid name %q", ErrMalformedRule, name)
	}

	depth := 0
	for i, c := range rest[open:] {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return Rule{}, fmt.Errorf("%w: unbalanced braces", ErrMalformedRule)
			}
			if depth == 0 && strings.TrimSpace(rest[open+i+1:]) != "" {
				return Rule{}, fmt.Errorf("%w: trailing text", ErrMalformedRule)
			}
		}
	}
	if depth != 0 {
		return Rule{}, fmt.Errorf("%w: unbalanced braces", ErrMalformedRule)
	}
	return Rule{Name: name, Text: strings.TrimSpace(text)}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '-' || r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

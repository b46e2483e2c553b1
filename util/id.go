package util

import "strconv"

// ID identifies a step inside a sequence. It holds either an integer index or
// a string id; the zero value is index 0.
//
// Steps that set neither an index nor an id all resolve to index 0 and so
// share timing state inside a group. Callers must give every step of a
// sequence a distinct index or id.
type ID struct {
	index int
	name  string
}

// Index returns the integer identity n.
func Index(n int) ID {
	return ID{index: n}
}

// Named returns the string identity s.
func Named(s string) ID {
	return ID{name: s}
}

// IsNamed reports whether the identity is a string id.
func (id ID) IsNamed() bool {
	return id.name != ""
}

// Int returns the integer value of an index identity.
func (id ID) Int() int {
	return id.index
}

func (id ID) String() string {
	if id.IsNamed() {
		return id.name
	}
	return strconv.Itoa(id.index)
}

// ResolveID picks the identity of a step. An explicit non-negative index wins
// over an explicit id; with neither set the positional fallback is used.
// A nil index and an empty id both count as unset.
func ResolveID(index *int, id string, fallback int) ID {
	if index == nil && id == "" {
		return Index(fallback)
	}
	if index != nil && *index >= 0 {
		return Index(*index)
	}
	if id != "" {
		return Named(id)
	}
	return Index(0)
}

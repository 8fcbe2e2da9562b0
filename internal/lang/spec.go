package lang

import "strings"

// Wildcard is the command-line spelling of "every language".
const Wildcard = "all"

// Spec is either a single language or the wildcard.
type Spec struct {
	one Lang
}

// One returns a Spec for a single language.
func One(l Lang) Spec { return Spec{one: l} }

// Any returns the wildcard Spec.
func Any() Spec { return Spec{} }

// IsAll reports whether s is the wildcard.
func (s Spec) IsAll() bool { return s.one == "" }

// Lang returns the single language of s, or "" for the wildcard.
func (s Spec) Lang() Lang { return s.one }

// Variants expands s over universe: the wildcard yields universe, a single
// language yields itself.
func (s Spec) Variants(universe []Lang) []Lang {
	if s.IsAll() {
		return universe
	}
	return []Lang{s.one}
}

func (s Spec) String() string {
	if s.IsAll() {
		return Wildcard
	}
	return string(s.one)
}

// ParseSpec parses a language or the wildcard.
func ParseSpec(s string) (Spec, error) {
	if strings.EqualFold(strings.TrimSpace(s), Wildcard) {
		return Any(), nil
	}
	l, err := Parse(s)
	if err != nil {
		return Spec{}, err
	}
	return One(l), nil
}

// ParseEditionSpec parses an edition or the wildcard.
func ParseEditionSpec(s string) (Spec, error) {
	if strings.EqualFold(strings.TrimSpace(s), Wildcard) {
		return Any(), nil
	}
	e, err := ParseEdition(s)
	if err != nil {
		return Spec{}, err
	}
	return One(e), nil
}

package protocol

import "strings"

// Set is an ordered collection of protocols. Order is preserved for
// diagnostics; membership checks ignore it. A nil Set is empty.
type Set []Protocol

// NewSet builds a Set from the given protocols, dropping duplicates
// while preserving first-occurrence order.
func NewSet(protocols ...Protocol) Set {
	var s Set
	for _, p := range protocols {
		if !s.Contains(p) {
			s = append(s, p)
		}
	}
	return s
}

// IsEmpty reports whether the set has no protocols.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Contains reports whether the set includes the given protocol.
func (s Set) Contains(p Protocol) bool {
	for _, sp := range s {
		if sp == p {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the set is a superset of other.
// An empty other set is trivially covered.
func (s Set) ContainsAll(other Set) bool {
	for _, p := range other {
		if !s.Contains(p) {
			return false
		}
	}
	return true
}

// Names returns the protocol names in set order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.String()
	}
	return names
}

// String returns a space-separated, quoted list of the protocol names,
// matching the form used in selector diagnostics.
func (s Set) String() string {
	var b strings.Builder
	for i, p := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('\'')
		b.WriteString(p.String())
		b.WriteByte('\'')
	}
	return b.String()
}

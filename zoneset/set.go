// Package zoneset reads the list of zones to pack.
//
// A Set keeps zone identifiers in the order they were first added and
// silently ignores later duplicates. That order becomes the order of zone
// bytes in the archive data section, so it must be preserved exactly.
package zoneset

import "iter"

// Set is an insertion-ordered set of zone identifiers.
//
// Note: Set is NOT thread-safe.
type Set struct {
	index map[string]int
	names []string
}

// New creates an empty Set.
func New() *Set {
	return &Set{index: make(map[string]int)}
}

// Of creates a Set from names, collapsing duplicates.
func Of(names ...string) *Set {
	s := New()
	for _, name := range names {
		s.Add(name)
	}

	return s
}

// Add appends name if it is not already present. It reports whether the set changed.
func (s *Set) Add(name string) bool {
	if _, exists := s.index[name]; exists {
		return false
	}

	s.index[name] = len(s.names)
	s.names = append(s.names, name)

	return true
}

// Contains reports whether name is in the set.
func (s *Set) Contains(name string) bool {
	_, exists := s.index[name]
	return exists
}

// Len returns the number of distinct names.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns a copy of the names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

// All iterates over the names in insertion order.
func (s *Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range s.names {
			if !yield(name) {
				return
			}
		}
	}
}

package model

import "sort"

// Set is an unordered collection of unique strings.
// The zero value is not usable; create sets with NewSet.
type Set struct {
	items map[string]struct{}
}

// NewSet creates a Set holding the given values.
func NewSet(values ...string) *Set {
	s := &Set{items: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set) Add(v string) bool {
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v string) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Values returns the elements in unspecified order.
func (s *Set) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	return out
}

// Sorted returns the elements in lexicographic (byte-wise) order.
func (s *Set) Sorted() []string {
	out := s.Values()
	sort.Strings(out)
	return out
}

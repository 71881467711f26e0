package metro

import "sort"

// Set is an unordered collection of strings: line ids, colors or names.
type Set map[string]struct{}

// NewSet returns a set holding the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item into the set.
func (s Set) Add(item string) { s[item] = struct{}{} }

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Equal reports true set equality: same size and every element of s in o.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for item := range s {
		if !o.Has(item) {
			return false
		}
	}
	return true
}

// Intersect returns the elements present in both s and o.
func (s Set) Intersect(o Set) Set {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for item := range small {
		if large.Has(item) {
			out.Add(item)
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for item := range s {
		out.Add(item)
	}
	return out
}

// Sorted returns the elements in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

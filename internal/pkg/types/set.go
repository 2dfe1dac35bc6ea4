// Package types holds small generic containers shared across packages.
package types

// Set is a hash set for comparable types, backed by map[T]struct{}.
// Methods like Add modify the set in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a Set holding the given elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	set.Add(data...)
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Has reports whether value is in the set.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Difference returns a new set with the elements of s that are not in other.
// A nil other is treated as empty.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	diff := make(Set[T])
	for val := range s {
		if !other.Has(val) {
			diff[val] = struct{}{}
		}
	}
	return diff
}

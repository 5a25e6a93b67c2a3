package lang

import (
	"iter"
	"slices"
)

// KeySet is an ordered set of import keys. Keys are deduplicated on Add and
// sorted by compare once, on the first read after a change, so the contents
// never depend on insertion order.
type KeySet[K comparable] struct {
	compare func(a, b K) int
	seen    map[K]struct{}
	keys    []K
	sorted  bool
}

// NewKeySet returns an empty set ordered by compare.
func NewKeySet[K comparable](compare func(a, b K) int) *KeySet[K] {
	return &KeySet[K]{compare: compare, seen: make(map[K]struct{}), sorted: true}
}

// Add inserts k unless an equal key is already present.
func (s *KeySet[K]) Add(k K) {
	if _, ok := s.seen[k]; ok {
		return
	}
	s.seen[k] = struct{}{}
	s.keys = append(s.keys, k)
	s.sorted = false
}

func (s *KeySet[K]) sort() {
	if s.sorted {
		return
	}
	slices.SortFunc(s.keys, s.compare)
	// keys equal under compare but distinct as values collapse to the first
	s.keys = slices.CompactFunc(s.keys, func(a, b K) bool { return s.compare(a, b) == 0 })
	s.sorted = true
}

// Contains reports whether k is in the set.
func (s *KeySet[K]) Contains(k K) bool {
	s.sort()
	_, found := slices.BinarySearchFunc(s.keys, k, s.compare)
	return found
}

// Len returns the number of keys.
func (s *KeySet[K]) Len() int {
	s.sort()
	return len(s.keys)
}

// Sorted returns a copy of the keys in ascending order.
func (s *KeySet[K]) Sorted() []K {
	s.sort()
	return slices.Clone(s.keys)
}

// All yields the keys in ascending order.
func (s *KeySet[K]) All() iter.Seq[K] {
	s.sort()
	return slices.Values(s.keys)
}

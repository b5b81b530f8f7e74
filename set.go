package orderedmap

import "iter"

// Set is an insertion-ordered set of keys, backed by a Map with empty
// values. Adding a present key keeps its place; deleting a key and adding
// it again moves it to the back.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet returns an empty Set holding keys in the given order. Duplicates
// are ignored.
func NewSet[K comparable](keys []K, opts ...Option[K]) *Set[K] {
	s := &Set[K]{m: New[K, struct{}](opts...)}
	for _, k := range keys {
		s.Add(k)
	}

	return s
}

// Add puts key in the set and reports whether it was new.
func (s *Set[K]) Add(key K) bool {
	return s.m.Insert(key, struct{}{})
}

// Has reports whether key is in the set.
func (s *Set[K]) Has(key K) bool {
	return s.m.Contains(key)
}

// Delete removes key and reports whether it was present.
func (s *Set[K]) Delete(key K) bool {
	return s.m.Erase(key)
}

func (s *Set[K]) Len() int {
	return s.m.Len()
}

func (s *Set[K]) Clear() {
	s.m.Clear()
}

func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{m: s.m.Clone()}
}

// All returns an iterator over the keys, oldest first.
func (s *Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

func (s *Set[K]) Stats() Stats {
	return s.m.Stats()
}

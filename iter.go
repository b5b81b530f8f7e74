package orderedmap

import "iter"

// All returns an iterator over key-value pairs from m, oldest first.
//
// The loop body may erase any entry; erased entries that were not reached
// yet are not produced. Entries inserted by the loop body may or may not
// be produced. A rebuild during iteration panics.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	if m == nil {
		return func(func(K, V) bool) {}
	}

	return walkSeq[K, V](m, false)
}

// Backward returns an iterator over key-value pairs from m, newest first.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	if m == nil {
		return func(func(K, V) bool) {}
	}

	return walkSeq[K, V](m, true)
}

// Keys returns an iterator over keys in m, oldest first.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return keysOf(m.All())
}

// Values returns an iterator over values in m, oldest first.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return valuesOf(m.All())
}

func (m *ChainedMap[K, V]) All() iter.Seq2[K, V] {
	if m == nil {
		return func(func(K, V) bool) {}
	}

	return walkSeq[K, V](m, false)
}

func (m *ChainedMap[K, V]) Backward() iter.Seq2[K, V] {
	if m == nil {
		return func(func(K, V) bool) {}
	}

	return walkSeq[K, V](m, true)
}

func (m *ChainedMap[K, V]) Keys() iter.Seq[K] {
	return keysOf(m.All())
}

func (m *ChainedMap[K, V]) Values() iter.Seq[V] {
	return valuesOf(m.All())
}

func walkSeq[K comparable, V any](src positions[K, V], backward bool) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		w := walker[K, V]{src: src, r: src.orderRing(), backward: backward}
		epoch := src.generation()

		pos := w.r.front()
		if backward {
			pos = w.r.back()
		}

		for pos != w.r.sentinel() {
			following := w.step(pos)
			seq, mark := w.r.seqOf(pos), w.r.seq

			k, v := src.entry(pos)
			if !yield(*k, *v) {
				return
			}
			if src.generation() != epoch {
				panic("orderedmap: map rebuilt during iteration")
			}

			if src.occupied(pos) && w.r.seqOf(pos) == seq {
				pos = w.step(pos)
			} else {
				pos = w.resume(following, seq, mark)
			}
		}
	}
}

// walker moves a range over the order ring past entries erased by the
// loop body.
type walker[K comparable, V any] struct {
	src      positions[K, V]
	r        *ring
	backward bool
}

func (w walker[K, V]) step(pos int) int {
	if w.backward {
		return w.r.prev(pos)
	}

	return w.r.next(pos)
}

// resume returns where a walk goes on after the entry numbered last was
// erased. pos followed that entry before the loop body ran, and mark is
// the last sequence number handed out before the loop body ran.
//
// Positions erased since mark still link to the neighbours they had, so
// they are skipped by following their old links. A position linked again
// since mark has lost that trail and the ring is searched instead.
func (w walker[K, V]) resume(pos int, last, mark uint64) int {
	for pos != w.r.sentinel() {
		if w.r.seqOf(pos) > mark {
			return w.search(last)
		}
		if w.src.occupied(pos) {
			return pos
		}
		pos = w.step(pos)
	}

	return pos
}

// search scans the ring for the first live entry past the one numbered
// last in walk direction.
func (w walker[K, V]) search(last uint64) int {
	s := w.r.sentinel()
	found := s

	if w.backward {
		for pos := w.r.front(); pos != s && w.r.seqOf(pos) < last; pos = w.r.next(pos) {
			found = pos
		}
		return found
	}

	for pos := w.r.back(); pos != s && w.r.seqOf(pos) > last; pos = w.r.prev(pos) {
		found = pos
	}
	return found
}

func keysOf[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	}
}

func valuesOf[K, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

package orderedmap

// endPos is the position of every end iterator. It is never a valid slot,
// so End stays comparable across rebuilds, unlike the ring sentinel whose
// index follows the capacity.
const endPos = -1

// positions is implemented by Map and ChainedMap and gives an Iterator
// access to the order ring and the entry stored at a position.
type positions[K comparable, V any] interface {
	orderRing() *ring
	occupied(pos int) bool
	entry(pos int) (*K, *V)
	generation() uint64
}

// Iterator is a cursor over a map in insertion order. It is a small value
// and is meant to be copied.
//
// Any rebuild of the map (growth, shrink, compaction or Clear) invalidates
// every Iterator except End. Erasing a key without a rebuild invalidates
// only iterators positioned at that key. Dereferencing an invalidated
// iterator panics while the invalidation can be detected; see Valid.
type Iterator[K comparable, V any] struct {
	src   positions[K, V]
	pos   int
	epoch uint64
}

func newIterator[K comparable, V any](src positions[K, V], pos int) Iterator[K, V] {
	if pos == src.orderRing().sentinel() {
		return Iterator[K, V]{src: src, pos: endPos}
	}

	return Iterator[K, V]{src: src, pos: pos, epoch: src.generation()}
}

func endIterator[K comparable, V any](src positions[K, V]) Iterator[K, V] {
	return Iterator[K, V]{src: src, pos: endPos}
}

// IsEnd reports whether it is past the newest entry. The zero Iterator is
// an end iterator.
func (it Iterator[K, V]) IsEnd() bool {
	return it.src == nil || it.pos == endPos
}

// Valid reports whether it can be dereferenced.
func (it Iterator[K, V]) Valid() bool {
	return !it.IsEnd() && it.epoch == it.src.generation() && it.src.occupied(it.pos)
}

func (it Iterator[K, V]) check() {
	switch {
	case it.IsEnd():
		panic("orderedmap: dereference of end iterator")
	case it.epoch != it.src.generation():
		panic("orderedmap: iterator invalidated by rebuild")
	case !it.src.occupied(it.pos):
		panic("orderedmap: iterator points at an erased entry")
	}
}

// Key returns the key at the iterator's position.
func (it Iterator[K, V]) Key() K {
	it.check()
	k, _ := it.src.entry(it.pos)
	return *k
}

// Value returns a copy of the value at the iterator's position.
func (it Iterator[K, V]) Value() V {
	it.check()
	_, v := it.src.entry(it.pos)
	return *v
}

// Ref returns a pointer to the value at the iterator's position. The
// pointer is valid until the next rebuild.
func (it Iterator[K, V]) Ref() *V {
	it.check()
	_, v := it.src.entry(it.pos)
	return v
}

// Pair returns the key and value at the iterator's position.
func (it Iterator[K, V]) Pair() Pair[K, V] {
	it.check()
	k, v := it.src.entry(it.pos)
	return Pair[K, V]{Key: *k, Value: *v}
}

// Next returns an iterator at the next newer entry, or End. Next of End is
// End.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	if it.IsEnd() {
		return it
	}
	it.check()

	return newIterator(it.src, it.src.orderRing().next(it.pos))
}

// Prev returns an iterator at the next older entry. Prev of End is the
// newest entry, and Prev of the oldest entry is End.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	if it.src == nil {
		return it
	}

	r := it.src.orderRing()
	if it.pos == endPos {
		return newIterator(it.src, r.back())
	}
	it.check()

	return newIterator(it.src, r.prev(it.pos))
}

// Equal reports whether it and other point at the same position of the
// same map.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	if it.IsEnd() || other.IsEnd() {
		return it.IsEnd() && other.IsEnd() && it.src == other.src
	}

	return it.src == other.src && it.pos == other.pos && it.epoch == other.epoch
}

// Package orderedmap provides hash maps that iterate in insertion order.
//
// Map resolves collisions with open addressing and tombstones, ChainedMap
// with separate chaining. Both keep a doubly linked ring of entry
// positions next to the table, so iteration walks keys from the oldest to
// the newest insertion whatever their physical placement, and both have
// amortized O(1) Insert, Erase and lookup.
//
// Insert never overwrites: inserting a present key is a no-op. Erasing a
// key and inserting it again moves it to the back of the order.
//
// Neither type is safe for concurrent use. Overlapping writes are detected
// on a best-effort basis and panic.
package orderedmap

import (
	"errors"
	"fmt"
	"iter"

	"golang.org/x/exp/slices"
)

// ErrKeyNotFound is wrapped by the error At returns for an absent key.
var ErrKeyNotFound = errors.New("orderedmap: key not found")

// flags
const hashWriting = 1

// Pair is a key and its value.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is the contract shared by Map and ChainedMap.
type OrderedMap[K comparable, V any] interface {
	Len() int
	IsEmpty() bool
	Insert(key K, value V) bool
	Set(key K, value V)
	Erase(key K) bool
	Find(key K) Iterator[K, V]
	Get(key K) (V, bool)
	Contains(key K) bool
	Ref(key K) *V
	At(key K) (V, error)
	Begin() Iterator[K, V]
	End() Iterator[K, V]
	Clear()
	All() iter.Seq2[K, V]
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Backward() iter.Seq2[K, V]
	HashFunc() HashFunc[K]
	Stats() Stats
}

var (
	_ OrderedMap[int, int] = (*Map[int, int])(nil)
	_ OrderedMap[int, int] = (*ChainedMap[int, int])(nil)
)

// Map is an insertion-ordered hash map using open addressing with linear
// probing over groups of 8 slots.
//
// The table grows when live entries reach 75% of the capacity, is rebuilt
// in place when tombstones leave almost no empty slots, and shrinks when
// at least half of it is used and tombstones outnumber live entries.
// Capacity is a power of two and never below MinCapacity.
type Map[K comparable, V any] struct {
	table[K, V]

	initial  int
	flags    uint8
	rebuilds uint64
}

// New returns an empty Map.
func New[K comparable, V any](opts ...Option[K]) *Map[K, V] {
	o := buildOptions(opts)

	m := &Map[K, V]{initial: o.capacity}
	m.hashFunc = o.hashFunc
	m.init(o.capacity)

	return m
}

// From returns a Map holding pairs in order. For duplicate keys the first
// occurrence wins.
func From[K comparable, V any](pairs []Pair[K, V], opts ...Option[K]) *Map[K, V] {
	m := New[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}

	return m
}

// FromSeq returns a Map holding the pairs of seq in order. For duplicate
// keys the first occurrence wins.
func FromSeq[K comparable, V any](seq iter.Seq2[K, V], opts ...Option[K]) *Map[K, V] {
	m := New[K, V](opts...)
	InsertSeq[K, V](m, seq)

	return m
}

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}

	return m.live
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// HashFunc returns the hash function m was configured with.
func (m *Map[K, V]) HashFunc() HashFunc[K] {
	if m == nil {
		return nil
	}

	return m.hashFunc
}

func (m *Map[K, V]) startWrite(op string) {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because the hash function is chosen at construction.
		panic(op + " called on nil map")
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags ^= hashWriting
}

func (m *Map[K, V]) endWrite() {
	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

// Insert adds key with value at the back of the order. It is a no-op if
// key is present. Insert reports whether key was added.
func (m *Map[K, V]) Insert(key K, value V) bool {
	_, inserted := m.insert(key, value)
	return inserted
}

func (m *Map[K, V]) insert(key K, value V) (int, bool) {
	if m == nil {
		panic("Insert called on nil map")
	}
	// Hash before flagging the write, the hash function may panic.
	hash := m.hashFunc(key)
	m.startWrite("Insert")

	pos, inserted := m.place(hash, key, value)
	if inserted {
		switch {
		case overLoadFactor(m.live, int(m.capacity)):
			m.rebuild(int(m.capacity) * 2)
			pos = m.find(hash, key)
		case m.used*8 >= int(m.capacity)*7:
			// Too few empty slots are left to end probe sequences.
			m.rebuild(int(m.capacity))
			pos = m.find(hash, key)
		}
	}

	m.endWrite()
	return pos, inserted
}

// Set associates key with value. A present key keeps its place in the
// order; a new key goes to the back.
func (m *Map[K, V]) Set(key K, value V) {
	if pos := m.lookup(key); pos >= 0 {
		_, v := m.entry(pos)
		*v = value
		return
	}
	m.Insert(key, value)
}

// Erase removes key and reports whether it was present.
func (m *Map[K, V]) Erase(key K) bool {
	if m == nil || m.live == 0 {
		return false
	}
	hash := m.hashFunc(key)
	m.startWrite("Erase")

	removed := m.remove(hash, key) >= 0
	if removed {
		// Slots freed by remove count as neither used nor tombstones, so
		// only erases from full groups move m toward a shrink.
		capacity := int(m.capacity)
		tombstones := m.tombstones()
		if m.used*2 >= capacity && tombstones >= m.live {
			m.rebuild(max(capacity/2, MinCapacity))
		}
	}

	m.endWrite()
	return removed
}

func (m *Map[K, V]) lookup(key K) int {
	if m == nil || m.live == 0 {
		return -1
	}

	return m.find(m.hashFunc(key), key)
}

// Find returns an iterator at key, or End if key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	if pos := m.lookup(key); pos >= 0 {
		return newIterator[K, V](m, pos)
	}

	return m.End()
}

// Get returns the value of key and true, or the zero value and false.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if pos := m.lookup(key); pos >= 0 {
		_, v := m.entry(pos)
		return *v, true
	}

	var zero V
	return zero, false
}

func (m *Map[K, V]) Contains(key K) bool {
	return m.lookup(key) >= 0
}

// Ref returns a pointer to the value of key, inserting the zero value at
// the back of the order first if key is absent. The pointer is valid until
// the next rebuild.
func (m *Map[K, V]) Ref(key K) *V {
	pos := m.lookup(key)
	if pos < 0 {
		var zero V
		pos, _ = m.insert(key, zero)
	}

	_, v := m.entry(pos)
	return v
}

// At returns the value of key, or an error wrapping ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	return v, nil
}

// Begin returns an iterator at the oldest entry, or End if m is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	if m == nil {
		return Iterator[K, V]{}
	}

	return newIterator[K, V](m, m.order.front())
}

// End returns the past-the-newest iterator. It is not invalidated by
// rebuilds.
func (m *Map[K, V]) End() Iterator[K, V] {
	if m == nil {
		return Iterator[K, V]{}
	}

	return endIterator[K, V](m)
}

// Clear removes every entry and returns m to its initial capacity.
func (m *Map[K, V]) Clear() {
	if m == nil {
		return
	}
	m.startWrite("Clear")

	m.init(m.initial)
	m.rebuilds++

	m.endWrite()
}

// Clone returns a deep copy of m sharing only the hash function. Clone of
// a nil map is nil.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}

	return &Map[K, V]{
		table:    m.table.clone(),
		initial:  m.initial,
		rebuilds: m.rebuilds,
	}
}

func (m *Map[K, V]) Stats() Stats {
	if m == nil {
		return Stats{}
	}

	return makeStats(m.live, int(m.capacity), m.used, m.tombstones(), m.rebuilds)
}

// rebuild moves the live entries into a fresh table of the given capacity,
// doubled as needed to stay under the growth threshold. Entries are placed
// oldest first, which regenerates the order ring unchanged.
func (m *Map[K, V]) rebuild(capacity int) {
	capacity = fitCapacity(m.live, capacity)
	pairs := m.snapshot(slices.Grow([]Pair[K, V](nil), m.live))

	m.init(capacity)
	for _, p := range pairs {
		m.place(m.hashFunc(p.Key), p.Key, p.Value)
	}
	m.rebuilds++
}

func (m *Map[K, V]) orderRing() *ring {
	return &m.order
}

func (m *Map[K, V]) occupied(pos int) bool {
	gi, si := groupOf(pos)
	return pos >= 0 && pos < int(m.capacity) && m.groups[gi].ctrls[si] < slotEmpty
}

func (m *Map[K, V]) entry(pos int) (*K, *V) {
	gi, si := groupOf(pos)
	g := &m.groups[gi]
	return &g.keys[si], &g.values[si]
}

func (m *Map[K, V]) generation() uint64 {
	return m.rebuilds
}

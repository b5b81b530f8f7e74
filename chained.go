package orderedmap

import (
	"fmt"
	"iter"

	"golang.org/x/exp/slices"
)

const noEntry = -1

type chainEntry[K comparable, V any] struct {
	key   K
	value V
	hash  uint64
	// next is the following entry of the bucket chain, or of the free list
	// once the entry is released.
	next int
	live bool
}

// ChainedMap is an insertion-ordered hash map using separate chaining.
//
// Entries live in an arena and each bucket holds the arena index of its
// chain head. Every entry has its own node in the order ring, so keys
// sharing a bucket still iterate in insertion order. The table doubles at
// 75% load and halves at 25% load, never going below MinCapacity.
type ChainedMap[K comparable, V any] struct {
	buckets []int
	entries []chainEntry[K, V]
	free    int
	order   ring

	capacity int
	live     int
	// used counts non-empty buckets.
	used int

	hashFunc HashFunc[K]

	initial  int
	flags    uint8
	rebuilds uint64
}

// NewChained returns an empty ChainedMap.
func NewChained[K comparable, V any](opts ...Option[K]) *ChainedMap[K, V] {
	o := buildOptions(opts)

	m := &ChainedMap[K, V]{hashFunc: o.hashFunc, initial: o.capacity}
	m.init(o.capacity, 0)

	return m
}

// ChainedFrom returns a ChainedMap holding pairs in order. For duplicate
// keys the first occurrence wins.
func ChainedFrom[K comparable, V any](pairs []Pair[K, V], opts ...Option[K]) *ChainedMap[K, V] {
	m := NewChained[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}

	return m
}

// ChainedFromSeq returns a ChainedMap holding the pairs of seq in order.
func ChainedFromSeq[K comparable, V any](seq iter.Seq2[K, V], opts ...Option[K]) *ChainedMap[K, V] {
	m := NewChained[K, V](opts...)
	InsertSeq[K, V](m, seq)

	return m
}

func (m *ChainedMap[K, V]) init(capacity, hint int) {
	if len(m.buckets) != capacity {
		m.buckets = make([]int, capacity)
	}
	for i := range m.buckets {
		m.buckets[i] = noEntry
	}

	m.entries = slices.Grow(m.entries[:0], hint)
	m.free = noEntry
	m.order.reset(capacity)
	m.capacity = capacity
	m.live = 0
	m.used = 0
}

func (m *ChainedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}

	return m.live
}

func (m *ChainedMap[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *ChainedMap[K, V]) HashFunc() HashFunc[K] {
	if m == nil {
		return nil
	}

	return m.hashFunc
}

func (m *ChainedMap[K, V]) startWrite(op string) {
	if m == nil {
		panic(op + " called on nil map")
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags ^= hashWriting
}

func (m *ChainedMap[K, V]) endWrite() {
	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

func (m *ChainedMap[K, V]) bucket(hash uint64) int {
	return int(hash & uint64(m.capacity-1))
}

func (m *ChainedMap[K, V]) find(hash uint64, key K) int {
	for i := m.buckets[m.bucket(hash)]; i != noEntry; i = m.entries[i].next {
		if e := &m.entries[i]; e.hash == hash && e.key == key {
			return i
		}
	}

	return noEntry
}

func (m *ChainedMap[K, V]) alloc() int {
	if m.free != noEntry {
		idx := m.free
		m.free = m.entries[idx].next
		return idx
	}

	m.entries = append(m.entries, chainEntry[K, V]{})
	return len(m.entries) - 1
}

// place pushes a new entry at the head of its bucket chain and at the back
// of the order, unless key is present.
func (m *ChainedMap[K, V]) place(hash uint64, key K, value V) (int, bool) {
	if idx := m.find(hash, key); idx != noEntry {
		return idx, false
	}

	b := m.bucket(hash)
	if m.buckets[b] == noEntry {
		m.used++
	}

	idx := m.alloc()
	m.entries[idx] = chainEntry[K, V]{
		key:   key,
		value: value,
		hash:  hash,
		next:  m.buckets[b],
		live:  true,
	}
	m.buckets[b] = idx
	m.live++
	m.order.pushBack(idx)

	return idx, true
}

func (m *ChainedMap[K, V]) remove(hash uint64, key K) int {
	b := m.bucket(hash)

	prev := noEntry
	for i := m.buckets[b]; i != noEntry; prev, i = i, m.entries[i].next {
		e := &m.entries[i]
		if e.hash != hash || e.key != key {
			continue
		}

		if prev == noEntry {
			m.buckets[b] = e.next
		} else {
			m.entries[prev].next = e.next
		}
		if m.buckets[b] == noEntry {
			m.used--
		}

		// Release the entry, dropping references held by key and value.
		*e = chainEntry[K, V]{next: m.free}
		m.free = i
		m.live--
		m.order.unlink(i)

		return i
	}

	return noEntry
}

func (m *ChainedMap[K, V]) Insert(key K, value V) bool {
	_, inserted := m.insert(key, value)
	return inserted
}

func (m *ChainedMap[K, V]) insert(key K, value V) (int, bool) {
	if m == nil {
		panic("Insert called on nil map")
	}
	hash := m.hashFunc(key)
	m.startWrite("Insert")

	idx, inserted := m.place(hash, key, value)
	if inserted && overLoadFactor(m.live, m.capacity) {
		m.rebuild(m.capacity * 2)
		idx = m.find(hash, key)
	}

	m.endWrite()
	return idx, inserted
}

func (m *ChainedMap[K, V]) Set(key K, value V) {
	if idx := m.lookup(key); idx != noEntry {
		m.entries[idx].value = value
		return
	}
	m.Insert(key, value)
}

func (m *ChainedMap[K, V]) Erase(key K) bool {
	if m == nil || m.live == 0 {
		return false
	}
	hash := m.hashFunc(key)
	m.startWrite("Erase")

	removed := m.remove(hash, key) != noEntry
	if removed && m.live*4 <= m.capacity && m.capacity > MinCapacity {
		m.rebuild(m.capacity / 2)
	}

	m.endWrite()
	return removed
}

func (m *ChainedMap[K, V]) lookup(key K) int {
	if m == nil || m.live == 0 {
		return noEntry
	}

	return m.find(m.hashFunc(key), key)
}

func (m *ChainedMap[K, V]) Find(key K) Iterator[K, V] {
	if idx := m.lookup(key); idx != noEntry {
		return newIterator[K, V](m, idx)
	}

	return m.End()
}

func (m *ChainedMap[K, V]) Get(key K) (V, bool) {
	if idx := m.lookup(key); idx != noEntry {
		return m.entries[idx].value, true
	}

	var zero V
	return zero, false
}

func (m *ChainedMap[K, V]) Contains(key K) bool {
	return m.lookup(key) != noEntry
}

func (m *ChainedMap[K, V]) Ref(key K) *V {
	idx := m.lookup(key)
	if idx == noEntry {
		var zero V
		idx, _ = m.insert(key, zero)
	}

	return &m.entries[idx].value
}

func (m *ChainedMap[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	return v, nil
}

func (m *ChainedMap[K, V]) Begin() Iterator[K, V] {
	if m == nil {
		return Iterator[K, V]{}
	}

	return newIterator[K, V](m, m.order.front())
}

func (m *ChainedMap[K, V]) End() Iterator[K, V] {
	if m == nil {
		return Iterator[K, V]{}
	}

	return endIterator[K, V](m)
}

// Clear removes every entry and returns m to its initial capacity.
func (m *ChainedMap[K, V]) Clear() {
	if m == nil {
		return
	}
	m.startWrite("Clear")

	clear(m.entries)
	m.init(m.initial, 0)
	m.rebuilds++

	m.endWrite()
}

// Clone returns a deep copy of m sharing only the hash function. Clone of
// a nil map is nil.
func (m *ChainedMap[K, V]) Clone() *ChainedMap[K, V] {
	if m == nil {
		return nil
	}

	c := *m
	c.buckets = slices.Clone(m.buckets)
	c.entries = slices.Clone(m.entries)
	c.order = m.order.clone()
	c.flags = 0

	return &c
}

func (m *ChainedMap[K, V]) Stats() Stats {
	if m == nil {
		return Stats{}
	}

	return makeStats(m.live, m.capacity, m.used, 0, m.rebuilds)
}

// rebuild rehashes the live entries, oldest first, into a table of the
// given capacity. Cached hashes are reused and the arena is compacted.
func (m *ChainedMap[K, V]) rebuild(capacity int) {
	capacity = fitCapacity(m.live, capacity)

	live := slices.Grow([]chainEntry[K, V](nil), m.live)
	m.order.walk(func(idx int) bool {
		live = append(live, m.entries[idx])
		return true
	})

	m.entries = nil
	m.init(capacity, len(live))
	for _, e := range live {
		m.place(e.hash, e.key, e.value)
	}
	m.rebuilds++
}

func (m *ChainedMap[K, V]) orderRing() *ring {
	return &m.order
}

func (m *ChainedMap[K, V]) occupied(pos int) bool {
	return pos >= 0 && pos < len(m.entries) && m.entries[pos].live
}

func (m *ChainedMap[K, V]) entry(pos int) (*K, *V) {
	e := &m.entries[pos]
	return &e.key, &e.value
}

func (m *ChainedMap[K, V]) generation() uint64 {
	return m.rebuilds
}

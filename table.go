package orderedmap

import "golang.org/x/exp/slices"

// table is the open addressing storage behind Map.
//
// The hash picks a start group of 8 slots and groups are probed linearly,
// wrapping at the end. A lookup stops at the first group holding an empty
// slot, so an erased slot becomes a tombstone (slotDeleted) unless its
// group already has an empty slot, in which case no probe sequence can run
// through the group and the slot is made empty again.
//
// Every full slot is also a node of the order ring; positions are
// groupIndex*groupSize + slotIndex and the sentinel is position capacity.
type table[K comparable, V any] struct {
	groups []group[K, V]
	order  ring

	capacity      uintptr
	numGroupsMask uintptr
	// live counts full slots, used counts full and deleted ones.
	live int
	used int

	hashFunc HashFunc[K]

	emptyK K
	emptyV V
}

func (t *table[K, V]) init(capacity int) {
	numGroups := capacity / groupSize

	if len(t.groups) == numGroups {
		clear(t.groups)
	} else {
		t.groups = make([]group[K, V], numGroups)
	}
	t.capacity = uintptr(capacity)
	t.numGroupsMask = uintptr(numGroups - 1)

	// Initialize all control bytes to Empty
	for i := range t.groups {
		t.groups[i].ctrls = emptyCtrls
	}

	t.order.reset(capacity)
	t.live = 0
	t.used = 0
}

func (t *table[K, V]) startGroup(h1 uintptr) uintptr {
	return (h1 & (t.capacity - 1)) / groupSize
}

// find returns the position of key, or -1.
func (t *table[K, V]) find(hash uint64, key K) int {
	h1, h2 := HashSplit(hash)
	mask := t.numGroupsMask
	offset := t.startGroup(h1)

	for p := uintptr(0); p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := loadCtrls(&g.ctrls)

		// SIMD-like match
		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.keys[idx] == key {
				return int(offset*groupSize + idx)
			}

			matches = matches.removeFirst()
		}

		// Termination
		if matchEmpty(ctrl) != 0 {
			return -1
		}

		offset = (offset + 1) & mask
	}

	return -1
}

// place stores key at the first reusable slot of its probe path unless the
// key is already present, and links a new entry at the back of the order.
// It returns the key's position and whether it was inserted.
func (t *table[K, V]) place(hash uint64, key K, value V) (int, bool) {
	var (
		h1, h2 = HashSplit(hash)
		mask   = t.numGroupsMask
		offset = t.startGroup(h1)

		target    uintptr
		foundSlot bool
	)

	for p := uintptr(0); p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := loadCtrls(&g.ctrls)

		// 1. Existing check
		matchMask := matchH2(ctrl, h2)
		for matchMask != 0 {
			idx := matchMask.first()
			if g.keys[idx] == key {
				return int(offset*groupSize + idx), false
			}

			matchMask = matchMask.removeFirst()
		}

		// 2. Cache first available slot, tombstones included
		if !foundSlot {
			if m := matchEmptyOrDeleted(ctrl); m != 0 {
				target = offset*groupSize + m.first()
				foundSlot = true
			}
		}

		// 3. Termination condition
		if matchEmpty(ctrl) != 0 {
			break
		}

		offset = (offset + 1) & mask
	}

	if !foundSlot {
		// The resize policy keeps live entries under 75% of capacity.
		panic("orderedmap: no free slot on a full probe cycle")
	}

	pos := int(target)
	gi, si := groupOf(pos)
	g := &t.groups[gi]
	if g.ctrls[si] == slotEmpty {
		t.used++
	}
	g.ctrls[si] = h2
	g.keys[si] = key
	g.values[si] = value
	t.live++
	t.order.pushBack(pos)

	return pos, true
}

// remove erases key and unlinks it from the order. It returns the vacated
// position, or -1 if key was absent.
func (t *table[K, V]) remove(hash uint64, key K) int {
	pos := t.find(hash, key)
	if pos < 0 {
		return -1
	}

	gi, si := groupOf(pos)
	g := &t.groups[gi]
	if matchEmpty(loadCtrls(&g.ctrls)) != 0 {
		g.ctrls[si] = slotEmpty
		t.used--
	} else {
		// Mark as Deleted to preserve the probe chain
		g.ctrls[si] = slotDeleted
	}
	// Clear key and elem in case they have pointers
	g.keys[si] = t.emptyK
	g.values[si] = t.emptyV
	t.live--
	t.order.unlink(pos)

	return pos
}

// snapshot appends the live entries to dst from oldest to newest.
func (t *table[K, V]) snapshot(dst []Pair[K, V]) []Pair[K, V] {
	t.order.walk(func(pos int) bool {
		gi, si := groupOf(pos)
		g := &t.groups[gi]
		dst = append(dst, Pair[K, V]{Key: g.keys[si], Value: g.values[si]})
		return true
	})

	return dst
}

func (t *table[K, V]) tombstones() int {
	return t.used - t.live
}

func (t *table[K, V]) clone() table[K, V] {
	c := *t
	c.groups = slices.Clone(t.groups)
	c.order = t.order.clone()

	return c
}

package orderedmap

// link is a node of the order ring. prev and next are positions, not
// pointers, so the ring survives reallocation of the slot storage.
//
// seq numbers entries in insertion order, so it grows from the front of
// the ring to the back. An unlinked position keeps its last link and seq
// until it is linked again.
type link struct {
	prev, next int
	seq        uint64
}

// ring is a circular doubly linked list threaded through positions
// [0, capacity). Position capacity is the sentinel: its next is the oldest
// entry and its prev is the newest. An empty ring is the sentinel linked to
// itself.
type ring struct {
	links []link
	// seq is the last sequence number handed out by pushBack.
	seq uint64
}

func (r *ring) reset(capacity int) {
	if cap(r.links) >= capacity+1 {
		r.links = r.links[:capacity+1]
		clear(r.links)
	} else {
		r.links = make([]link, capacity+1)
	}

	s := capacity
	r.links[s] = link{prev: s, next: s}
}

func (r *ring) sentinel() int {
	return len(r.links) - 1
}

func (r *ring) front() int {
	return r.links[r.sentinel()].next
}

func (r *ring) back() int {
	return r.links[r.sentinel()].prev
}

func (r *ring) next(pos int) int {
	return r.links[pos].next
}

func (r *ring) prev(pos int) int {
	return r.links[pos].prev
}

func (r *ring) seqOf(pos int) uint64 {
	return r.links[pos].seq
}

// pushBack links pos as the newest position.
func (r *ring) pushBack(pos int) {
	s := r.sentinel()
	last := r.links[s].prev

	r.seq++
	r.links[pos] = link{prev: last, next: s, seq: r.seq}
	r.links[last].next = pos
	r.links[s].prev = pos
}

// unlink removes pos from the ring and relinks its neighbours. The link of
// pos is left as it was, still pointing at the old neighbours.
func (r *ring) unlink(pos int) {
	l := r.links[pos]
	r.links[l.prev].next = l.next
	r.links[l.next].prev = l.prev
}

func (r *ring) clone() ring {
	return ring{links: append([]link(nil), r.links...), seq: r.seq}
}

// walk calls f for every position from oldest to newest until f returns
// false.
func (r *ring) walk(f func(pos int) bool) {
	s := r.sentinel()
	for pos := r.links[s].next; pos != s; pos = r.links[pos].next {
		if !f(pos) {
			return
		}
	}
}

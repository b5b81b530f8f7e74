package orderedmap

import "hash/maphash"

// HashFunc maps a key to a 64-bit hash. It must be deterministic for the
// lifetime of a map, and equal keys must produce equal hashes.
type HashFunc[K comparable] func(K) uint64

func MakeDefaultHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// HashSplit splits a hash into the probe start (h1) and a 7-bit
// fingerprint (h2) stored in the control byte of a full slot.
// The fingerprint is taken from the top bits, so it stays independent of
// the low bits used to pick a position.
func HashSplit(hash uint64) (uintptr, uint8) {
	h1 := uintptr(hash)
	h2 := uint8(hash >> 57)

	return h1, h2
}

package orderedmap

import (
	"math/bits"
	"unsafe"
)

// MinCapacity is the smallest number of slots a map ever has.
const MinCapacity = 128

// maxCapacity caps capacity hints so that load factor math cannot overflow.
const maxCapacity = 1 << (bits.UintSize - 3)

// normalizeCapacity rounds hint up to a power of two no smaller than
// MinCapacity.
func normalizeCapacity(hint int) int {
	switch {
	case hint <= MinCapacity:
		return MinCapacity
	case hint >= maxCapacity:
		return maxCapacity
	}

	return 1 << bits.Len(uint(hint-1))
}

// overLoadFactor reports whether count live entries reach the 75% growth
// threshold of a table with capacity slots.
func overLoadFactor(count, capacity int) bool {
	return count*4 >= capacity*3
}

// fitCapacity doubles capacity until count entries stay under the growth
// threshold.
func fitCapacity(count, capacity int) int {
	for overLoadFactor(count, capacity) {
		capacity *= 2
	}

	return capacity
}

// Estimates capacity (number of slots) of an open addressing Map from the
// given memory size in bytes. The result is suitable for WithCapacity.
func CapacityFromSize[K comparable, V any](size uintptr) int {
	sizeOfGroup := unsafe.Sizeof(group[K, V]{}) + groupSize*unsafe.Sizeof(link{})
	numGroups := size / sizeOfGroup

	return int(numGroups * groupSize)
}

package orderedmap

const (
	groupSize = 8

	slotEmpty   = 0x80
	slotDeleted = 0xFE
)

var emptyCtrls = [groupSize]uint8{
	slotEmpty, slotEmpty, slotEmpty, slotEmpty,
	slotEmpty, slotEmpty, slotEmpty, slotEmpty,
}

type group[K comparable, V any] struct {
	// 8 bytes of metadata (h2 or control states)
	// This fits perfectly in a single uint64 load
	ctrls [groupSize]uint8

	// Keys and values of the 8 slots. A slot's position in the order ring
	// is groupIndex*groupSize + slotIndex.
	keys   [groupSize]K
	values [groupSize]V
}

func groupOf(pos int) (int, int) {
	return pos / groupSize, pos % groupSize
}

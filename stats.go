package orderedmap

type Stats struct {
	Size     int
	Capacity int
	// Used counts slots that terminate no probe: live entries plus
	// tombstones for a Map, non-empty buckets for a ChainedMap.
	Used       int
	Tombstones int
	Rebuilds   uint64

	LoadFactor              float32
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}

func makeStats(size, capacity, used, tombstones int, rebuilds uint64) Stats {
	s := Stats{
		Size:       size,
		Capacity:   capacity,
		Used:       used,
		Tombstones: tombstones,
		Rebuilds:   rebuilds,
		LoadFactor: float32(size) / float32(capacity),

		TombstonesCapacityRatio: float32(tombstones) / float32(capacity),
	}
	if size > 0 {
		s.TombstonesSizeRatio = float32(tombstones) / float32(size)
	}

	return s
}

package orderedmap

import "hash/maphash"

type options[K comparable] struct {
	hashFunc HashFunc[K]
	capacity int
}

// Option configures a Map, a ChainedMap or a Set at construction.
type Option[K comparable] func(o *options[K])

// Override default hash function.
func WithHashFunc[K comparable](f HashFunc[K]) Option[K] {
	return func(o *options[K]) {
		o.hashFunc = f
	}
}

// WithCapacity sets the initial number of slots. It is rounded up to a
// power of two and never goes below MinCapacity. Clear returns the map to
// this capacity.
func WithCapacity[K comparable](capacity int) Option[K] {
	return func(o *options[K]) {
		o.capacity = capacity
	}
}

func buildOptions[K comparable](opts []Option[K]) options[K] {
	var o options[K]
	for _, opt := range opts {
		opt(&o)
	}

	if o.hashFunc == nil {
		o.hashFunc = MakeDefaultHashFunc[K](maphash.MakeSeed())
	}
	o.capacity = normalizeCapacity(o.capacity)

	return o
}

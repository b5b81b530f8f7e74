package orderedmap

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/exp/slices"
)

// InsertSeq inserts the pairs of seq into m in order. Keys already in m,
// or repeated in seq, keep their first value.
func InsertSeq[K comparable, V any](m OrderedMap[K, V], seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Insert(k, v)
	}
}

// KeysOf returns the keys of m, oldest first.
func KeysOf[K comparable, V any](m OrderedMap[K, V]) []K {
	keys := slices.Grow([]K(nil), m.Len())
	for k := range m.Keys() {
		keys = append(keys, k)
	}

	return keys
}

// ValuesOf returns the values of m in key insertion order.
func ValuesOf[K comparable, V any](m OrderedMap[K, V]) []V {
	values := slices.Grow([]V(nil), m.Len())
	for v := range m.Values() {
		values = append(values, v)
	}

	return values
}

// PairsOf returns the entries of m, oldest first.
func PairsOf[K comparable, V any](m OrderedMap[K, V]) []Pair[K, V] {
	pairs := slices.Grow([]Pair[K, V](nil), m.Len())
	for k, v := range m.All() {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}

	return pairs
}

// String converts m to a string representation using K's and E's
// String functions.
func String[K interface {
	comparable
	fmt.Stringer
}, V fmt.Stringer](m OrderedMap[K, V]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(value V) string { return value.String() },
	)
}

// StringFunc converts m to a string representation with the help of
// strK and strV, listing entries in insertion order.
func StringFunc[K comparable, V any](m OrderedMap[K, V],
	strK func(key K) string,
	strV func(value V) string) string {
	if m == nil || m.Len() == 0 {
		return "orderedmap[]"
	}

	var b strings.Builder
	b.WriteString("orderedmap[")
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(strK(k))
		b.WriteByte(':')
		b.WriteString(strV(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if m1 and m2 hold the same keys in the same order
// with equal values. Values are compared using ==.
func Equal[K, V comparable](m1, m2 OrderedMap[K, V]) bool {
	return EqualFunc(m1, m2, func(a, b V) bool { return a == b })
}

// EqualFunc is like Equal but compares values using eq.
func EqualFunc[K comparable, V any](m1, m2 OrderedMap[K, V], eq func(V, V) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}

	next, stop := iter.Pull2(m2.All())
	defer stop()

	for k1, v1 := range m1.All() {
		k2, v2, ok := next()
		if !ok || k1 != k2 || !eq(v1, v2) {
			return false
		}
	}

	return true
}

package orderedmap_test

import (
	"errors"
	"fmt"

	"github.com/homier/orderedmap"
)

func Example() {
	m := orderedmap.New[string, int]()
	m.Insert("one", 1)
	m.Insert("two", 2)
	m.Insert("three", 3)

	// Insert never overwrites.
	m.Insert("one", 100)

	m.Erase("two")
	m.Insert("two", 22)

	for k, v := range m.All() {
		fmt.Println(k, v)
	}

	// Output:
	// one 1
	// three 3
	// two 22
}

func ExampleMap_Begin() {
	m := orderedmap.From([]orderedmap.Pair[int, string]{
		{Key: 3, Value: "c"},
		{Key: 1, Value: "a"},
		{Key: 2, Value: "b"},
	})

	for it := m.Begin(); !it.Equal(m.End()); it = it.Next() {
		*it.Ref() += "!"
	}

	for it := m.End().Prev(); !it.IsEnd(); it = it.Prev() {
		fmt.Println(it.Key(), it.Value())
	}

	// Output:
	// 2 b!
	// 1 a!
	// 3 c!
}

func ExampleChainedMap_At() {
	m := orderedmap.NewChained[string, int]()
	*m.Ref("hits") += 2

	v, err := m.At("hits")
	fmt.Println(v, err)

	_, err = m.At("misses")
	fmt.Println(errors.Is(err, orderedmap.ErrKeyNotFound))

	// Output:
	// 2 <nil>
	// true
}

func ExampleStringFunc() {
	s := orderedmap.NewSet([]string{"b", "a", "b"})
	s.Add("c")

	m := orderedmap.NewChained[string, int]()
	for k := range s.All() {
		m.Insert(k, len(k))
	}

	fmt.Println(orderedmap.StringFunc[string, int](m,
		func(k string) string { return k },
		func(v int) string { return fmt.Sprint(v) },
	))

	// Output:
	// orderedmap[b:1 a:1 c:1]
}

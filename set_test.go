package orderedmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basic(t *testing.T) {
	s := NewSet([]string{"b", "a", "b", "c"})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "a", "c"}, slices.Collect(s.All()))

	assert.False(t, s.Add("a"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))

	require.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	require.True(t, s.Add("b"))
	assert.Equal(t, []string{"a", "c", "b"}, slices.Collect(s.All()))
}

func TestSet_CloneClear(t *testing.T) {
	s := NewSet([]int{1, 2, 3})
	c := s.Clone()

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, uint64(1), s.Stats().Rebuilds)
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(c.All()))
}

func TestSet_Churn(t *testing.T) {
	s := NewSet[int](nil, WithCapacity[int](1024))

	for i := range 10000 {
		s.Add(i)
		if i >= 100 {
			require.True(t, s.Delete(i-100))
		}
	}

	want := make([]int, 0, 100)
	for i := 9900; i < 10000; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, slices.Collect(s.All()))
}

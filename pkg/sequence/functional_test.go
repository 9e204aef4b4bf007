package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	t.Run("Collect and Filter", func(t *testing.T) {
		evens := From([]int{1, 2, 3, 4, 5, 6}).Filter(func(v int) bool { return v%2 == 0 }).Collect()
		require.Equal(t, []int{2, 4, 6}, evens)
	})

	t.Run("Filter is lazy", func(t *testing.T) {
		visited := 0
		it := From([]int{1, 2, 3, 4}).Filter(func(v int) bool {
			visited++
			return v > 2
		})
		require.Zero(t, visited)
		require.Equal(t, 2, it.Count())
		require.Equal(t, 4, visited)
	})

	t.Run("Count", func(t *testing.T) {
		require.Equal(t, 3, From([]int{7, 8, 9}).Count())
		require.Zero(t, From([]int(nil)).Count())
	})

	t.Run("Empty collect", func(t *testing.T) {
		require.Empty(t, From([]string{"a"}).Filter(func(s string) bool { return s == "b" }).Collect())
	})
}

func TestHelpers(t *testing.T) {
	it := From([]string{"a", "bb", "cc", "ddd"})

	require.Equal(t, 8, Fold(it, 0, func(acc int, s string) int { return acc + len(s) }))
	require.Equal(t, []int{1, 2, 2, 3}, ToArray(it, func(s string) int { return len(s) }))
	require.Equal(t, "x", Fold(From([]string(nil)), "x", func(acc string, s string) string { return acc + s }))

	groups := GroupBy(it, func(s string) int { return len(s) })
	require.Equal(t, []string{"bb", "cc"}, groups[2])
	require.Len(t, groups, 3)
}

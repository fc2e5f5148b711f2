package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sulcigo/mesh"
)

func TestDetect(t *testing.T) {
	// 6-vertex strip: rows (0,1), (2,3), (4,5).
	faces := []mesh.Face{{0, 1, 2}, {1, 3, 2}, {2, 3, 4}, {3, 5, 4}}
	adj, err := mesh.NewAdjacency(faces, 6)
	require.NoError(t, err)

	t.Run("labeled strip", func(t *testing.T) {
		labels := []int{1, 1, 2, 2, -1, -1}
		res := Detect([]int{0, 1, 2, 3, 4, 5}, labels, adj, []int{-1})

		// Every vertex on the 1|2 border, once per differing edge.
		assert.Equal(t, []int{0, 1, 1, 2, 2, 3}, res.Vertices)
		assert.Equal(t, [][2]int{{1, 2}, {1, 2}, {1, 2}, {2, 1}, {2, 1}, {2, 1}}, res.Pairs)
		assert.Equal(t, [][2]int{{1, 2}}, res.UniquePairs)
	})

	t.Run("without ignore list the unlabeled border shows up", func(t *testing.T) {
		labels := []int{1, 1, 2, 2, -1, -1}
		res := Detect([]int{0, 1, 2, 3, 4, 5}, labels, adj, nil)

		assert.Equal(t, [][2]int{{-1, 2}, {1, 2}}, res.UniquePairs)
	})

	t.Run("uniform labels yield no boundary", func(t *testing.T) {
		res := Detect([]int{0, 1, 2, 3, 4, 5}, []int{7, 7, 7, 7, 7, 7}, adj, nil)

		assert.Empty(t, res.Vertices)
		assert.Empty(t, res.UniquePairs)
	})

	t.Run("subset restricts emissions", func(t *testing.T) {
		labels := []int{1, 1, 2, 2, -1, -1}
		res := Detect([]int{0, 1}, labels, adj, []int{-1})

		assert.Equal(t, []int{0, 1, 1}, res.Vertices)
	})
}

func TestSortPair(t *testing.T) {
	assert.Equal(t, [2]int{1, 2}, SortPair([2]int{2, 1}))
	assert.Equal(t, [2]int{1, 2}, SortPair([2]int{1, 2}))
}

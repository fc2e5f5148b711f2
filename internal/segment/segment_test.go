package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sulcigo/mesh"
)

// strip builds a 2-column triangle strip with the given number of rows.
// Vertex (r, c) has index 2*r+c.
func strip(t *testing.T, rows int) *mesh.Adjacency {
	t.Helper()

	var faces []mesh.Face
	for r := 0; r < rows-1; r++ {
		v := 2 * r
		faces = append(faces, mesh.Face{v, v + 1, v + 2}, mesh.Face{v + 1, v + 3, v + 2})
	}

	adj, err := mesh.NewAdjacency(faces, 2*rows)
	require.NoError(t, err)

	return adj
}

func TestSegmentComponents(t *testing.T) {
	adj := strip(t, 6)

	t.Run("two components", func(t *testing.T) {
		// Rows 0-1 and rows 4-5, leaving rows 2-3 out.
		regions := Segment([]int{0, 1, 2, 3, 8, 9, 10, 11}, adj)

		assert.Equal(t, []int{0, 0, 0, 0, -1, -1, -1, -1, 1, 1, 1, 1}, regions)
	})

	t.Run("component ID order follows candidate order", func(t *testing.T) {
		regions := Segment([]int{8, 9, 10, 11, 0, 1, 2, 3}, adj)

		assert.Equal(t, 0, regions[8])
		assert.Equal(t, 1, regions[0])
	})

	t.Run("empty input", func(t *testing.T) {
		regions := Segment(nil, adj)

		for _, r := range regions {
			assert.Equal(t, Unassigned, r)
		}
	})

	t.Run("min region size", func(t *testing.T) {
		regions := Segment([]int{0, 8, 9, 10, 11}, adj, func(o *Options) {
			o.MinRegionSize = 2
		})

		assert.Equal(t, Unassigned, regions[0])
		assert.NotEqual(t, Unassigned, regions[8])
	})
}

func TestSegmentSeeded(t *testing.T) {
	adj := strip(t, 6)
	all := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	t.Run("two seeds split the strip", func(t *testing.T) {
		regions := Segment(all, adj, func(o *Options) {
			o.Seeds = [][]int{{0}, {11}}
		})

		assert.Equal(t, 0, regions[0])
		assert.Equal(t, 0, regions[1])
		assert.Equal(t, 1, regions[11])
		assert.Equal(t, 1, regions[10])

		for _, r := range regions {
			assert.NotEqual(t, Unassigned, r)
		}
	})

	t.Run("lower seed-list index wins ties", func(t *testing.T) {
		// Seeds at both ends of an even strip; the middle rows are
		// equidistant and must go to seed list 0.
		regions := Segment(all, adj, func(o *Options) {
			o.Seeds = [][]int{{0, 1}, {10, 11}}
		})

		// Vertex 4 is two hops from row 0 and two hops from row 5 via
		// vertex 6; the round order gives it to the lower list.
		assert.Equal(t, 0, regions[4])
	})

	t.Run("max steps leaves far vertices unassigned", func(t *testing.T) {
		regions := Segment(all, adj, func(o *Options) {
			o.Seeds = [][]int{{0}}
			o.MaxSteps = 1
		})

		assert.Equal(t, 0, regions[0])
		assert.Equal(t, 0, regions[1])
		assert.Equal(t, 0, regions[2])
		assert.Equal(t, Unassigned, regions[11])
	})

	t.Run("seed outside candidates is ignored", func(t *testing.T) {
		regions := Segment([]int{0, 1, 2, 3}, adj, func(o *Options) {
			o.Seeds = [][]int{{11}, {0}}
		})

		assert.Equal(t, Unassigned, regions[11])
		assert.Equal(t, 1, regions[0])
	})

	t.Run("spread within labels", func(t *testing.T) {
		labels := []int{7, 7, 7, 7, 9, 9, 9, 9, 9, 9, 9, 9}

		regions := Segment(all, adj, func(o *Options) {
			o.Seeds = [][]int{{0}}
			o.SpreadWithinLabels = true
			o.Labels = labels
		})

		assert.Equal(t, 0, regions[3])
		assert.Equal(t, Unassigned, regions[4], "growth must stop at the label border")
	})
}

func TestRenumber(t *testing.T) {
	regions := []int{-1, 5, 5, 2, -1, 9, 2}
	n := Renumber(regions)

	assert.Equal(t, 3, n)
	assert.Equal(t, []int{-1, 0, 0, 1, -1, 2, 1}, regions)
}

func TestMembers(t *testing.T) {
	members := Members([]int{-1, 0, 1, 0, -1, 1})

	assert.Equal(t, map[int][]int{
		0: {1, 3},
		1: {2, 5},
	}, members)
}

package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sulcigo/mesh"
	"github.com/hupe1980/sulcigo/testutil"
)

func TestFillHoles(t *testing.T) {
	// 5x5 grid; region 0 is a ring around the center vertex, leaving the
	// center as an enclosed hole and the grid border as background.
	m := testutil.GridMesh(5, 5)
	adj, err := mesh.NewAdjacencyFromMesh(m)
	require.NoError(t, err)

	regions := testutil.FilledInts(25, -1)
	for _, rc := range [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {3, 3}} {
		regions[testutil.GridIndex(rc[0], rc[1], 5)] = 0
	}

	center := testutil.GridIndex(2, 2, 5)

	t.Run("enclosed hole adopts the surrounding region", func(t *testing.T) {
		out := FillHoles(regions, adj)

		assert.Equal(t, 0, out[center])

		// The outer border stays background.
		assert.Equal(t, -1, out[0])
		assert.Equal(t, -1, out[24])

		// Input is not modified.
		assert.Equal(t, -1, regions[center])
	})

	t.Run("exclusion range keeps the hole open", func(t *testing.T) {
		depths := testutil.ConstantDepths(25, 2.0)
		depths[center] = 0.0005

		out := FillHoles(regions, adj, func(o *Options) {
			o.Values = depths
			o.ExcludeLo = 0
			o.ExcludeHi = 0.001
		})

		assert.Equal(t, -1, out[center])
	})

	t.Run("no holes returns the array unchanged", func(t *testing.T) {
		full := testutil.FilledInts(25, 0)
		out := FillHoles(full, adj)

		assert.Equal(t, full, out)
	})
}

func TestFillHolesMajorityVote(t *testing.T) {
	// 5x5 grid with the center hole bordered by region 1 on three sides
	// and region 0 on one side.
	m := testutil.GridMesh(5, 5)
	adj, err := mesh.NewAdjacencyFromMesh(m)
	require.NoError(t, err)

	regions := testutil.FilledInts(25, -1)
	for _, rc := range [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {3, 1}, {3, 2}, {3, 3}} {
		regions[testutil.GridIndex(rc[0], rc[1], 5)] = 1
	}
	regions[testutil.GridIndex(2, 3, 5)] = 0

	out := FillHoles(regions, adj)

	assert.Equal(t, 1, out[testutil.GridIndex(2, 2, 5)])
}

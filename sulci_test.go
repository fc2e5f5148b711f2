package sulcigo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sulcigo"
	"github.com/hupe1980/sulcigo/mesh"
	"github.com/hupe1980/sulcigo/protocol"
	"github.com/hupe1980/sulcigo/testutil"
)

func stripAdjacency(t *testing.T) *mesh.Adjacency {
	t.Helper()

	adj, err := mesh.NewAdjacencyFromMesh(testutil.StripMesh())
	require.NoError(t, err)

	return adj
}

func TestIdentifySulci(t *testing.T) {
	ctx := context.Background()

	pairProto := protocol.New([]protocol.Definition{
		{Name: "test sulcus", Pairs: []protocol.Pair{protocol.NewPair(1, 2)}},
	})

	t.Run("exact label set match", func(t *testing.T) {
		adj := stripAdjacency(t)

		labels := []int{1, 1, 2, 2, -1, -1}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 0, 0, 0, -1, -1}, res.SulcusIDs)
		assert.Equal(t, 1, res.NumSulci)
		assert.Empty(t, res.Unaccounted)
	})

	t.Run("single label stays unassigned", func(t *testing.T) {
		adj := stripAdjacency(t)

		labels := []int{1, 1, 1, 1, 1, 1}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		assert.Equal(t, []int{-1, -1, -1, -1, -1, -1}, res.SulcusIDs)
		assert.Zero(t, res.NumSulci)
		assert.Equal(t, []int{0}, res.Unaccounted)
	})

	t.Run("unlabeled fold stays unassigned", func(t *testing.T) {
		adj := stripAdjacency(t)

		labels := []int{-1, -1, -1, -1, -1, -1}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		assert.Equal(t, []int{-1, -1, -1, -1, -1, -1}, res.SulcusIDs)
	})

	t.Run("no protocol boundary pair stays unassigned", func(t *testing.T) {
		adj := stripAdjacency(t)

		labels := []int{7, 7, 8, 8, 8, 8}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		assert.Equal(t, []int{-1, -1, -1, -1, -1, -1}, res.SulcusIDs)
	})

	t.Run("unique containment assigns the superset definition", func(t *testing.T) {
		adj := stripAdjacency(t)

		proto := protocol.New([]protocol.Definition{
			{Name: "a", Pairs: []protocol.Pair{protocol.NewPair(1, 2), protocol.NewPair(2, 3)}},
			{Name: "b", Pairs: []protocol.Pair{protocol.NewPair(4, 5)}},
		})

		labels := []int{1, 1, 2, 2, -1, -1}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, proto)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 0, 0, 0, -1, -1}, res.SulcusIDs)
	})

	t.Run("idempotent", func(t *testing.T) {
		adj := stripAdjacency(t)

		labels := []int{1, 1, 2, 2, -1, -1}
		foldIDs := []int{0, 0, 0, 0, 0, 0}

		first, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		second, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, pairProto)
		require.NoError(t, err)

		assert.Equal(t, first.SulcusIDs, second.SulcusIDs)
	})

	t.Run("independent folds are resolved separately", func(t *testing.T) {
		// Two disjoint folds on a 6-row strip: rows 0-1 labeled 1|2, rows
		// 4-5 labeled 4|5.
		var faces []mesh.Face
		for r := 0; r < 5; r++ {
			v := 2 * r
			faces = append(faces, mesh.Face{v, v + 1, v + 2}, mesh.Face{v + 1, v + 3, v + 2})
		}

		adj, err := mesh.NewAdjacency(faces, 12)
		require.NoError(t, err)

		proto := protocol.New([]protocol.Definition{
			{Name: "a", Pairs: []protocol.Pair{protocol.NewPair(1, 2)}},
			{Name: "b", Pairs: []protocol.Pair{protocol.NewPair(4, 5)}},
		})

		labels := []int{1, 1, 2, 2, -1, -1, -1, -1, 4, 4, 5, 5}
		foldIDs := []int{0, 0, 0, 0, -1, -1, -1, -1, 1, 1, 1, 1}

		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, proto)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 0, 0, 0, -1, -1, -1, -1, 1, 1, 1, 1}, res.SulcusIDs)
		assert.Equal(t, 2, res.NumSulci)
	})

	t.Run("nil protocol", func(t *testing.T) {
		adj := stripAdjacency(t)

		_, err := sulcigo.IdentifySulci(ctx, make([]int, 6), make([]int, 6), adj, nil)
		require.ErrorIs(t, err, sulcigo.ErrNilProtocol)
	})

	t.Run("length mismatch", func(t *testing.T) {
		adj := stripAdjacency(t)

		_, err := sulcigo.IdentifySulci(ctx, make([]int, 3), make([]int, 6), adj, pairProto)

		var lm *sulcigo.ErrLengthMismatch
		require.ErrorAs(t, err, &lm)
	})
}

func TestIdentifySulciAmbiguous(t *testing.T) {
	ctx := context.Background()

	// 4x6 grid labeled in three vertical bands 1|2|3; the fold spans the
	// whole grid. The label 2 band borders both definitions, so the fold
	// is ambiguous and is resolved by competing boundary growth.
	m := testutil.GridMesh(4, 6)
	adj, err := mesh.NewAdjacencyFromMesh(m)
	require.NoError(t, err)

	proto := protocol.New([]protocol.Definition{
		{Name: "left", Pairs: []protocol.Pair{protocol.NewPair(1, 2)}},
		{Name: "right", Pairs: []protocol.Pair{protocol.NewPair(2, 3)}},
	})

	labels := make([]int, 24)
	foldIDs := make([]int, 24)

	for r := 0; r < 4; r++ {
		for c := 0; c < 6; c++ {
			v := testutil.GridIndex(r, c, 6)
			labels[v] = 1 + c/2
		}
	}

	t.Run("remainder pairs split the fold", func(t *testing.T) {
		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, proto)
		require.NoError(t, err)

		for r := 0; r < 4; r++ {
			assert.Equal(t, 0, res.SulcusIDs[testutil.GridIndex(r, 0, 6)])
			assert.Equal(t, 1, res.SulcusIDs[testutil.GridIndex(r, 5, 6)])
		}

		assert.Equal(t, 2, res.NumSulci)
		assert.Empty(t, res.Unaccounted)
	})

	t.Run("min boundary filter drops short seeds", func(t *testing.T) {
		res, err := sulcigo.IdentifySulci(ctx, labels, foldIDs, adj, proto, func(o *sulcigo.SulcusOptions) {
			o.MinBoundary = 100
		})
		require.NoError(t, err)

		assert.Zero(t, res.NumSulci)
	})
}

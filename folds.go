package sulcigo

import (
	"context"
	"math"

	"github.com/hupe1980/sulcigo/internal/histogram"
	"github.com/hupe1980/sulcigo/internal/morph"
	"github.com/hupe1980/sulcigo/internal/segment"
	"github.com/hupe1980/sulcigo/mesh"
)

// FoldResult holds the fold partition of a mesh.
type FoldResult struct {
	// FoldIDs maps every vertex to a fold ID, -1 outside any fold.
	// Fold IDs are dense in [0, NumFolds), ordered by first appearance.
	FoldIDs []int

	// NumFolds is the number of folds.
	NumFolds int

	// Threshold is the depth threshold that separated fold vertices from
	// the outer surface.
	Threshold float64

	// Bins and BinEdges are the depth histogram used for threshold
	// selection, for diagnostics.
	Bins     []int
	BinEdges []float64
}

// ExtractFolds partitions the mesh into folds, the connected regions of
// vertices deeper than a threshold derived from the depth histogram.
// Components below MinFoldSize are discarded and enclosed background
// pockets are filled, except for vertices within the near-zero depth
// band.
func ExtractFolds(ctx context.Context, depths []float64, adj *mesh.Adjacency, optFns ...func(o *FoldOptions)) (*FoldResult, error) {
	opts := DefaultFoldOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	n := adj.NumVertices()

	if len(depths) != n {
		err := &ErrLengthMismatch{What: "depths", Want: n, Got: len(depths)}
		opts.Logger.LogExtractFolds(ctx, 0, 0, err)

		return nil, err
	}

	if n < opts.MinHistogramVertices {
		err := &ErrTooFewVertices{Vertices: n, Min: opts.MinHistogramVertices}
		opts.Logger.LogExtractFolds(ctx, 0, 0, err)

		return nil, err
	}

	nbins := int(math.Round(float64(n) / 100.0))
	if nbins < 1 {
		nbins = 1
	}

	hist := histogram.DepthThreshold(depths, nbins)

	opts.Logger.DebugContext(ctx, "depth threshold selected",
		"threshold", hist.Threshold,
		"bins", nbins,
		"from_slope", hist.FromSlope,
	)

	var candidates []int

	for v := 0; v < n; v++ {
		if depths[v] >= hist.Threshold {
			candidates = append(candidates, v)
		}
	}

	foldIDs := segment.Segment(candidates, adj, func(o *segment.Options) {
		o.MinRegionSize = opts.MinFoldSize
	})

	if opts.FillHoles {
		foldIDs = morph.FillHoles(foldIDs, adj, func(o *morph.Options) {
			o.Values = depths
			o.ExcludeLo = 0
			o.ExcludeHi = opts.TinyDepth
		})
	}

	numFolds := segment.Renumber(foldIDs)

	res := &FoldResult{
		FoldIDs:   foldIDs,
		NumFolds:  numFolds,
		Threshold: hist.Threshold,
		Bins:      hist.Bins,
		BinEdges:  hist.Edges,
	}

	opts.Logger.LogExtractFolds(ctx, numFolds, hist.Threshold, nil)

	return res, nil
}

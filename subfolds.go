package sulcigo

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/sulcigo/internal/watershed"
	"github.com/hupe1980/sulcigo/mesh"
)

// SubfoldResult holds the basin partition of the folds.
type SubfoldResult struct {
	// SubfoldIDs maps every vertex to a basin ID, -1 outside any fold.
	// IDs are dense in [0, NumSubfolds).
	SubfoldIDs []int

	// NumSubfolds is the number of basins.
	NumSubfolds int

	// Seeds is the seed vertex of each basin, indexed by basin ID.
	Seeds []int
}

// ExtractSubfolds refines the folds into watershed catchment basins
// grown from local depth maxima. Points may be empty, in which case the
// distance-based basin merge is skipped.
func ExtractSubfolds(ctx context.Context, depths []float64, points []r3.Vec, foldIDs []int, adj *mesh.Adjacency, optFns ...func(o *SubfoldOptions)) (*SubfoldResult, error) {
	opts := DefaultSubfoldOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	n := adj.NumVertices()

	if len(depths) != n {
		err := &ErrLengthMismatch{What: "depths", Want: n, Got: len(depths)}
		opts.Logger.LogExtractSubfolds(ctx, 0, 0, err)

		return nil, err
	}

	if len(foldIDs) != n {
		err := &ErrLengthMismatch{What: "fold IDs", Want: n, Got: len(foldIDs)}
		opts.Logger.LogExtractSubfolds(ctx, 0, 0, err)

		return nil, err
	}

	if len(points) > 0 && len(points) != n {
		err := &ErrLengthMismatch{What: "points", Want: n, Got: len(points)}
		opts.Logger.LogExtractSubfolds(ctx, 0, 0, err)

		return nil, err
	}

	var candidates []int

	for v := 0; v < n; v++ {
		if foldIDs[v] >= 0 {
			candidates = append(candidates, v)
		}
	}

	ws := watershed.Segment(candidates, depths, points, adj, func(o *watershed.Options) {
		o.MinBasinSize = opts.MinBasinSize
		o.DepthFactor = opts.DepthFactor
		o.DepthRatio = opts.DepthRatio
		o.Tolerance = opts.Tolerance
		o.Regrow = opts.Regrow
	})

	res := &SubfoldResult{
		SubfoldIDs:  ws.Basins,
		NumSubfolds: ws.NumBasins,
		Seeds:       ws.Seeds,
	}

	opts.Logger.LogExtractSubfolds(ctx, ws.NumBasins, len(ws.Seeds), nil)

	return res, nil
}

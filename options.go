package sulcigo

import "runtime"

// FoldOptions configures ExtractFolds.
type FoldOptions struct {
	// MinFoldSize is the minimum number of vertices for a fold. Smaller
	// components are discarded.
	MinFoldSize int

	// TinyDepth is the upper bound of the near-zero depth band. Vertices
	// whose depth falls within [0, TinyDepth] are never absorbed by hole
	// filling.
	TinyDepth float64

	// MinHistogramVertices is the minimum mesh resolution for
	// histogram-based threshold selection. Meshes below it are rejected.
	MinHistogramVertices int

	// FillHoles enables filling of enclosed background pockets.
	FillHoles bool

	// Logger for structured logging. Defaults to NoopLogger.
	Logger *Logger
}

// DefaultFoldOptions are the fold extraction defaults.
var DefaultFoldOptions = FoldOptions{
	MinFoldSize:          50,
	TinyDepth:            0.001,
	MinHistogramVertices: 10000,
	FillHoles:            true,
}

// SubfoldOptions configures ExtractSubfolds.
type SubfoldOptions struct {
	// MinBasinSize is the minimum number of vertices per basin.
	MinBasinSize int

	// DepthFactor scales the fold spread to obtain the maximum seed
	// distance for merging two basins.
	DepthFactor float64

	// DepthRatio is the minimum fraction of the deeper seed's depth the
	// shallower seed must reach for two basins to merge.
	DepthRatio float64

	// Tolerance is the depth difference below which two vertices count as
	// equally deep.
	Tolerance float64

	// Regrow re-runs simultaneous seeded growth from the basin seeds
	// after the initial depth-ordered claiming.
	Regrow bool

	// Logger for structured logging. Defaults to NoopLogger.
	Logger *Logger
}

// DefaultSubfoldOptions are the basin segmentation defaults.
var DefaultSubfoldOptions = SubfoldOptions{
	MinBasinSize: 50,
	DepthFactor:  0.25,
	DepthRatio:   0.1,
	Tolerance:    0.01,
	Regrow:       true,
}

// SulcusOptions configures IdentifySulci.
type SulcusOptions struct {
	// MinBoundary is the minimum length of a boundary segment used to
	// seed ambiguous-fold resolution. Shorter segments are discarded.
	MinBoundary int

	// Parallelism bounds the number of folds processed concurrently.
	// Defaults to GOMAXPROCS.
	Parallelism int

	// Logger for structured logging. Defaults to NoopLogger.
	Logger *Logger
}

// DefaultSulcusOptions are the sulcus identification defaults.
var DefaultSulcusOptions = SulcusOptions{
	MinBoundary: 1,
	Parallelism: runtime.GOMAXPROCS(0),
}

// BoundaryOptions configures DetectLabelBoundaries.
type BoundaryOptions struct {
	// IgnoreLabels lists label values excluded from boundary detection.
	IgnoreLabels []int
}

// DefaultBoundaryOptions are the boundary detection defaults.
var DefaultBoundaryOptions = BoundaryOptions{}

package sulcigo

import (
	"github.com/hupe1980/sulcigo/internal/boundary"
	"github.com/hupe1980/sulcigo/mesh"
)

// BoundaryResult holds the label boundaries of a vertex subset.
type BoundaryResult struct {
	// Vertices are the boundary vertex indices, in input order.
	Vertices []int

	// Pairs holds the raw (own label, neighbor label) pair of each
	// emission, parallel to Vertices.
	Pairs [][2]int

	// UniquePairs are the distinct sorted label pairs observed, in
	// ascending order.
	UniquePairs [][2]int
}

// DetectLabelBoundaries reports the vertices of the subset that border
// a neighbor carrying a different label, together with the label pairs
// involved.
func DetectLabelBoundaries(vertices []int, labels []int, adj *mesh.Adjacency, optFns ...func(o *BoundaryOptions)) (*BoundaryResult, error) {
	opts := DefaultBoundaryOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	n := adj.NumVertices()

	if len(labels) != n {
		return nil, &ErrLengthMismatch{What: "labels", Want: n, Got: len(labels)}
	}

	b := boundary.Detect(vertices, labels, adj, opts.IgnoreLabels)

	return &BoundaryResult{
		Vertices:    b.Vertices,
		Pairs:       b.Pairs,
		UniquePairs: b.UniquePairs,
	}, nil
}

package sulcigo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/sulcigo"
	"github.com/hupe1980/sulcigo/mesh"
	"github.com/hupe1980/sulcigo/protocol"
	"github.com/hupe1980/sulcigo/testutil"
)

// Example demonstrates the full pipeline: fold extraction from travel
// depth, then sulcus identification against a labeling protocol.
func Example() {
	ctx := context.Background()

	// A 20x20 grid surface with a deep band covering rows 5 to 19.
	m := testutil.GridMesh(20, 20)

	adj, err := mesh.NewAdjacencyFromMesh(m)
	if err != nil {
		log.Fatal(err)
	}

	depths := make([]float64, 400)
	shallow, deep := 0, 100

	for v := range depths {
		if v < 100 {
			depths[v] = float64(shallow)
			shallow++
		} else {
			depths[v] = float64(deep)
			deep++
		}
	}

	folds, err := sulcigo.ExtractFolds(ctx, depths, adj, func(o *sulcigo.FoldOptions) {
		o.MinHistogramVertices = 100
	})
	if err != nil {
		log.Fatal(err)
	}

	// Anatomical labels: label 1 on the left half, label 2 on the right.
	labels := make([]int, 400)
	for v := range labels {
		labels[v] = 1
		if v%20 >= 10 {
			labels[v] = 2
		}
	}

	proto := protocol.New([]protocol.Definition{
		{Name: "example sulcus", Pairs: []protocol.Pair{protocol.NewPair(1, 2)}},
	})

	sulci, err := sulcigo.IdentifySulci(ctx, labels, folds.FoldIDs, adj, proto)
	if err != nil {
		log.Fatal(err)
	}

	assigned := 0

	for _, id := range sulci.SulcusIDs {
		if id >= 0 {
			assigned++
		}
	}

	fmt.Printf("folds: %d\n", folds.NumFolds)
	fmt.Printf("sulci: %d (%s)\n", sulci.NumSulci, proto.Name(0))
	fmt.Printf("assigned vertices: %d\n", assigned)
	fmt.Printf("unaccounted: %d\n", len(sulci.Unaccounted))
	// Output:
	// folds: 1
	// sulci: 1 (example sulcus)
	// assigned vertices: 300
	// unaccounted: 0
}

// Package boundary detects label boundaries: mesh edges whose two
// endpoints carry different anatomical labels, reported at vertex
// granularity.
package boundary

import (
	"sort"

	"github.com/hupe1980/sulcigo/mesh"
)

// Result holds three parallel views of the boundaries found in a vertex
// subset: one emission per (vertex, differing neighbor) edge, attributed
// to the subset vertex.
type Result struct {
	// Vertices are the boundary vertex indices, one per emission; a
	// vertex bordering several labels appears once per differing edge.
	Vertices []int

	// Pairs are the raw (label(v), label(w)) pairs per emission.
	Pairs [][2]int

	// UniquePairs are the distinct sorted label pairs observed, in
	// ascending order.
	UniquePairs [][2]int
}

// Detect scans every vertex of the subset and reports edges to neighbors
// carrying a different label. Edges touching a label in ignore are
// skipped. Runs in O(sum of neighbor-list sizes) over the subset and is
// deterministic.
func Detect(vertices []int, labels []int, adj *mesh.Adjacency, ignore []int) Result {
	skip := make(map[int]bool, len(ignore))
	for _, l := range ignore {
		skip[l] = true
	}

	var res Result
	seen := make(map[[2]int]bool)

	for _, v := range vertices {
		lv := labels[v]
		if skip[lv] {
			continue
		}
		for _, w := range adj.Neighbors(v) {
			lw := labels[w]
			if lw == lv || skip[lw] {
				continue
			}
			res.Vertices = append(res.Vertices, v)
			res.Pairs = append(res.Pairs, [2]int{lv, lw})

			sorted := [2]int{lv, lw}
			if sorted[0] > sorted[1] {
				sorted[0], sorted[1] = sorted[1], sorted[0]
			}
			if !seen[sorted] {
				seen[sorted] = true
				res.UniquePairs = append(res.UniquePairs, sorted)
			}
		}
	}

	sort.Slice(res.UniquePairs, func(i, j int) bool {
		if res.UniquePairs[i][0] != res.UniquePairs[j][0] {
			return res.UniquePairs[i][0] < res.UniquePairs[j][0]
		}
		return res.UniquePairs[i][1] < res.UniquePairs[j][1]
	})
	return res
}

// SortPair returns the sorted form of a raw pair.
func SortPair(p [2]int) [2]int {
	if p[0] > p[1] {
		return [2]int{p[1], p[0]}
	}
	return p
}

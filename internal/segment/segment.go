// Package segment implements connected-component labeling and seeded
// multi-source flood fill over a vertex subset of a mesh adjacency graph.
// It is the shared growth engine behind fold extraction, hole filling,
// watershed basins and sulcus boundary propagation.
package segment

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/sulcigo/mesh"
)

// Unassigned marks a vertex not claimed by any region.
const Unassigned = -1

// Options configures a segmentation pass.
type Options struct {
	// Seeds holds one seed-vertex list per desired output region. When
	// empty, every maximal connected component of the candidate set
	// becomes its own region, discovered in candidate order.
	Seeds [][]int

	// MinRegionSize discards completed regions with fewer vertices,
	// resetting them to Unassigned.
	MinRegionSize int

	// MaxSteps bounds the number of BFS frontier expansions during seeded
	// growth; 0 means unbounded. Candidates beyond the bound stay
	// Unassigned.
	MaxSteps int

	// SpreadWithinLabels restricts seeded growth to vertices whose label
	// occurs among the seed list's own labels. Requires Labels.
	SpreadWithinLabels bool

	// Labels is the per-vertex label array consulted when
	// SpreadWithinLabels is set.
	Labels []int
}

// DefaultOptions contains the default segmentation options.
var DefaultOptions = Options{
	MinRegionSize: 1,
}

// Segment labels the candidate vertices with region IDs and returns an
// array covering every vertex of the graph; non-candidates and discarded
// or unreached candidates hold Unassigned.
//
// Seeded growth expands all seed lists simultaneously, one BFS frontier
// per round, seed lists in index order within a round: a vertex reachable
// from two seed sets at the same depth goes to the lower seed-list index.
// Unseeded growth assigns component IDs in order of first appearance in
// candidates. Deterministic given identical inputs and seed ordering.
func Segment(candidates []int, adj *mesh.Adjacency, optFns ...func(o *Options)) []int {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	n := adj.NumVertices()
	regions := make([]int, n)
	for i := range regions {
		regions[i] = Unassigned
	}
	if len(candidates) == 0 {
		return regions
	}

	eligible := roaring.New()
	for _, v := range candidates {
		eligible.Add(uint32(v))
	}

	if len(opts.Seeds) == 0 {
		segmentComponents(candidates, eligible, adj, regions)
	} else {
		segmentSeeded(eligible, adj, &opts, regions)
	}

	if opts.MinRegionSize > 1 {
		pruneSmallRegions(candidates, regions, opts.MinRegionSize)
	}
	return regions
}

// segmentComponents discovers maximal connected components of the
// candidate set by scanning candidates in the given order.
func segmentComponents(candidates []int, eligible *roaring.Bitmap, adj *mesh.Adjacency, regions []int) {
	visited := newVisitedSet(adj.NumVertices())
	var queue []int

	next := 0
	for _, start := range candidates {
		if !visited.visit(start) {
			continue
		}
		id := next
		next++

		regions[start] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj.Neighbors(v) {
				if !eligible.Contains(uint32(w)) || !visited.visit(w) {
					continue
				}
				regions[w] = id
				queue = append(queue, w)
			}
		}
	}
}

// segmentSeeded grows every seed list simultaneously, frontier by
// frontier. Seed vertices outside the candidate set are ignored.
func segmentSeeded(eligible *roaring.Bitmap, adj *mesh.Adjacency, opts *Options, regions []int) {
	visited := newVisitedSet(adj.NumVertices())
	frontiers := make([][]int, len(opts.Seeds))

	var allowed []map[int]bool
	if opts.SpreadWithinLabels {
		allowed = make([]map[int]bool, len(opts.Seeds))
	}

	// Claim seed vertices first, in seed-list index order; a vertex named
	// by two lists goes to the lower index.
	for i, seeds := range opts.Seeds {
		if opts.SpreadWithinLabels {
			allowed[i] = make(map[int]bool)
		}
		for _, v := range seeds {
			if !eligible.Contains(uint32(v)) || !visited.visit(v) {
				continue
			}
			regions[v] = i
			frontiers[i] = append(frontiers[i], v)
			if opts.SpreadWithinLabels {
				allowed[i][opts.Labels[v]] = true
			}
		}
	}

	for step := 0; opts.MaxSteps == 0 || step < opts.MaxSteps; step++ {
		grew := false
		for i, frontier := range frontiers {
			if len(frontier) == 0 {
				continue
			}
			var next []int
			for _, v := range frontier {
				for _, w := range adj.Neighbors(v) {
					if !eligible.Contains(uint32(w)) || visited.visited(w) {
						continue
					}
					if opts.SpreadWithinLabels && !allowed[i][opts.Labels[w]] {
						continue
					}
					visited.visit(w)
					regions[w] = i
					next = append(next, w)
				}
			}
			frontiers[i] = next
			if len(next) > 0 {
				grew = true
			}
		}
		if !grew {
			break
		}
	}
}

// pruneSmallRegions resets regions smaller than min to Unassigned.
// Surviving region IDs are not renumbered; callers that need dense IDs
// renumber themselves.
func pruneSmallRegions(candidates []int, regions []int, min int) {
	sizes := make(map[int]int)
	for _, v := range candidates {
		if regions[v] != Unassigned {
			sizes[regions[v]]++
		}
	}
	for _, v := range candidates {
		if id := regions[v]; id != Unassigned && sizes[id] < min {
			regions[v] = Unassigned
		}
	}
}

// Renumber remaps the non-negative IDs in regions to be dense and
// sequential starting at 0, in order of first appearance by vertex
// index, and returns the number of distinct regions. regions is modified
// in place.
func Renumber(regions []int) int {
	remap := make(map[int]int)
	for i, id := range regions {
		if id == Unassigned {
			continue
		}
		newID, ok := remap[id]
		if !ok {
			newID = len(remap)
			remap[id] = newID
		}
		regions[i] = newID
	}
	return len(remap)
}

// Members collects the vertex indices of every region, keyed by region
// ID, each list in ascending vertex order.
func Members(regions []int) map[int][]int {
	members := make(map[int][]int)
	for v, id := range regions {
		if id != Unassigned {
			members[id] = append(members[id], v)
		}
	}
	return members
}

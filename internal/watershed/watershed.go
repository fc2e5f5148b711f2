// Package watershed refines a fold into catchment basins. Seeds are the
// local depth maxima of the fold; vertices are claimed in descending
// depth order so that shallower vertices join a basin only after all
// deeper frontiers had a chance to reach them. Adjacent basins whose
// seeds are close and of comparable depth are merged afterwards.
//
// When two frontiers reach a vertex on the same depth band the lower
// basin ID wins. The exact border between adjoining basins therefore
// depends on seed ordering; this is accepted and documented rather than
// canonicalized.
package watershed

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/sulcigo/internal/segment"
	"github.com/hupe1980/sulcigo/mesh"
)

// Options configures basin segmentation.
type Options struct {
	// MinBasinSize is the minimum number of vertices per basin. Smaller
	// basins are merged into their most-adjacent neighbor, or discarded
	// when no neighbor exists.
	MinBasinSize int

	// DepthFactor scales the fold spread (the largest distance between a
	// shallowest and a deepest point of the fold) to obtain the maximum
	// seed distance for merging two basins.
	DepthFactor float64

	// DepthRatio is the minimum fraction of the deeper seed's depth the
	// shallower seed must reach for the two basins to merge.
	DepthRatio float64

	// Tolerance is the depth difference below which two vertices count
	// as equally deep when detecting local maxima.
	Tolerance float64

	// Regrow re-runs simultaneous seeded growth from the basin seeds
	// after the initial depth-ordered claiming, smoothing basin borders.
	Regrow bool
}

// DefaultOptions are the basin segmentation defaults.
var DefaultOptions = Options{
	MinBasinSize: 50,
	DepthFactor:  0.25,
	DepthRatio:   0.1,
	Tolerance:    0.01,
	Regrow:       true,
}

// Result holds the basin partition of one fold.
type Result struct {
	// Basins maps every vertex to a basin ID, -1 outside the fold.
	// Basin IDs are dense in [0, NumBasins).
	Basins []int

	// Seeds is the seed vertex of each basin, indexed by basin ID.
	Seeds []int

	// NumBasins is the number of basins.
	NumBasins int
}

// Segment partitions the candidate vertex set into catchment basins.
// Points may be empty, in which case the distance-based merge step is
// skipped.
func Segment(candidates []int, depths []float64, points []r3.Vec, adj *mesh.Adjacency, optFns ...func(o *Options)) Result {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	n := adj.NumVertices()

	basins := make([]int, n)
	for i := range basins {
		basins[i] = segment.Unassigned
	}

	if len(candidates) == 0 {
		return Result{Basins: basins}
	}

	member := roaring.New()
	for _, v := range candidates {
		member.Add(uint32(v))
	}

	seeds := localMaxima(candidates, depths, member, adj, opts.Tolerance)

	claimDescending(basins, candidates, depths, seeds, member, adj)
	seeds = claimLeftovers(basins, candidates, depths, seeds, adj)

	if opts.Regrow && len(seeds) > 1 {
		basins = regrow(candidates, seeds, adj)
	}

	if len(points) > 0 && len(seeds) > 1 {
		basins, seeds = mergeClose(basins, seeds, candidates, depths, points, member, adj, opts)
	}

	basins, seeds = mergeSmall(basins, seeds, candidates, member, adj, opts.MinBasinSize)

	return Result{Basins: basins, Seeds: seeds, NumBasins: len(seeds)}
}

// localMaxima returns the candidate vertices at least as deep as every
// candidate neighbor, within tolerance, ordered by descending depth so
// that deeper maxima get lower basin IDs. Depth ties go to the lower
// vertex index.
func localMaxima(candidates []int, depths []float64, member *roaring.Bitmap, adj *mesh.Adjacency, tolerance float64) []int {
	var maxima []int

	for _, v := range candidates {
		isMax := true

		for _, nb := range adj.Neighbors(v) {
			if !member.Contains(uint32(nb)) {
				continue
			}

			if depths[nb] > depths[v]+tolerance {
				isMax = false
				break
			}
		}

		if isMax {
			maxima = append(maxima, v)
		}
	}

	sort.SliceStable(maxima, func(i, j int) bool {
		if depths[maxima[i]] != depths[maxima[j]] {
			return depths[maxima[i]] > depths[maxima[j]]
		}

		return maxima[i] < maxima[j]
	})

	return maxima
}

// claimDescending assigns each candidate, in order of decreasing depth,
// to the basin of its deepest already assigned neighbor. Ties go to the
// lower basin ID. Vertices with no assigned neighbor stay unassigned.
func claimDescending(basins []int, candidates []int, depths []float64, seeds []int, member *roaring.Bitmap, adj *mesh.Adjacency) {
	for i, s := range seeds {
		basins[s] = i
	}

	ordered := make([]int, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if depths[ordered[i]] != depths[ordered[j]] {
			return depths[ordered[i]] > depths[ordered[j]]
		}

		return ordered[i] < ordered[j]
	})

	for _, v := range ordered {
		if basins[v] != segment.Unassigned {
			continue
		}

		best := segment.Unassigned
		bestDepth := 0.0

		for _, nb := range adj.Neighbors(v) {
			if !member.Contains(uint32(nb)) || basins[nb] == segment.Unassigned {
				continue
			}

			if best == segment.Unassigned || depths[nb] > bestDepth ||
				(depths[nb] == bestDepth && basins[nb] < best) {
				best = basins[nb]
				bestDepth = depths[nb]
			}
		}

		if best != segment.Unassigned {
			basins[v] = best
		}
	}
}

// claimLeftovers segments the candidates no frontier could reach into
// additional basins, one per connected component, seeded by the deepest
// vertex of each component. Returns the extended seed list.
func claimLeftovers(basins []int, candidates []int, depths []float64, seeds []int, adj *mesh.Adjacency) []int {
	var leftover []int

	for _, v := range candidates {
		if basins[v] == segment.Unassigned {
			leftover = append(leftover, v)
		}
	}

	if len(leftover) == 0 {
		return seeds
	}

	regions := segment.Segment(leftover, adj)

	deepest := make(map[int]int)

	for _, v := range leftover {
		r := regions[v]
		basins[v] = len(seeds) + r

		if d, ok := deepest[r]; !ok || depths[v] > depths[d] {
			deepest[r] = v
		}
	}

	for r := 0; r < len(deepest); r++ {
		seeds = append(seeds, deepest[r])
	}

	return seeds
}

// regrow re-runs simultaneous frontier growth from the basin seeds over
// the whole candidate set.
func regrow(candidates []int, seeds []int, adj *mesh.Adjacency) []int {
	seedLists := make([][]int, len(seeds))
	for i, s := range seeds {
		seedLists[i] = []int{s}
	}

	return segment.Segment(candidates, adj, func(o *segment.Options) {
		o.Seeds = seedLists
	})
}

// mergeClose merges adjacent basins whose seeds lie within
// DepthFactor times the fold spread of each other, provided the
// shallower seed reaches at least DepthRatio of the deeper seed's
// depth. The merged basin keeps the deeper seed.
func mergeClose(basins []int, seeds []int, candidates []int, depths []float64, points []r3.Vec, member *roaring.Bitmap, adj *mesh.Adjacency, opts Options) ([]int, []int) {
	spread := foldSpread(candidates, depths, points)
	maxDist := opts.DepthFactor * spread

	uf := newUnionFind(len(seeds))

	for _, pair := range adjacentBasins(basins, candidates, member, adj) {
		a, b := uf.find(pair[0]), uf.find(pair[1])
		if a == b {
			continue
		}

		// Orient so that a carries the deeper seed.
		if depths[seeds[b]] > depths[seeds[a]] {
			a, b = b, a
		}

		if r3.Norm(r3.Sub(points[seeds[a]], points[seeds[b]])) < maxDist &&
			depths[seeds[b]] >= opts.DepthRatio*depths[seeds[a]] {
			uf.unionInto(a, b)
		}
	}

	return relabel(basins, seeds, candidates, uf)
}

// foldSpread is the largest distance between a point of minimum depth
// and a point of maximum depth within the candidate set.
func foldSpread(candidates []int, depths []float64, points []r3.Vec) float64 {
	minD, maxD := depths[candidates[0]], depths[candidates[0]]

	for _, v := range candidates[1:] {
		if depths[v] < minD {
			minD = depths[v]
		}
		if depths[v] > maxD {
			maxD = depths[v]
		}
	}

	var shallow, deep []int

	for _, v := range candidates {
		if depths[v] == minD {
			shallow = append(shallow, v)
		}
		if depths[v] == maxD {
			deep = append(deep, v)
		}
	}

	spread := 0.0

	for _, s := range shallow {
		for _, d := range deep {
			if dist := r3.Norm(r3.Sub(points[s], points[d])); dist > spread {
				spread = dist
			}
		}
	}

	return spread
}

// adjacentBasins lists the distinct pairs of basin IDs that share at
// least one mesh edge, in ascending order.
func adjacentBasins(basins []int, candidates []int, member *roaring.Bitmap, adj *mesh.Adjacency) [][2]int {
	seen := make(map[[2]int]struct{})

	for _, v := range candidates {
		for _, nb := range adj.Neighbors(v) {
			if !member.Contains(uint32(nb)) {
				continue
			}

			a, b := basins[v], basins[nb]
			if a == segment.Unassigned || b == segment.Unassigned || a == b {
				continue
			}

			if a > b {
				a, b = b, a
			}

			seen[[2]int{a, b}] = struct{}{}
		}
	}

	pairs := make([][2]int, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}

		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}

// mergeSmall folds basins below minSize into the neighboring basin they
// share the most edges with. Basins with no neighbor are discarded.
func mergeSmall(basins []int, seeds []int, candidates []int, member *roaring.Bitmap, adj *mesh.Adjacency, minSize int) ([]int, []int) {
	if minSize <= 1 || len(seeds) == 0 {
		return basins, seeds
	}

	uf := newUnionFind(len(seeds))

	for {
		sizes := make([]int, len(seeds))

		for _, v := range candidates {
			if basins[v] != segment.Unassigned {
				sizes[uf.find(basins[v])]++
			}
		}

		small := segment.Unassigned

		for id := 0; id < len(seeds); id++ {
			if uf.find(id) == id && sizes[id] > 0 && sizes[id] < minSize {
				small = id
				break
			}
		}

		if small == segment.Unassigned {
			break
		}

		// Count shared edges with each neighboring basin.
		contact := make(map[int]int)

		for _, v := range candidates {
			if basins[v] == segment.Unassigned || uf.find(basins[v]) != small {
				continue
			}

			for _, nb := range adj.Neighbors(v) {
				if !member.Contains(uint32(nb)) || basins[nb] == segment.Unassigned {
					continue
				}

				if other := uf.find(basins[nb]); other != small {
					contact[other]++
				}
			}
		}

		target := segment.Unassigned

		for id, c := range contact {
			if target == segment.Unassigned || c > contact[target] ||
				(c == contact[target] && id < target) {
				target = id
			}
		}

		if target == segment.Unassigned {
			for _, v := range candidates {
				if basins[v] != segment.Unassigned && uf.find(basins[v]) == small {
					basins[v] = segment.Unassigned
				}
			}

			uf.discard(small)

			continue
		}

		uf.unionInto(target, small)
	}

	return relabel(basins, seeds, candidates, uf)
}

// relabel compresses the union-find roots into dense basin IDs ordered
// by original ID and rewrites the basin array and seed list.
func relabel(basins []int, seeds []int, candidates []int, uf *unionFind) ([]int, []int) {
	remap := make(map[int]int)
	var newSeeds []int

	for id := 0; id < len(seeds); id++ {
		root := uf.find(id)
		if uf.discarded[root] {
			continue
		}

		if _, ok := remap[root]; !ok {
			remap[root] = len(newSeeds)
			newSeeds = append(newSeeds, seeds[root])
		}
	}

	for _, v := range candidates {
		if basins[v] == segment.Unassigned {
			continue
		}

		if id, ok := remap[uf.find(basins[v])]; ok {
			basins[v] = id
		} else {
			basins[v] = segment.Unassigned
		}
	}

	return basins, newSeeds
}

type unionFind struct {
	parent    []int
	discarded []bool
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), discarded: make([]bool, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

// unionInto joins b into a, keeping a as representative.
func (uf *unionFind) unionInto(a, b int) {
	a, b = uf.find(a), uf.find(b)
	if a != b {
		uf.parent[b] = a
	}
}

func (uf *unionFind) discard(x int) {
	uf.discarded[uf.find(x)] = true
}

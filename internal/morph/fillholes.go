// Package morph provides morphological cleanup of region ID arrays; its
// one operation fills holes, background components fully enclosed by a
// segmented region.
package morph

import (
	"github.com/hupe1980/sulcigo/internal/segment"
	"github.com/hupe1980/sulcigo/mesh"
)

// Options configures hole filling.
type Options struct {
	// Values is an optional auxiliary per-vertex scalar (typically depth)
	// consulted with ExcludeLo/ExcludeHi.
	Values []float64

	// ExcludeLo and ExcludeHi define a closed value range whose vertices
	// are never absorbed into a fill. Used with a near-zero depth band to
	// keep true background out of annulus-shaped regions. Active only
	// when Values is set.
	ExcludeLo, ExcludeHi float64
}

// FillHoles returns a copy of regions in which every enclosed background
// component has been reassigned to its surrounding region.
//
// The unassigned vertices are segmented into connected components; the
// largest (ties: lowest component index) is presumed the true background
// and kept. Every other component is filled with the region ID most
// represented among its immediate outside neighbors (ties: smallest
// region ID). A hole with no region-carrying neighbor stays unfilled.
func FillHoles(regions []int, adj *mesh.Adjacency, optFns ...func(o *Options)) []int {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	out := make([]int, len(regions))
	copy(out, regions)

	var background []int
	for v, id := range regions {
		if id == segment.Unassigned {
			background = append(background, v)
		}
	}
	if len(background) == 0 {
		return out
	}

	holes := segment.Segment(background, adj)
	members := segment.Members(holes)
	if len(members) < 2 {
		return out
	}

	// The largest unassigned component is the outside area.
	largest, largestSize := -1, -1
	for id := 0; id < len(members); id++ {
		if size := len(members[id]); size > largestSize {
			largest, largestSize = id, size
		}
	}

	for id := 0; id < len(members); id++ {
		if id == largest {
			continue
		}
		fillHole(members[id], regions, adj, &opts, out)
	}
	return out
}

// fillHole assigns the majority neighboring region ID to the hole's
// vertices, skipping vertices inside the exclusion range.
func fillHole(hole []int, regions []int, adj *mesh.Adjacency, opts *Options, out []int) {
	votes := make(map[int]int)
	for _, v := range hole {
		for _, w := range adj.Neighbors(v) {
			if regions[w] != segment.Unassigned {
				votes[regions[w]]++
			}
		}
	}
	if len(votes) == 0 {
		return
	}

	fill, best := -1, 0
	for id, count := range votes {
		if count > best || (count == best && id < fill) {
			fill, best = id, count
		}
	}

	for _, v := range hole {
		if opts.Values != nil {
			if d := opts.Values[v]; d >= opts.ExcludeLo && d <= opts.ExcludeHi {
				continue
			}
		}
		out[v] = fill
	}
}

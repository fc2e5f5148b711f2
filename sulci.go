package sulcigo

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sulcigo/internal/boundary"
	"github.com/hupe1980/sulcigo/internal/segment"
	"github.com/hupe1980/sulcigo/mesh"
	"github.com/hupe1980/sulcigo/protocol"
)

// SulcusResult holds the sulcus assignment of the fold vertices.
type SulcusResult struct {
	// SulcusIDs maps every vertex to a protocol sulcus index, -1 when
	// unassigned.
	SulcusIDs []int

	// NumSulci is the number of distinct sulci that received vertices.
	NumSulci int

	// Unaccounted lists the protocol sulcus indices that received no
	// vertices.
	Unaccounted []int
}

// IdentifySulci assigns a protocol sulcus index to each fold's vertices
// by matching the fold's labels and label-boundary pairs against the
// protocol. Folds are independent and processed concurrently; each fold
// writes only its own vertices of the shared output array.
func IdentifySulci(ctx context.Context, labels []int, foldIDs []int, adj *mesh.Adjacency, proto *protocol.Protocol, optFns ...func(o *SulcusOptions)) (*SulcusResult, error) {
	opts := DefaultSulcusOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	n := adj.NumVertices()

	if proto == nil {
		opts.Logger.LogIdentifySulci(ctx, 0, 0, nil, ErrNilProtocol)
		return nil, ErrNilProtocol
	}

	if len(labels) != n {
		err := &ErrLengthMismatch{What: "labels", Want: n, Got: len(labels)}
		opts.Logger.LogIdentifySulci(ctx, 0, 0, nil, err)

		return nil, err
	}

	if len(foldIDs) != n {
		err := &ErrLengthMismatch{What: "fold IDs", Want: n, Got: len(foldIDs)}
		opts.Logger.LogIdentifySulci(ctx, 0, 0, nil, err)

		return nil, err
	}

	if shared := proto.SharedPairs(); len(shared) > 0 {
		opts.Logger.WarnContext(ctx, "protocol label pairs shared across sulcus definitions",
			"pairs", shared,
		)
	}

	sulcusIDs := make([]int, n)
	for i := range sulcusIDs {
		sulcusIDs[i] = segment.Unassigned
	}

	folds := segment.Members(foldIDs)

	foldNumbers := make([]int, 0, len(folds))
	for id := range folds {
		foldNumbers = append(foldNumbers, id)
	}
	sort.Ints(foldNumbers)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}

	for _, foldID := range foldNumbers {
		foldID := foldID
		fold := folds[foldID]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			identifyFold(gctx, sulcusIDs, foldID, fold, labels, adj, proto, &opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		opts.Logger.LogIdentifySulci(ctx, 0, len(foldNumbers), nil, err)
		return nil, err
	}

	assigned := make(map[int]bool)
	for _, id := range sulcusIDs {
		if id != segment.Unassigned {
			assigned[id] = true
		}
	}

	var unaccounted []int

	for id := 0; id < proto.NumSulci(); id++ {
		if !assigned[id] {
			unaccounted = append(unaccounted, id)
		}
	}

	res := &SulcusResult{
		SulcusIDs:   sulcusIDs,
		NumSulci:    len(assigned),
		Unaccounted: unaccounted,
	}

	opts.Logger.LogIdentifySulci(ctx, res.NumSulci, len(foldNumbers), unaccounted, nil)

	return res, nil
}

// identifyFold resolves one fold. It writes only the fold's own indices
// of out.
func identifyFold(ctx context.Context, out []int, foldID int, fold []int, labels []int, adj *mesh.Adjacency, proto *protocol.Protocol, opts *SulcusOptions) {
	foldLabels := distinctLabels(fold, labels)

	if len(foldLabels) == 0 {
		opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "no labels", nil)
		return
	}

	if len(foldLabels) == 1 {
		opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "single label", foldLabels)
		return
	}

	// Exact match against a single definition's label set.
	if exact := proto.MatchLabelSet(foldLabels); len(exact) == 1 {
		assignLabeled(out, fold, labels, exact[0])
		opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "exact label set match: "+proto.Name(exact[0]), foldLabels)

		return
	}

	b := boundary.Detect(fold, labels, adj, nil)

	var matching []protocol.Pair

	for _, p := range b.UniquePairs {
		if pr := protocol.NewPair(p[0], p[1]); proto.ContainsPair(pr) {
			matching = append(matching, pr)
		}
	}

	if len(matching) == 0 {
		opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "no sulcus label pair", foldLabels)
		return
	}

	// All fold labels fit within a single definition's label set.
	if sup := proto.Supersets(foldLabels); len(sup) == 1 {
		assignLabeled(out, fold, labels, sup[0])
		opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "unique containment: "+proto.Name(sup[0]), foldLabels)

		return
	}

	resolveAmbiguous(out, fold, labels, adj, proto, b, matching, opts)
	opts.Logger.LogFoldDecision(ctx, foldID, len(fold), "ambiguous, resolved per vertex", foldLabels)
}

// resolveAmbiguous settles a fold whose boundary pairs belong to several
// sulcus definitions. Pairs whose labels occur in no other matching pair
// are grown first from their own boundary vertices; the remaining pairs
// then compete in a single simultaneous seeded segmentation, lower pair
// index winning ties.
func resolveAmbiguous(out []int, fold []int, labels []int, adj *mesh.Adjacency, proto *protocol.Protocol, b boundary.Result, matching []protocol.Pair, opts *SulcusOptions) {
	count := make(map[int]int)

	for _, p := range matching {
		count[p.Lo]++
		count[p.Hi]++
	}

	var unique, remainder []protocol.Pair

	for _, p := range matching {
		if count[p.Lo] == 1 && count[p.Hi] == 1 {
			unique = append(unique, p)
		} else {
			remainder = append(remainder, p)
		}
	}

	// Labels confined to one pair: grow the owning sulcus from that
	// pair's boundary, staying within the pair's labels.
	for _, p := range unique {
		owners := proto.Owners(p)
		if len(owners) == 0 {
			continue
		}

		seeds := pairBoundaryVertices(b, p)
		if len(seeds) == 0 {
			continue
		}

		var candidates []int

		for _, v := range fold {
			if labels[v] == p.Lo || labels[v] == p.Hi {
				candidates = append(candidates, v)
			}
		}

		regions := segment.Segment(candidates, adj, func(o *segment.Options) {
			o.Seeds = [][]int{seeds}
			o.SpreadWithinLabels = true
			o.Labels = labels
		})

		for _, v := range candidates {
			if regions[v] != segment.Unassigned {
				out[v] = owners[0]
			}
		}
	}

	if len(remainder) == 0 {
		return
	}

	// Shared labels: all remainder pairs compete simultaneously.
	seedLists := make([][]int, 0, len(remainder))
	owners := make([]int, 0, len(remainder))

	for _, p := range remainder {
		own := proto.Owners(p)
		if len(own) == 0 {
			continue
		}

		seeds := pairBoundaryVertices(b, p)
		if opts.MinBoundary > 1 {
			seeds = filterShortSegments(seeds, adj, opts.MinBoundary)
		}

		if len(seeds) == 0 {
			continue
		}

		seedLists = append(seedLists, seeds)
		owners = append(owners, own[0])
	}

	if len(seedLists) == 0 {
		return
	}

	remainderLabels := make(map[int]bool)
	for _, p := range remainder {
		remainderLabels[p.Lo] = true
		remainderLabels[p.Hi] = true
	}

	var candidates []int

	for _, v := range fold {
		if out[v] == segment.Unassigned && remainderLabels[labels[v]] {
			candidates = append(candidates, v)
		}
	}

	regions := segment.Segment(candidates, adj, func(o *segment.Options) {
		o.Seeds = seedLists
	})

	for _, v := range candidates {
		if r := regions[v]; r != segment.Unassigned {
			out[v] = owners[r]
		}
	}
}

// pairBoundaryVertices returns the boundary vertices whose label pair
// equals p.
func pairBoundaryVertices(b boundary.Result, p protocol.Pair) []int {
	var vertices []int

	for i, bp := range b.Pairs {
		if sp := boundary.SortPair(bp); sp[0] == p.Lo && sp[1] == p.Hi {
			vertices = append(vertices, b.Vertices[i])
		}
	}

	return vertices
}

// filterShortSegments segments the boundary vertices into connected
// pieces and drops pieces shorter than min.
func filterShortSegments(vertices []int, adj *mesh.Adjacency, min int) []int {
	regions := segment.Segment(vertices, adj, func(o *segment.Options) {
		o.MinRegionSize = min
	})

	var kept []int

	for _, v := range vertices {
		if regions[v] != segment.Unassigned {
			kept = append(kept, v)
		}
	}

	return kept
}

// assignLabeled assigns id to every fold vertex carrying a non-negative
// label.
func assignLabeled(out []int, fold []int, labels []int, id int) {
	for _, v := range fold {
		if labels[v] >= 0 {
			out[v] = id
		}
	}
}

// distinctLabels returns the sorted distinct non-negative labels on the
// fold.
func distinctLabels(fold []int, labels []int) []int {
	seen := make(map[int]bool)

	var distinct []int

	for _, v := range fold {
		if l := labels[v]; l >= 0 && !seen[l] {
			seen[l] = true
			distinct = append(distinct, l)
		}
	}

	sort.Ints(distinct)

	return distinct
}

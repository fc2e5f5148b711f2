// Package protocol models an anatomical sulcus labeling protocol: an
// ordered list of sulcus definitions, each given by the set of label pairs
// forming that sulcus's boundaries. A Protocol is constructed once at
// startup and immutable afterwards; sulcus IDs are indices into it.
package protocol

import "sort"

// Pair is an unordered pair of anatomical labels, stored sorted.
type Pair struct {
	Lo, Hi int
}

// NewPair returns the sorted form of the pair (a, b).
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Lo: a, Hi: b}
}

// Definition describes one sulcus: its name and the label pairs that form
// its boundaries.
type Definition struct {
	Name  string
	Pairs []Pair
}

// Protocol is an immutable, normalized sulcus labeling protocol.
type Protocol struct {
	defs   []Definition
	labels [][]int      // unique sorted labels per definition
	owners map[Pair][]int // definition indices per pair
}

// New builds a Protocol from sulcus definitions. Pairs are normalized to
// sorted form and deduplicated within each definition; definition order is
// preserved and defines the sulcus IDs.
func New(defs []Definition) *Protocol {
	p := &Protocol{
		defs:   make([]Definition, len(defs)),
		labels: make([][]int, len(defs)),
		owners: make(map[Pair][]int),
	}

	for i, d := range defs {
		seen := make(map[Pair]bool, len(d.Pairs))
		pairs := make([]Pair, 0, len(d.Pairs))
		labelSet := make(map[int]bool)
		for _, pr := range d.Pairs {
			pr = NewPair(pr.Lo, pr.Hi)
			if seen[pr] {
				continue
			}
			seen[pr] = true
			pairs = append(pairs, pr)
			labelSet[pr.Lo] = true
			labelSet[pr.Hi] = true
		}

		labels := make([]int, 0, len(labelSet))
		for l := range labelSet {
			labels = append(labels, l)
		}
		sort.Ints(labels)

		p.defs[i] = Definition{Name: d.Name, Pairs: pairs}
		p.labels[i] = labels
		for _, pr := range pairs {
			p.owners[pr] = append(p.owners[pr], i)
		}
	}

	return p
}

// NumSulci returns the number of sulcus definitions.
func (p *Protocol) NumSulci() int { return len(p.defs) }

// Name returns the name of sulcus id.
func (p *Protocol) Name(id int) string { return p.defs[id].Name }

// Pairs returns the normalized label pairs of sulcus id. The slice is
// owned by the protocol and must not be modified.
func (p *Protocol) Pairs(id int) []Pair { return p.defs[id].Pairs }

// Labels returns the unique sorted labels appearing across the pairs of
// sulcus id. The slice is owned by the protocol and must not be modified.
func (p *Protocol) Labels(id int) []int { return p.labels[id] }

// ContainsPair reports whether any definition owns the pair.
func (p *Protocol) ContainsPair(pr Pair) bool {
	_, ok := p.owners[NewPair(pr.Lo, pr.Hi)]
	return ok
}

// Owners returns the definition indices that include the pair, in
// definition order. Under a consistent protocol at most one definition
// owns any pair.
func (p *Protocol) Owners(pr Pair) []int {
	return p.owners[NewPair(pr.Lo, pr.Hi)]
}

// SharedPairs returns pairs claimed by more than one definition. A
// non-empty result violates the protocol-consistency assumption;
// identification behavior for those pairs is undefined.
func (p *Protocol) SharedPairs() []Pair {
	var shared []Pair
	for pr, ids := range p.owners {
		if len(ids) > 1 {
			shared = append(shared, pr)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].Lo != shared[j].Lo {
			return shared[i].Lo < shared[j].Lo
		}
		return shared[i].Hi < shared[j].Hi
	})
	return shared
}

// MatchLabelSet returns the definitions whose label set equals labels
// (given sorted, deduplicated).
func (p *Protocol) MatchLabelSet(labels []int) []int {
	var ids []int
	for i := range p.defs {
		if equalInts(p.labels[i], labels) {
			ids = append(ids, i)
		}
	}
	return ids
}

// Supersets returns the definitions whose label set contains every label
// in labels.
func (p *Protocol) Supersets(labels []int) []int {
	var ids []int
	for i := range p.defs {
		if containsAll(p.labels[i], labels) {
			ids = append(ids, i)
		}
	}
	return ids
}

// Subsets returns the definitions whose label set is fully contained in
// labels.
func (p *Protocol) Subsets(labels []int) []int {
	var ids []int
	for i := range p.defs {
		if containsAll(labels, p.labels[i]) {
			ids = append(ids, i)
		}
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// containsAll reports whether sorted set a contains every element of
// sorted set b.
func containsAll(a, b []int) bool {
	i := 0
	for _, x := range b {
		for i < len(a) && a[i] < x {
			i++
		}
		if i == len(a) || a[i] != x {
			return false
		}
	}
	return true
}

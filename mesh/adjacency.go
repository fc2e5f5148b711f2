package mesh

import "sort"

// Adjacency maps every vertex to the set of vertices it shares a face edge
// with. It is built once per mesh and immutable afterwards; the neighbor
// relation is symmetric.
type Adjacency struct {
	neighbors [][]int
}

// NewAdjacency builds the adjacency graph from a face list.
// Vertices absent from all faces keep an empty neighbor set.
// Construction is O(F) in the face count; face indices outside
// [0, numVertices) are a fatal input-validation failure.
func NewAdjacency(faces []Face, numVertices int) (*Adjacency, error) {
	neighbors := make([][]int, numVertices)

	for i, f := range faces {
		for _, v := range f {
			if v < 0 || v >= numVertices {
				return nil, &ErrFaceIndexOutOfRange{Face: i, Index: v, NumVertices: numVertices}
			}
		}
		neighbors[f[0]] = append(neighbors[f[0]], f[1], f[2])
		neighbors[f[1]] = append(neighbors[f[1]], f[0], f[2])
		neighbors[f[2]] = append(neighbors[f[2]], f[0], f[1])
	}

	// Shared edges produce duplicates; sort and compact each list so
	// neighbor iteration order is deterministic.
	for v, list := range neighbors {
		if len(list) < 2 {
			continue
		}
		sort.Ints(list)
		out := list[:1]
		for _, w := range list[1:] {
			if w != out[len(out)-1] {
				out = append(out, w)
			}
		}
		neighbors[v] = out
	}

	return &Adjacency{neighbors: neighbors}, nil
}

// NewAdjacencyFromMesh builds the adjacency graph of m.
func NewAdjacencyFromMesh(m *Mesh) (*Adjacency, error) {
	return NewAdjacency(m.Faces, m.NumVertices())
}

// NumVertices returns the number of vertices the graph was built over.
func (a *Adjacency) NumVertices() int { return len(a.neighbors) }

// Neighbors returns the sorted neighbor indices of v. The returned slice
// is owned by the graph and must not be modified.
func (a *Adjacency) Neighbors(v int) []int { return a.neighbors[v] }

// Degree returns the number of neighbors of v.
func (a *Adjacency) Degree(v int) int { return len(a.neighbors[v]) }

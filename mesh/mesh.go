// Package mesh provides the triangulated-surface types shared by all
// sulcigo components: the mesh itself and the vertex adjacency graph
// derived from its faces.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Face is a triangle given by three vertex indices.
type Face [3]int

// Mesh is a triangulated surface: vertex positions plus triangular faces.
// The vertex count is derived from the points slice; every face index must
// lie in [0, NumVertices()).
type Mesh struct {
	Points []r3.Vec
	Faces  []Face
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Points) }

// Validate checks that every face references a valid vertex.
func (m *Mesh) Validate() error {
	n := m.NumVertices()
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return &ErrFaceIndexOutOfRange{Face: i, Index: v, NumVertices: n}
			}
		}
	}
	return nil
}

// ErrFaceIndexOutOfRange indicates a face referencing a vertex outside
// [0, NumVertices). This is a fatal input-validation failure.
type ErrFaceIndexOutOfRange struct {
	Face        int
	Index       int
	NumVertices int
}

func (e *ErrFaceIndexOutOfRange) Error() string {
	return fmt.Sprintf("mesh: face %d references vertex %d, want [0, %d)",
		e.Face, e.Index, e.NumVertices)
}

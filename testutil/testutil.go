// Package testutil provides testing utilities for sulcigo.
//
// This package is intended for use in tests and benchmarks only.
// It builds synthetic surface meshes with known topology, plus depth
// and label arrays shaped to exercise segmentation edge cases.
package testutil

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/sulcigo/mesh"
)

// GridMesh builds a planar rows x cols vertex grid triangulated into
// 2*(rows-1)*(cols-1) faces. Vertex (r, c) has index r*cols+c and
// position (c, r, 0).
func GridMesh(rows, cols int) *mesh.Mesh {
	points := make([]r3.Vec, 0, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			points = append(points, r3.Vec{X: float64(c), Y: float64(r)})
		}
	}

	var faces []mesh.Face

	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			v := r*cols + c
			faces = append(faces,
				mesh.Face{v, v + 1, v + cols},
				mesh.Face{v + 1, v + cols + 1, v + cols},
			)
		}
	}

	return &mesh.Mesh{Points: points, Faces: faces}
}

// GridIndex returns the vertex index of grid cell (r, c).
func GridIndex(r, c, cols int) int {
	return r*cols + c
}

// StripMesh builds a 6-vertex triangle strip: two columns of three
// vertices, triangulated into four faces. Vertices 0..1 form the first
// row, 2..3 the second, 4..5 the third.
func StripMesh() *mesh.Mesh {
	points := []r3.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 1, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2},
	}

	faces := []mesh.Face{
		{0, 1, 2},
		{1, 3, 2},
		{2, 3, 4},
		{3, 5, 4},
	}

	return &mesh.Mesh{Points: points, Faces: faces}
}

// ConstantDepths returns n copies of d.
func ConstantDepths(n int, d float64) []float64 {
	depths := make([]float64, n)
	for i := range depths {
		depths[i] = d
	}

	return depths
}

// NoisyDepths returns n values uniform in [lo, hi), deterministic for a
// given seed.
func NoisyDepths(n int, lo, hi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	depths := make([]float64, n)
	for i := range depths {
		depths[i] = lo + (hi-lo)*rng.Float64()
	}

	return depths
}

// FilledInts returns n copies of v.
func FilledInts(n, v int) []int {
	arr := make([]int, n)
	for i := range arr {
		arr[i] = v
	}

	return arr
}

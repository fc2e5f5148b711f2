// Package histogram selects the fold depth threshold from the
// distribution of per-vertex depth values.
//
// Depth distributions on a cortical surface show a rapidly decreasing
// mass of shallow values (the outer surface) with a long tail of deeper
// values (inside the folds). The threshold is the depth of the first
// plateau after that initial decrease: bin counts are smoothed with a
// Gaussian kernel, slopes approximated by convolving with [-1, 0, 1],
// and the first zero-slope bin selected. When no zero-slope bin exists
// the median depth is used instead.
package histogram

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// smoothingSigma is the Gaussian kernel width, in bins.
const smoothingSigma = 5.0

// Result holds the histogram and the selected threshold.
type Result struct {
	// Bins are the vertex counts per depth range.
	Bins []int

	// Edges are the bin edge depth values, len(Bins)+1 of them.
	Edges []float64

	// Threshold is the selected fold depth threshold.
	Threshold float64

	// FromSlope reports whether the threshold came from a zero-slope bin
	// rather than the median fallback.
	FromSlope bool
}

// DepthThreshold bins the depth values into nbins equal-width bins and
// selects the fold threshold. nbins must be at least 1.
func DepthThreshold(depths []float64, nbins int) Result {
	res := Result{}
	res.Bins, res.Edges = bin(depths, nbins)

	smoothed := smooth(res.Bins, smoothingSigma)
	if i, ok := firstZeroSlope(smoothed); ok {
		res.Threshold = res.Edges[i]
		res.FromSlope = true
		return res
	}

	res.Threshold = median(depths)
	return res
}

// bin computes an equal-width histogram over [min, max]; the last bin is
// closed on the right.
func bin(depths []float64, nbins int) ([]int, []float64) {
	lo, hi := depths[0], depths[0]
	for _, d := range depths[1:] {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}

	edges := make([]float64, nbins+1)
	width := (hi - lo) / float64(nbins)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[nbins] = hi

	bins := make([]int, nbins)
	for _, d := range depths {
		i := nbins - 1
		if width > 0 {
			i = int((d - lo) / width)
			if i >= nbins {
				i = nbins - 1
			}
		}
		bins[i]++
	}
	return bins, edges
}

// smooth applies a Gaussian kernel (reflected at the boundaries) and
// rounds the result back to integer counts, so that plateau detection
// compares exact values.
func smooth(bins []int, sigma float64) []int {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	n := len(bins)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		acc := 0.0
		for k := -radius; k <= radius; k++ {
			acc += kernel[k+radius] * float64(bins[reflect(i+k, n)])
		}
		out[i] = int(math.Round(acc))
	}
	return out
}

// reflect maps an out-of-range index back into [0, n) by mirroring at
// the edges (d c b a | a b c d).
func reflect(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// firstZeroSlope returns the first bin whose centered slope
// (smoothed[i-1] - smoothed[i+1]) / 2 is zero, with zero padding past
// the ends.
func firstZeroSlope(smoothed []int) (int, bool) {
	n := len(smoothed)
	at := func(i int) int {
		if i < 0 || i >= n {
			return 0
		}
		return smoothed[i]
	}
	for i := 0; i < n; i++ {
		if at(i-1) == at(i+1) {
			return i, true
		}
	}
	return 0, false
}

func median(depths []float64) float64 {
	sorted := make([]float64, len(depths))
	copy(sorted, depths)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}

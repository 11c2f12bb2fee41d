package kernels

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/steinlab/internal/stein"
)

// MedianBandwidth returns the standard SVGD bandwidth heuristic: the
// lengthscale l with l^2 = med^2 / (2 log(n+1)), where med is the
// median pairwise particle distance. Falls back to 1.0 when fewer than
// two particles or all particles coincide.
func MedianBandwidth(positions []stein.Vector) float64 {
	n := len(positions)
	if n < 2 {
		return 1.0
	}

	dists := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dists = append(dists, positions[i].Sub(positions[j]).Norm())
		}
	}
	sort.Float64s(dists)

	med := stat.Quantile(0.5, stat.Empirical, dists, nil)
	if med <= 0 {
		return 1.0
	}
	return med / math.Sqrt(2*math.Log(float64(n)+1))
}

package series

import (
	"github.com/icomputational/mlpack/utils"
)

// Region is an axis-aligned box, described by one closed interval per
// dimension. It is the target area of a truncation-order query: the set of
// query points for which the selected order must meet the error bound.
type Region struct {
	Min, Max []float64
}

// Width returns the extent of the region along dimension d.
func (re Region) Width(d int) float64 {
	return re.Max[d] - re.Min[d]
}

// WidestWidth returns the largest per-dimension extent of the region.
func (re Region) WidestWidth() (widest float64) {
	for d := range re.Min {
		widest = utils.Max(widest, re.Width(d))
	}
	return
}

// MinDistSq returns the squared Euclidean distance from x to the region,
// zero if x lies inside it.
func (re Region) MinDistSq(x []float64) (distSq float64) {
	for d := range x {
		if v := re.Min[d] - x[d]; v > 0 {
			distSq += v * v
		} else if v := x[d] - re.Max[d]; v > 0 {
			distSq += v * v
		}
	}
	return
}

// Contains reports whether x lies inside the region.
func (re Region) Contains(x []float64) bool {
	for d := range x {
		if x[d] < re.Min[d] || x[d] > re.Max[d] {
			return false
		}
	}
	return true
}

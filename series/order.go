package series

import (
	"errors"
	"math"
)

// Truncation-order selection failure reasons. All of them mean the Taylor
// series cannot be certified to meet the requested accuracy; the caller is
// expected to fall back to direct evaluation.
var (
	// ErrRegionTooWide is returned when the target region's widest extent,
	// relative to the kernel's characteristic scale, rules out guaranteed
	// convergence of the series.
	ErrRegionTooWide = errors.New("series: region too wide for a convergent expansion")

	// ErrOrderCapacity is returned when no order within the table's maximum
	// meets the requested error.
	ErrOrderCapacity = errors.New("series: required order exceeds table capacity")

	// ErrFactorialRange is returned when a factorial term of the bound falls
	// outside the table's precomputed range.
	ErrFactorialRange = errors.New("series: factorial term outside precomputed range")
)

// OrderEstimate is the outcome of a successful truncation-order search: the
// smallest order whose analytic tail bound meets the requested maximum
// error, and the bound actually achieved at that order.
type OrderEstimate struct {
	Order int
	Bound float64
}

// OrderForEvaluating returns the smallest truncation order whose analytic
// error bound is at most maxError for any query point inside region, given
// the minimum squared distance from the expansion's center to the region.
// It is a pure query: the expansion is not modified.
//
// The bound combines a kernel-dependent front factor, a growing power of the
// region's widest width relative to the kernel's characteristic scale, and a
// floor/ceiling factorial interpolation over order/dimension approximating
// the worst-case multi-index magnitude at each order.
func (le *LocalExpansion) OrderForEvaluating(region Region, minDistSq, maxError float64) (OrderEstimate, error) {

	dim := le.table.dim
	maxOrder := le.table.maxOrder

	frontFactor := le.kernel.ConvergenceFactor(minDistSq)
	widestWidth := region.WidestWidth()

	twoBandwidth := 2 * math.Sqrt(le.kernel.BandwidthSq())
	r := widestWidth / twoBandwidth

	if r >= 1.0 {
		return OrderEstimate{}, ErrRegionTooWide
	}

	rToP := 1.0

	for p := 0; ; p++ {

		if p > maxOrder {
			return OrderEstimate{}, ErrOrderCapacity
		}

		rToP *= r

		floorFact, okFloor := le.table.Factorial(p / dim)
		ceilFact, okCeil := le.table.Factorial((p + dim - 1) / dim)
		if !okFloor || !okCeil {
			return OrderEstimate{}, ErrFactorialRange
		}

		remainder := p % dim

		bound := frontFactor *
			float64(le.table.totalNumCoeffs[p+1]-le.table.totalNumCoeffs[p]) * rToP /
			math.Sqrt(math.Pow(floorFact, float64(dim-remainder))*math.Pow(ceilFact, float64(remainder)))

		if bound <= maxError {
			return OrderEstimate{Order: p, Bound: bound}, nil
		}
	}
}

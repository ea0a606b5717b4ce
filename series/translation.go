package series

import (
	"github.com/icomputational/mlpack/utils"
)

// TranslateFromFarField combines the source far-field expansion into this
// local expansion. The translated coefficients are added to the existing
// ones, so contributions from many far-field sources aggregate before a
// single evaluation pass. If the source's order exceeds this expansion's, the
// order is raised to match; it is never lowered, and coefficients above the
// source's order are left untouched.
//
// The running sum over source terms is split into positive and negative
// accumulators before being combined, to limit cancellation error in the
// alternating-sign Taylor sums.
func (le *LocalExpansion) TranslateFromFarField(src *FarFieldExpansion) {

	if le.table != src.table {
		panic("series: expansions do not share a table")
	}
	if utils.Alias1D(le.coeffs, src.coeffs) {
		panic("series: cannot translate an expansion into itself")
	}

	dim := le.table.dim
	srcOrder := src.Order()
	total := le.table.totalNumCoeffs[srcOrder]

	le.GrowOrder(srcOrder)

	bandwidthFactor := le.kernel.BandwidthFactor(src.BandwidthSq())

	centerDiff := make([]float64, dim)
	for d := 0; d < dim; d++ {
		centerDiff[d] = (le.center[d] - src.center[d]) / bandwidthFactor
	}

	// Partial derivatives are needed up to the sum of a source and a
	// destination multi-index, hence twice the working order.
	derivs := newDerivativeMap(dim, 2*le.order)
	le.kernel.Derivatives(centerDiff, 2*le.order, derivs)

	srcCoeffs := src.Coeffs()
	betaPlusAlpha := make([]int, dim)

	for j := 0; j < total; j++ {

		beta := le.table.multiIndices[j]
		var posSum, negSum float64

		for k := 0; k < total; k++ {

			alpha := le.table.multiIndices[k]
			for d := 0; d < dim; d++ {
				betaPlusAlpha[d] = beta[d] + alpha[d]
			}

			prod := srcCoeffs[k] * le.kernel.PartialDerivative(derivs, betaPlusAlpha)

			if prod > 0 {
				posSum += prod
			} else {
				negSum += prod
			}
		}

		le.coeffs[j] += (posSum + negSum) * le.table.negInvFactorials[j]
	}
}

// TranslateToLocal shifts this expansion's coefficients into dest, a local
// expansion at a different center. The translated coefficients are added to
// dest's existing ones. If dest's order is lower than this expansion's, dest's
// order is raised as a side effect: the destination must be able to hold
// every order this expansion carries, so that repeated translations from
// multiple sources aggregate correctly.
//
// For each destination multi-index only the precomputed dominating source
// indices are visited, since the binomial expansion is zero whenever any
// exponent difference is negative.
func (le *LocalExpansion) TranslateToLocal(dest *LocalExpansion) {

	if le.table != dest.table {
		panic("series: expansions do not share a table")
	}
	if utils.Alias1D(le.coeffs, dest.coeffs) {
		panic("series: cannot translate an expansion into itself")
	}

	dim := le.table.dim
	total := le.table.totalNumCoeffs[le.order]

	dest.GrowOrder(le.order)

	bandwidthFactor := le.kernel.BandwidthFactor(le.kernel.BandwidthSq())

	centerDiff := make([]float64, dim)
	for d := 0; d < dim; d++ {
		centerDiff[d] = (dest.center[d] - le.center[d]) / bandwidthFactor
	}

	diff := make([]int, dim)

	for j := 0; j < total; j++ {

		alpha := le.table.multiIndices[j]
		var posSum, negSum float64

		for _, upper := range le.table.upperMapping[j] {

			if upper >= total {
				break
			}

			beta := le.table.multiIndices[upper]

			skip := false
			for d := 0; d < dim; d++ {
				diff[d] = beta[d] - alpha[d]
				if diff[d] < 0 {
					skip = true
					break
				}
			}
			if skip {
				continue
			}

			prod := le.coeffs[upper] * le.table.chooseWeights[upper][j]
			for d := 0; d < dim; d++ {
				prod *= powInt(centerDiff[d], diff[d])
			}

			if prod > 0 {
				posSum += prod
			} else {
				negSum += prod
			}
		}

		dest.coeffs[j] += posSum + negSum
	}
}

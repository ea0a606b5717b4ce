/*
Package series implements truncated multivariate Taylor/Hermite expansions of
radially symmetric kernels, the building block of fast kernel-summation
methods. A far-field expansion summarizes a cluster of weighted source points
around its center; a local expansion approximates the aggregated kernel field
near a query center. Translation operators shift coefficients between centers
(far-field-to-local and local-to-local) so that work done around one center is
reused around another without touching raw point data.

All expansions share a single read-only Table holding the multi-index
enumeration and the factorial and binomial constants for a fixed dimension and
maximum truncation order. Expansions are not safe for concurrent mutation;
read-only operations may run concurrently on the same instance.
*/
package series

// Kernel is the contract between an expansion and a kernel family. It exposes
// the squared bandwidth, the bandwidth-dependent displacement scaling, and
// the partial derivatives of the kernel needed by accumulation, translation
// and truncation-order selection.
type Kernel interface {
	// BandwidthSq returns the squared bandwidth of the kernel.
	BandwidthSq() float64

	// BandwidthFactor returns the displacement scaling for the given squared
	// bandwidth. Expansion arithmetic operates on displacements divided by
	// this factor.
	BandwidthFactor(bandwidthSq float64) float64

	// Derivatives fills derivs[d][n], for n = 0..order, with the n-th
	// directional derivative factor of the kernel along dimension d at the
	// scaled displacement x.
	Derivatives(x []float64, order int, derivs [][]float64)

	// PartialDerivative composes the mixed partial derivative for the
	// multi-index alpha from the factors computed by Derivatives.
	PartialDerivative(derivs [][]float64, alpha []int) float64

	// ConvergenceFactor returns the front factor of the truncation error
	// bound for a target region at the given minimum squared distance from
	// the expansion center.
	ConvergenceFactor(minDistSq float64) float64
}

func newDerivativeMap(dim, order int) [][]float64 {
	derivs := make([][]float64, dim)
	for d := range derivs {
		derivs[d] = make([]float64, order+1)
	}
	return derivs
}

// Package kernel implements radially symmetric kernel families together with
// the derivative generators consumed by series expansions.
package kernel

import (
	"fmt"
	"math"
)

// Gaussian is the Gaussian kernel K(x) = exp(-||x||^2 / (2h^2)) with
// bandwidth h, together with its derivative generator. The n-th directional
// derivative factors are the Hermite functions
//
//	h_n(t) = (-1)^n (d/dt)^n exp(-t^2),
//
// computed with the recurrence h_n = 2t*h_{n-1} - 2(n-1)*h_{n-2}, and a mixed
// partial derivative is the product of the per-dimension factors.
type Gaussian struct {
	bwSq float64
}

// NewGaussian returns a Gaussian kernel with the given bandwidth h > 0.
func NewGaussian(bandwidth float64) Gaussian {
	if bandwidth <= 0 {
		panic(fmt.Errorf("kernel: bandwidth must be positive but is %f", bandwidth))
	}
	return Gaussian{bwSq: bandwidth * bandwidth}
}

// BandwidthSq returns the squared bandwidth h^2.
func (g Gaussian) BandwidthSq() float64 {
	return g.bwSq
}

// Eval evaluates the kernel on a squared distance.
func (g Gaussian) Eval(sqDist float64) float64 {
	return math.Exp(-sqDist / (2 * g.bwSq))
}

// BandwidthFactor returns the displacement scaling sqrt(2h^2) for the given
// squared bandwidth. Displacements divided by this factor feed the Hermite
// recurrence directly.
func (g Gaussian) BandwidthFactor(bandwidthSq float64) float64 {
	return math.Sqrt(2 * bandwidthSq)
}

// ConvergenceFactor returns the front factor exp(-d^2/(4h^2)) of the
// truncation error bound for a region at squared distance d^2 from the
// expansion center.
func (g Gaussian) ConvergenceFactor(minDistSq float64) float64 {
	return math.Exp(-minDistSq / (4 * g.bwSq))
}

// Derivatives fills derivs[d][n] with h_n(x[d]) for n = 0..order.
// Each derivs[d] must have length at least order+1.
func (g Gaussian) Derivatives(x []float64, order int, derivs [][]float64) {
	for d := range x {
		t := x[d]
		row := derivs[d]
		row[0] = math.Exp(-t * t)
		if order >= 1 {
			row[1] = 2 * t * row[0]
		}
		for n := 2; n <= order; n++ {
			row[n] = 2*t*row[n-1] - 2*float64(n-1)*row[n-2]
		}
	}
}

// PartialDerivative composes the mixed partial derivative for the multi-index
// alpha from the per-dimension factors computed by Derivatives.
func (g Gaussian) PartialDerivative(derivs [][]float64, alpha []int) float64 {
	prod := 1.0
	for d := range alpha {
		prod *= derivs[d][alpha[d]]
	}
	return prod
}

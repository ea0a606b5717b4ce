package series

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/icomputational/mlpack/utils"
)

// FarFieldExpansion is a truncated Hermite expansion summarizing a cluster of
// weighted source points around its center, valid for query points far from
// that center. Its coefficients are the scaled moments of the cluster and do
// not depend on any query location, so a populated far-field expansion can be
// translated into any number of local expansions.
//
// It follows the same monotone-order, additive discipline as LocalExpansion.
type FarFieldExpansion struct {
	kernel Kernel
	table  *Table
	center []float64
	coeffs []float64
	order  int
}

// NewFarFieldExpansion returns a far-field expansion at the given center. It
// panics if the table is nil or the center dimension does not match the
// table.
func NewFarFieldExpansion(k Kernel, center []float64, table *Table) *FarFieldExpansion {
	fe := NewFarFieldExpansionZero(k, table)
	if len(center) != table.dim {
		panic(fmt.Errorf("series: center dimension %d does not match table dimension %d", len(center), table.dim))
	}
	copy(fe.center, center)
	return fe
}

// NewFarFieldExpansionZero returns a far-field expansion centered at the
// origin.
func NewFarFieldExpansionZero(k Kernel, table *Table) *FarFieldExpansion {
	if table == nil {
		panic("series: nil table")
	}
	if k == nil {
		panic("series: nil kernel")
	}
	return &FarFieldExpansion{
		kernel: k,
		table:  table,
		center: make([]float64, table.dim),
		coeffs: make([]float64, table.totalNumCoeffs[table.maxOrder]),
		order:  0,
	}
}

// SetCenter repositions the expansion center. Only meaningful before any
// coefficient has been accumulated.
func (fe *FarFieldExpansion) SetCenter(center []float64) {
	if len(center) != fe.table.dim {
		panic(fmt.Errorf("series: center dimension %d does not match table dimension %d", len(center), fe.table.dim))
	}
	copy(fe.center, center)
}

// Center returns the expansion center. The returned slice is shared and must
// not be modified.
func (fe *FarFieldExpansion) Center() []float64 {
	return fe.center
}

// Coeffs returns the coefficient buffer. The returned slice is shared and
// must not be modified.
func (fe *FarFieldExpansion) Coeffs() []float64 {
	return fe.coeffs
}

// Order returns the current truncation order.
func (fe *FarFieldExpansion) Order() int {
	return fe.order
}

// BandwidthSq returns the squared bandwidth of the expansion's kernel.
func (fe *FarFieldExpansion) BandwidthSq() float64 {
	return fe.kernel.BandwidthSq()
}

// Table returns the shared multi-index table.
func (fe *FarFieldExpansion) Table() *Table {
	return fe.table
}

// GrowOrder raises the truncation order to order if it is higher than the
// current one. It panics if order exceeds the table's maximum.
func (fe *FarFieldExpansion) GrowOrder(order int) {
	if order > fe.table.maxOrder {
		panic(fmt.Errorf("series: order %d exceeds table maximum %d", order, fe.table.maxOrder))
	}
	if order > fe.order {
		fe.order = order
	}
}

// AccumulateCoeffs adds the moments of the weighted source points in rows
// [begin, end) of data into the expansion, truncated at the requested order.
// The expansion's order is raised to the requested order if it is lower.
func (fe *FarFieldExpansion) AccumulateCoeffs(data mat.Matrix, weights []float64, begin, end, order int) {

	fe.GrowOrder(order)

	dim := fe.table.dim
	total := fe.table.totalNumCoeffs[order]

	disp := make([]float64, dim)
	monomials := make([]float64, total)

	bandwidthFactor := fe.kernel.BandwidthFactor(fe.kernel.BandwidthSq())

	for r := begin; r < end; r++ {

		for d := 0; d < dim; d++ {
			disp[d] = (data.At(r, d) - fe.center[d]) / bandwidthFactor
		}

		fe.table.monomials(disp, order, monomials)

		for j := 0; j < total; j++ {
			fe.coeffs[j] += fe.table.invFactorials[j] * weights[r] * monomials[j]
		}
	}
}

// Evaluate evaluates the expansion at the query point x.
func (fe *FarFieldExpansion) Evaluate(x []float64) float64 {
	if len(x) != fe.table.dim {
		panic(fmt.Errorf("series: query dimension %d does not match table dimension %d", len(x), fe.table.dim))
	}
	return fe.evaluate(func(d int) float64 { return x[d] })
}

// EvaluateRow evaluates the expansion at the query point stored in the given
// row of data.
func (fe *FarFieldExpansion) EvaluateRow(data mat.Matrix, row int) float64 {
	return fe.evaluate(func(d int) float64 { return data.At(row, d) })
}

func (fe *FarFieldExpansion) evaluate(at func(d int) float64) float64 {

	dim := fe.table.dim
	total := fe.table.totalNumCoeffs[fe.order]

	bandwidthFactor := fe.kernel.BandwidthFactor(fe.kernel.BandwidthSq())

	disp := make([]float64, dim)
	for d := 0; d < dim; d++ {
		disp[d] = (at(d) - fe.center[d]) / bandwidthFactor
	}

	derivs := newDerivativeMap(dim, fe.order)
	fe.kernel.Derivatives(disp, fe.order, derivs)

	var sum float64
	for j := 0; j < total; j++ {
		sum += fe.coeffs[j] * fe.kernel.PartialDerivative(derivs, fe.table.multiIndices[j])
	}

	return sum
}

// TranslateFromFarField shifts the coefficients of the source far-field
// expansion into this one, centered elsewhere. The translated coefficients
// are added to the existing ones; the order is raised to the source's if it
// is lower. Repeated calls from multiple sources accumulate.
func (fe *FarFieldExpansion) TranslateFromFarField(src *FarFieldExpansion) {

	if fe.table != src.table {
		panic("series: expansions do not share a table")
	}
	if utils.Alias1D(fe.coeffs, src.coeffs) {
		panic("series: cannot translate an expansion into itself")
	}

	srcOrder := src.order
	fe.GrowOrder(srcOrder)

	dim := fe.table.dim
	total := fe.table.totalNumCoeffs[srcOrder]

	bandwidthFactor := fe.kernel.BandwidthFactor(src.BandwidthSq())

	centerDiff := make([]float64, dim)
	for d := 0; d < dim; d++ {
		centerDiff[d] = (src.center[d] - fe.center[d]) / bandwidthFactor
	}

	diff := make([]int, dim)

	for j := 0; j < total; j++ {

		beta := fe.table.multiIndices[j]
		var posSum, negSum float64

		for k := 0; k < total; k++ {

			alpha := fe.table.multiIndices[k]

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

			pos, ok := fe.table.Position(diff)
			if !ok {
				continue
			}

			prod := src.coeffs[k] * fe.table.invFactorials[pos]
			for d := 0; d < dim; d++ {
				prod *= powInt(centerDiff[d], diff[d])
			}

			if prod > 0 {
				posSum += prod
			} else {
				negSum += prod
			}
		}

		fe.coeffs[j] += posSum + negSum
	}
}

// PrintDebug writes a human-readable dump of the expansion to w.
func (fe *FarFieldExpansion) PrintDebug(name string, w io.Writer) {

	total := fe.table.totalNumCoeffs[fe.order]

	fmt.Fprintf(w, "----- SERIES EXPANSION %s -----\n", name)
	fmt.Fprintf(w, "Far-field expansion of order %d\n", fe.order)
	fmt.Fprintf(w, "Center: ")
	for _, c := range fe.center {
		fmt.Fprintf(w, "%g ", c)
	}
	fmt.Fprintf(w, "\nMoments: ")
	for j := 0; j < total; j++ {
		fmt.Fprintf(w, "%g ", fe.coeffs[j])
	}
	fmt.Fprintf(w, "\n")
}

func powInt(x float64, n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= x
	}
	return p
}

package series

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// LocalExpansion is a truncated Taylor expansion of the aggregated kernel
// field around a fixed center, valid for query points near that center.
//
// The coefficient buffer is allocated once, sized for the maximum order the
// table supports; only the first TotalNumCoeffs(order) entries are
// meaningful. The truncation order starts at zero and only ever grows as
// higher-order information is accumulated or translated in. Accumulation and
// translation add into the buffer and never overwrite it, so contributions
// from many sources aggregate without a reset.
//
// A LocalExpansion must not be mutated concurrently; concurrent read-only
// calls are safe.
type LocalExpansion struct {
	kernel Kernel
	table  *Table
	center []float64
	coeffs []float64
	order  int
}

// NewLocalExpansion returns a local expansion at the given center. It panics
// if the table is nil or the center dimension does not match the table.
func NewLocalExpansion(k Kernel, center []float64, table *Table) *LocalExpansion {
	le := NewLocalExpansionZero(k, table)
	if len(center) != table.dim {
		panic(fmt.Errorf("series: center dimension %d does not match table dimension %d", len(center), table.dim))
	}
	copy(le.center, center)
	return le
}

// NewLocalExpansionZero returns a local expansion centered at the origin,
// for callers that position the center by writing through SetCenter before
// the first accumulation.
func NewLocalExpansionZero(k Kernel, table *Table) *LocalExpansion {
	if table == nil {
		panic("series: nil table")
	}
	if k == nil {
		panic("series: nil kernel")
	}
	return &LocalExpansion{
		kernel: k,
		table:  table,
		center: make([]float64, table.dim),
		coeffs: make([]float64, table.totalNumCoeffs[table.maxOrder]),
		order:  0,
	}
}

// SetCenter repositions the expansion center. Only meaningful before any
// coefficient has been accumulated.
func (le *LocalExpansion) SetCenter(center []float64) {
	if len(center) != le.table.dim {
		panic(fmt.Errorf("series: center dimension %d does not match table dimension %d", len(center), le.table.dim))
	}
	copy(le.center, center)
}

// Center returns the expansion center. The returned slice is shared and must
// not be modified.
func (le *LocalExpansion) Center() []float64 {
	return le.center
}

// Coeffs returns the coefficient buffer. The returned slice is shared and
// must not be modified.
func (le *LocalExpansion) Coeffs() []float64 {
	return le.coeffs
}

// Order returns the current truncation order.
func (le *LocalExpansion) Order() int {
	return le.order
}

// MaxOrder returns the maximum truncation order supported by the table.
func (le *LocalExpansion) MaxOrder() int {
	return le.table.maxOrder
}

// BandwidthSq returns the squared bandwidth of the expansion's kernel.
func (le *LocalExpansion) BandwidthSq() float64 {
	return le.kernel.BandwidthSq()
}

// Table returns the shared multi-index table.
func (le *LocalExpansion) Table() *Table {
	return le.table
}

// GrowOrder raises the truncation order to order if it is higher than the
// current one. The order of an expansion never decreases. It panics if order
// exceeds the table's maximum.
func (le *LocalExpansion) GrowOrder(order int) {
	if order > le.table.maxOrder {
		panic(fmt.Errorf("series: order %d exceeds table maximum %d", order, le.table.maxOrder))
	}
	if order > le.order {
		le.order = order
	}
}

// AccumulateCoeffs adds the contribution of the weighted source points in
// rows [begin, end) of data into the expansion, truncated at the requested
// order. The expansion's order is raised to the requested order if it is
// lower; it is never lowered. The result is independent of the processing
// order of the points up to floating-point rounding.
func (le *LocalExpansion) AccumulateCoeffs(data mat.Matrix, weights []float64, begin, end, order int) {

	le.GrowOrder(order)

	dim := le.table.dim
	total := le.table.totalNumCoeffs[order]

	derivs := newDerivativeMap(dim, order)
	disp := make([]float64, dim)

	bandwidthFactor := le.kernel.BandwidthFactor(le.kernel.BandwidthSq())

	for r := begin; r < end; r++ {

		for d := 0; d < dim; d++ {
			disp[d] = (le.center[d] - data.At(r, d)) / bandwidthFactor
		}

		le.kernel.Derivatives(disp, order, derivs)

		for j := 0; j < total; j++ {
			le.coeffs[j] += le.table.negInvFactorials[j] * weights[r] *
				le.kernel.PartialDerivative(derivs, le.table.multiIndices[j])
		}
	}
}

// Evaluate evaluates the expansion at the query point x.
func (le *LocalExpansion) Evaluate(x []float64) float64 {
	if len(x) != le.table.dim {
		panic(fmt.Errorf("series: query dimension %d does not match table dimension %d", len(x), le.table.dim))
	}
	return le.evaluate(func(d int) float64 { return x[d] })
}

// EvaluateRow evaluates the expansion at the query point stored in the given
// row of data.
func (le *LocalExpansion) EvaluateRow(data mat.Matrix, row int) float64 {
	return le.evaluate(func(d int) float64 { return data.At(row, d) })
}

func (le *LocalExpansion) evaluate(at func(d int) float64) float64 {

	dim := le.table.dim
	total := le.table.totalNumCoeffs[le.order]

	bandwidthFactor := le.kernel.BandwidthFactor(le.kernel.BandwidthSq())

	disp := make([]float64, dim)
	for d := 0; d < dim; d++ {
		disp[d] = (at(d) - le.center[d]) / bandwidthFactor
	}

	monomials := make([]float64, total)
	le.table.monomials(disp, le.order, monomials)

	var sum float64
	for j := 0; j < total; j++ {
		sum += le.coeffs[j] * monomials[j]
	}

	return sum
}

// PrintDebug writes a human-readable dump of the expansion to w.
func (le *LocalExpansion) PrintDebug(name string, w io.Writer) {

	dim := le.table.dim
	total := le.table.totalNumCoeffs[le.order]

	fmt.Fprintf(w, "----- SERIES EXPANSION %s -----\n", name)
	fmt.Fprintf(w, "Local expansion of order %d\n", le.order)
	fmt.Fprintf(w, "Center: ")
	for _, c := range le.center {
		fmt.Fprintf(w, "%g ", c)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "f(")
	for d := 0; d < dim; d++ {
		fmt.Fprintf(w, "x_q%d", d)
		if d < dim-1 {
			fmt.Fprintf(w, ",")
		}
	}
	fmt.Fprintf(w, ") = \\sum\\limits_{x_r \\in R} K(||x_q - x_r||) = ")

	for j := 0; j < total; j++ {
		alpha := le.table.multiIndices[j]
		fmt.Fprintf(w, "%g", le.coeffs[j])
		for d := 0; d < dim; d++ {
			fmt.Fprintf(w, "(x_q%d - (%g))^%d ", d, le.center[d], alpha[d])
		}
		if j < total-1 {
			fmt.Fprintf(w, " + ")
		}
	}
	fmt.Fprintf(w, "\n")
}

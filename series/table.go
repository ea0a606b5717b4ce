package series

import (
	"fmt"
	"math"
)

// Table holds the precomputed multi-index bookkeeping shared by every
// expansion of a fixed dimension and maximum truncation order: the graded
// multi-index enumeration, factorial-derived normalization constants, the
// componentwise-dominance adjacency used by local-to-local translation, and
// the binomial "choose" weights used to combine coefficients.
//
// A Table is immutable after construction and safe for concurrent readers.
// It is meant to be built once and shared by handle across all expansions of
// the same dimension.
type Table struct {
	dim      int
	maxOrder int

	// totalNumCoeffs[k] is the number of multi-indices of total order <= k,
	// i.e. C(k+dim, dim). It carries one extra entry beyond maxOrder so that
	// order selection can count the multi-indices of exact order maxOrder+1.
	totalNumCoeffs []int

	multiIndices     [][]int
	invFactorials    []float64
	negInvFactorials []float64
	factorials       []float64

	// upperMapping[j] lists, in ascending position order, every position k
	// whose multi-index dominates the one at j componentwise.
	upperMapping [][]int

	// chooseWeights[u][l] is the product over dimensions of
	// C(alpha_u[d], alpha_l[d]), zero whenever alpha_l does not divide
	// alpha_u componentwise.
	chooseWeights [][]float64

	positions map[string]int
}

// NewTable precomputes the multi-index tables for the given dimension and
// maximum truncation order. It panics on a non-positive dimension or a
// negative order.
func NewTable(dim, maxOrder int) *Table {

	if dim < 1 {
		panic(fmt.Errorf("series: dimension must be positive but is %d", dim))
	}

	if maxOrder < 0 {
		panic(fmt.Errorf("series: maximum order must be non-negative but is %d", maxOrder))
	}

	ta := &Table{dim: dim, maxOrder: maxOrder}

	ta.totalNumCoeffs = make([]int, maxOrder+2)
	for k := range ta.totalNumCoeffs {
		ta.totalNumCoeffs[k] = binomial(k+dim, dim)
	}

	total := ta.totalNumCoeffs[maxOrder]

	// The enumeration is produced by the same heads-based traversal used by
	// the monomial power recurrence, so that positions agree between the
	// tables and evaluation.
	ta.multiIndices = make([][]int, total)
	ta.multiIndices[0] = make([]int, dim)
	heads := make([]int, dim+1)
	heads[dim] = math.MaxInt
	t := 1
	for k, tail := 1, 1; k <= maxOrder; k, tail = k+1, t {
		for i := 0; i < dim; i++ {
			head := heads[i]
			heads[i] = t
			for j := head; j < tail; j++ {
				alpha := make([]int, dim)
				copy(alpha, ta.multiIndices[j])
				alpha[i]++
				ta.multiIndices[t] = alpha
				t++
			}
		}
	}

	ta.factorials = make([]float64, maxOrder+1)
	ta.factorials[0] = 1
	for n := 1; n <= maxOrder; n++ {
		ta.factorials[n] = ta.factorials[n-1] * float64(n)
	}

	ta.invFactorials = make([]float64, total)
	ta.negInvFactorials = make([]float64, total)
	for j, alpha := range ta.multiIndices {
		inv := 1.0
		order := 0
		for _, a := range alpha {
			inv /= ta.factorials[a]
			order += a
		}
		ta.invFactorials[j] = inv
		if order%2 == 0 {
			ta.negInvFactorials[j] = inv
		} else {
			ta.negInvFactorials[j] = -inv
		}
	}

	ta.upperMapping = make([][]int, total)
	for j, alpha := range ta.multiIndices {
		var uppers []int
		// Dominating multi-indices have total order >= |alpha|, hence, the
		// enumeration being graded, position >= j.
		for k := j; k < total; k++ {
			if dominates(ta.multiIndices[k], alpha) {
				uppers = append(uppers, k)
			}
		}
		ta.upperMapping[j] = uppers
	}

	ta.chooseWeights = make([][]float64, total)
	for u := range ta.chooseWeights {
		row := make([]float64, total)
		for l := range row {
			prod := 1.0
			for d := 0; d < dim; d++ {
				prod *= choose(ta.factorials, ta.multiIndices[u][d], ta.multiIndices[l][d])
			}
			row[l] = prod
		}
		ta.chooseWeights[u] = row
	}

	ta.positions = make(map[string]int, total)
	for j, alpha := range ta.multiIndices {
		ta.positions[indexKey(alpha)] = j
	}

	return ta
}

// Dimension returns the ambient dimension of the table.
func (ta *Table) Dimension() int {
	return ta.dim
}

// MaxOrder returns the maximum truncation order supported by the table.
func (ta *Table) MaxOrder() int {
	return ta.maxOrder
}

// TotalNumCoeffs returns the number of multi-indices of total order at most
// order, i.e. the number of meaningful coefficients of an expansion truncated
// at that order.
func (ta *Table) TotalNumCoeffs(order int) int {
	if order < 0 || order > ta.maxOrder {
		panic(fmt.Errorf("series: order %d outside table range [0, %d]", order, ta.maxOrder))
	}
	return ta.totalNumCoeffs[order]
}

// MultiIndex returns the exponent tuple at the given position. The returned
// slice is shared and must not be modified.
func (ta *Table) MultiIndex(pos int) []int {
	return ta.multiIndices[pos]
}

// InverseFactorial returns 1/alpha! for the multi-index at the given
// position, where alpha! is the product of the componentwise factorials.
func (ta *Table) InverseFactorial(pos int) float64 {
	return ta.invFactorials[pos]
}

// NegatedInverseFactorial returns (-1)^|alpha| / alpha! for the multi-index
// at the given position.
func (ta *Table) NegatedInverseFactorial(pos int) float64 {
	return ta.negInvFactorials[pos]
}

// Factorial returns n! from the precomputed range, and false if n lies
// outside it.
func (ta *Table) Factorial(n int) (float64, bool) {
	if n < 0 || n >= len(ta.factorials) {
		return 0, false
	}
	return ta.factorials[n], true
}

// UpperMappingIndex returns, in ascending order, the positions whose
// multi-index dominates the one at pos componentwise. These are the only
// positions that can contribute to pos under local-to-local translation.
// The returned slice is shared and must not be modified.
func (ta *Table) UpperMappingIndex(pos int) []int {
	return ta.upperMapping[pos]
}

// ChooseWeight returns the product over dimensions of the binomial
// coefficients C(alpha_upper[d], alpha_lower[d]).
func (ta *Table) ChooseWeight(upperPos, lowerPos int) float64 {
	return ta.chooseWeights[upperPos][lowerPos]
}

// Position returns the enumeration position of the given exponent tuple, and
// false if it lies outside the table.
func (ta *Table) Position(alpha []int) (int, bool) {
	pos, ok := ta.positions[indexKey(alpha)]
	return pos, ok
}

// monomials fills out[t], for every position t below TotalNumCoeffs(order),
// with x raised to the multi-index at t, extending monomial products one
// dimension at a time in enumeration order.
func (ta *Table) monomials(x []float64, order int, out []float64) {
	heads := make([]int, ta.dim+1)
	heads[ta.dim] = math.MaxInt
	out[0] = 1
	t := 1
	for k, tail := 1, 1; k <= order; k, tail = k+1, t {
		for i := 0; i < ta.dim; i++ {
			head := heads[i]
			heads[i] = t
			for j := head; j < tail; j++ {
				out[t] = out[j] * x[i]
				t++
			}
		}
	}
}

func dominates(beta, alpha []int) bool {
	for d := range alpha {
		if beta[d] < alpha[d] {
			return false
		}
	}
	return true
}

func choose(factorials []float64, n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return factorials[n] / (factorials[k] * factorials[n-k])
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	v := 1
	for i := 0; i < k; i++ {
		v = v * (n - i) / (i + 1)
	}
	return v
}

func indexKey(alpha []int) string {
	b := make([]byte, len(alpha))
	for d, a := range alpha {
		b[d] = byte(a)
	}
	return string(b)
}

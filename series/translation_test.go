package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/icomputational/mlpack/kernel"
	"github.com/icomputational/mlpack/utils/sampling"
)

// clusterData returns a weighted point cloud centered on center with the
// given half-width.
func clusterData(t *testing.T, label string, n int, center []float64, halfWidth float64) (*mat.Dense, []float64) {
	prng := testPRNG(t, label)
	dim := len(center)
	data := sampling.Points(prng, n, dim, -halfWidth, halfWidth)
	for r := 0; r < n; r++ {
		for d := 0; d < dim; d++ {
			data.Set(r, d, data.At(r, d)+center[d])
		}
	}
	return data, sampling.Weights(prng, n, 0, 1)
}

func TestTranslation(t *testing.T) {

	g := kernel.NewGaussian(1.0)

	t.Run("FarFieldToLocalRoundTrip", func(t *testing.T) {

		ta := NewTable(2, 8)

		farCenter := []float64{1.5, 1.5}
		localCenter := []float64{0, 0}

		n := 50
		data, weights := clusterData(t, "m2l", n, farCenter, 0.3)

		// Direct accumulation at the local center versus accumulation at the
		// far center followed by a far-field-to-local translation: the two
		// must agree on evaluation, within the translation truncation error.
		direct := NewLocalExpansion(g, localCenter, ta)
		direct.AccumulateCoeffs(data, weights, 0, n, 8)

		fe := NewFarFieldExpansion(g, farCenter, ta)
		fe.AccumulateCoeffs(data, weights, 0, n, 8)

		translated := NewLocalExpansion(g, localCenter, ta)
		translated.TranslateFromFarField(fe)
		require.Equal(t, 8, translated.Order())

		prng := testPRNG(t, "m2l-queries")
		nq := 25
		queries := sampling.Points(prng, nq, 2, -0.25, 0.25)

		wantDirect := make([]float64, nq)
		haveTranslated := make([]float64, nq)
		exact := make([]float64, nq)
		for q := 0; q < nq; q++ {
			x := mat.Row(nil, q, queries)
			exact[q] = directKernelSum(g, data, weights, x)
			wantDirect[q] = direct.Evaluate(x)
			haveTranslated[q] = translated.Evaluate(x)
		}

		VerifyTestValues(t, exact, haveTranslated, 10, false)
		VerifyTestValues(t, wantDirect, haveTranslated, 10, false)
	})

	t.Run("TranslationErrorShrinksWithOrder", func(t *testing.T) {

		ta := NewTable(2, 8)

		farCenter := []float64{1.5, 1.5}
		localCenter := []float64{0, 0}

		n := 40
		data, weights := clusterData(t, "m2l-orders", n, farCenter, 0.3)

		prng := testPRNG(t, "m2l-orders-queries")
		queries := sampling.Points(prng, 16, 2, -0.25, 0.25)

		maxErrAt := func(order int) float64 {
			fe := NewFarFieldExpansion(g, farCenter, ta)
			fe.AccumulateCoeffs(data, weights, 0, n, order)
			le := NewLocalExpansion(g, localCenter, ta)
			le.TranslateFromFarField(fe)
			var maxErr float64
			for q := 0; q < 16; q++ {
				x := mat.Row(nil, q, queries)
				err := math.Abs(le.Evaluate(x) - directKernelSum(g, data, weights, x))
				maxErr = math.Max(maxErr, err)
			}
			return maxErr
		}

		err2, err8 := maxErrAt(2), maxErrAt(8)
		require.Less(t, err8, err2)
	})

	t.Run("LocalToLocalRoundTrip", func(t *testing.T) {

		ta := NewTable(2, 6)

		c1 := []float64{0, 0}
		c2 := []float64{0.4, -0.3}

		n := 30
		data, weights := clusterData(t, "l2l", n, c1, 0.4)

		le1 := NewLocalExpansion(g, c1, ta)
		le1.AccumulateCoeffs(data, weights, 0, n, 6)

		le2 := NewLocalExpansion(g, c2, ta)
		le1.TranslateToLocal(le2)
		require.Equal(t, 6, le2.Order())

		// Shifting a truncated polynomial is exact, so shifting back must
		// reproduce the original coefficients up to rounding.
		le3 := NewLocalExpansion(g, c1, ta)
		le2.TranslateToLocal(le3)

		for j := 0; j < ta.TotalNumCoeffs(6); j++ {
			tol := 1e-10 * math.Max(1, math.Abs(le1.Coeffs()[j]))
			require.InDelta(t, le1.Coeffs()[j], le3.Coeffs()[j], tol, "coefficient %d", j)
		}
	})

	t.Run("LocalToLocalPreservesField", func(t *testing.T) {

		ta := NewTable(2, 6)

		c1 := []float64{0, 0}
		c2 := []float64{0.3, 0.2}

		n := 30
		data, weights := clusterData(t, "l2l-field", n, c1, 0.4)

		le1 := NewLocalExpansion(g, c1, ta)
		le1.AccumulateCoeffs(data, weights, 0, n, 6)

		le2 := NewLocalExpansion(g, c2, ta)
		le1.TranslateToLocal(le2)

		// Both expansions represent the same truncated polynomial, so they
		// agree wherever both are evaluated.
		prng := testPRNG(t, "l2l-field-queries")
		queries := sampling.Points(prng, 16, 2, 0.1, 0.3)
		for q := 0; q < 16; q++ {
			x := mat.Row(nil, q, queries)
			require.InDelta(t, le1.Evaluate(x), le2.Evaluate(x), 1e-10)
		}
	})

	t.Run("FarToFarMatchesDirectAccumulation", func(t *testing.T) {

		ta := NewTable(2, 6)

		childCenter := []float64{1.5, 1.5}
		parentCenter := []float64{1.3, 1.6}

		n := 30
		data, weights := clusterData(t, "m2m", n, childCenter, 0.3)

		child := NewFarFieldExpansion(g, childCenter, ta)
		child.AccumulateCoeffs(data, weights, 0, n, 6)

		parent := NewFarFieldExpansion(g, parentCenter, ta)
		parent.TranslateFromFarField(child)
		require.Equal(t, 6, parent.Order())

		// Re-centering truncated moments is exact, so the translated parent
		// matches a direct accumulation at the parent center.
		want := NewFarFieldExpansion(g, parentCenter, ta)
		want.AccumulateCoeffs(data, weights, 0, n, 6)

		for j := 0; j < ta.TotalNumCoeffs(6); j++ {
			tol := 1e-10 * math.Max(1, math.Abs(want.Coeffs()[j]))
			require.InDelta(t, want.Coeffs()[j], parent.Coeffs()[j], tol, "moment %d", j)
		}
	})

	t.Run("AdditiveAcrossSources", func(t *testing.T) {

		ta := NewTable(2, 4)

		localCenter := []float64{0, 0}

		dataA, weightsA := clusterData(t, "add-a", 20, []float64{1.4, 1.4}, 0.2)
		dataB, weightsB := clusterData(t, "add-b", 20, []float64{-1.4, 1.2}, 0.2)

		feA := NewFarFieldExpansion(g, []float64{1.4, 1.4}, ta)
		feA.AccumulateCoeffs(dataA, weightsA, 0, 20, 4)
		feB := NewFarFieldExpansion(g, []float64{-1.4, 1.2}, ta)
		feB.AccumulateCoeffs(dataB, weightsB, 0, 20, 4)

		le := NewLocalExpansion(g, localCenter, ta)
		le.TranslateFromFarField(feA)
		le.TranslateFromFarField(feB)

		leA := NewLocalExpansion(g, localCenter, ta)
		leA.TranslateFromFarField(feA)
		leB := NewLocalExpansion(g, localCenter, ta)
		leB.TranslateFromFarField(feB)

		for j := 0; j < ta.TotalNumCoeffs(4); j++ {
			require.InDelta(t, leA.Coeffs()[j]+leB.Coeffs()[j], le.Coeffs()[j], 1e-12)
		}
	})

	t.Run("MonotoneOrder", func(t *testing.T) {

		ta := NewTable(2, 6)

		data, weights := clusterData(t, "monotone", 10, []float64{1.5, 1.5}, 0.2)

		le := NewLocalExpansion(g, []float64{0, 0}, ta)
		le.AccumulateCoeffs(data, weights, 0, 10, 5)
		require.Equal(t, 5, le.Order())

		// Translating in a lower-order source must not shrink the order nor
		// touch the higher-order coefficients.
		high := make([]float64, len(le.Coeffs()))
		copy(high, le.Coeffs())

		fe := NewFarFieldExpansion(g, []float64{1.5, 1.5}, ta)
		fe.AccumulateCoeffs(data, weights, 0, 10, 2)
		le.TranslateFromFarField(fe)

		require.Equal(t, 5, le.Order())
		for j := ta.TotalNumCoeffs(2); j < ta.TotalNumCoeffs(5); j++ {
			require.Equal(t, high[j], le.Coeffs()[j], "coefficient %d", j)
		}

		// Local-to-local raises a lower-order destination.
		dest := NewLocalExpansion(g, []float64{0.1, 0.1}, ta)
		require.Equal(t, 0, dest.Order())
		le.TranslateToLocal(dest)
		require.Equal(t, 5, dest.Order())
	})

	t.Run("Preconditions", func(t *testing.T) {

		ta := NewTable(2, 4)
		tb := NewTable(2, 4)

		le := NewLocalExpansion(g, []float64{0, 0}, ta)
		fe := NewFarFieldExpansion(g, []float64{1, 1}, tb)
		require.Panics(t, func() { le.TranslateFromFarField(fe) })

		other := NewLocalExpansion(g, []float64{1, 0}, tb)
		require.Panics(t, func() { le.TranslateToLocal(other) })

		require.Panics(t, func() { le.TranslateToLocal(le) })
	})
}

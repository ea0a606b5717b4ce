package series

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegion(t *testing.T) {

	re := Region{Min: []float64{-1, 0}, Max: []float64{1, 0.5}}

	t.Run("Width", func(t *testing.T) {
		require.Equal(t, 2.0, re.Width(0))
		require.Equal(t, 0.5, re.Width(1))
		require.Equal(t, 2.0, re.WidestWidth())
	})

	t.Run("MinDistSq", func(t *testing.T) {
		require.Equal(t, 0.0, re.MinDistSq([]float64{0, 0.25}))
		require.Equal(t, 0.0, re.MinDistSq([]float64{1, 0.5}))
		require.Equal(t, 1.0, re.MinDistSq([]float64{2, 0.25}))
		require.Equal(t, 0.25, re.MinDistSq([]float64{0, 1}))
		// Corner: both dimensions contribute.
		require.InDelta(t, 1.25, re.MinDistSq([]float64{2, 1}), 1e-15)
	})

	t.Run("Contains", func(t *testing.T) {
		require.True(t, re.Contains([]float64{0, 0.1}))
		require.False(t, re.Contains([]float64{0, -0.1}))
		require.False(t, re.Contains([]float64{1.5, 0.1}))
	})
}

func TestAccuracyStats(t *testing.T) {

	want := []float64{1, 2, 4}
	have := []float64{1, 2.5, 4}

	prec := GetAccuracyStats(want, have)
	require.Equal(t, 0.0, prec.MinErr)
	require.Equal(t, 0.5, prec.MaxErr)
	require.InDelta(t, 0.5/3, prec.AvgErr, 1e-15)
	require.InDelta(t, 2.0, prec.MinLog2Prec, 1e-12)
	require.NotEmpty(t, prec.String())

	require.Panics(t, func() { GetAccuracyStats(want, have[:2]) })
}

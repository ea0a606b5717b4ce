package series

import (
	"fmt"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

// AccuracyStats summarizes the pointwise accuracy of a batch of expansion
// evaluations against reference values: absolute-error statistics and the
// corresponding base-2 precision (-log2 of the relative error).
type AccuracyStats struct {
	MinErr, MaxErr, AvgErr, MedErr, StdErr float64

	MinLog2Prec, MaxLog2Prec, AvgLog2Prec float64
}

// GetAccuracyStats computes accuracy statistics between the reference values
// want and the approximated values have. The two slices must have the same
// non-zero length.
func GetAccuracyStats(want, have []float64) (prec AccuracyStats) {

	if len(want) != len(have) || len(want) == 0 {
		panic(fmt.Errorf("series: mismatched value slices of lengths %d and %d", len(want), len(have)))
	}

	errs := make([]float64, len(want))
	precs := make([]float64, len(want))
	for i := range want {
		errs[i] = math.Abs(want[i] - have[i])
		scale := math.Max(math.Abs(want[i]), math.SmallestNonzeroFloat64)
		precs[i] = -math.Log2(errs[i] / scale)
		if math.IsInf(precs[i], 1) {
			precs[i] = 1074 // exact match, cap at the full float64 range
		}
	}

	prec.MinErr, _ = stats.Min(errs)
	prec.MaxErr, _ = stats.Max(errs)
	prec.AvgErr, _ = stats.Mean(errs)
	prec.MedErr, _ = stats.Median(errs)
	prec.StdErr, _ = stats.StandardDeviation(errs)

	prec.MinLog2Prec, _ = stats.Min(precs)
	prec.MaxLog2Prec, _ = stats.Max(precs)
	prec.AvgLog2Prec, _ = stats.Mean(precs)

	return
}

func (prec AccuracyStats) String() string {
	return fmt.Sprintf(`
┌──────────┬───────────┐
│ ABS Err  │           │
├──────────┼───────────┤
│ MIN      │ %9.2e │
│ MAX      │ %9.2e │
│ AVG      │ %9.2e │
│ MED      │ %9.2e │
│ STD      │ %9.2e │
├──────────┼───────────┤
│Log2 Prec │           │
├──────────┼───────────┤
│ MIN      │ %9.2f │
│ MAX      │ %9.2f │
│ AVG      │ %9.2f │
└──────────┴───────────┘
`,
		prec.MinErr, prec.MaxErr, prec.AvgErr, prec.MedErr, prec.StdErr,
		prec.MinLog2Prec, prec.MaxLog2Prec, prec.AvgLog2Prec)
}

// VerifyTestValues fails the test if the average base-2 precision of have
// against want falls below log2MinPrec.
func VerifyTestValues(t *testing.T, want, have []float64, log2MinPrec float64, printStats bool) {

	precStats := GetAccuracyStats(want, have)

	if printStats {
		t.Log(precStats.String())
	}

	require.GreaterOrEqual(t, precStats.AvgLog2Prec, log2MinPrec)
}

package sampling

import (
	"encoding/binary"

	"gonum.org/v1/gonum/mat"
)

// Float64 returns a sample uniform in [min, max) drawn from prng.
func Float64(prng PRNG, min, max float64) float64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	f := float64(binary.BigEndian.Uint64(b)) / 1.8446744073709552e+19
	return min + f*(max-min)
}

// Points draws n points uniformly from the box [min, max]^dim and returns
// them as the rows of a dense matrix.
func Points(prng PRNG, n, dim int, min, max float64) *mat.Dense {
	data := make([]float64, n*dim)
	for i := range data {
		data[i] = Float64(prng, min, max)
	}
	return mat.NewDense(n, dim, data)
}

// Weights draws n scalar weights uniform in [min, max).
func Weights(prng PRNG, n int, min, max float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = Float64(prng, min, max)
	}
	return w
}

package ndarray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// arange returns a natural array holding 0, 1, 2, ... in row-major order.
func arange(t testing.TB, shape Shape, dtype DataType) *NDArray {
	t.Helper()
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = float64(i)
	}
	a, err := FromSlice(data, shape, dtype)
	require.NoError(t, err)
	return a
}

func mustArray(t testing.TB, obj any, dtype DataType) *NDArray {
	t.Helper()
	a, err := Array(obj, dtype)
	require.NoError(t, err)
	return a
}

func mustAt(t testing.TB, a *NDArray, indices ...int) float64 {
	t.Helper()
	v, err := a.At(indices...)
	require.NoError(t, err)
	return v
}

// flat lists a's elements in row-major order.
func flat(a *NDArray) []float64 {
	load := a.buffer.loader()
	var out []float64
	walk(a.shape, []*NDArray{a}, func(_ int, sh []int) {
		out = append(out, load(sh[0]))
	})
	return out
}

var allDtypes = []DataType{Int32, Float32, Float64}

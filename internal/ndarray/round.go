package ndarray

import "math"

// Round rounds every element to the given number of decimals, halves away from zero.
// Negative decimals round to tens, hundreds and so on.
func (a *NDArray) Round(decimals int) *NDArray {
	p := math.Pow(10, float64(decimals))
	result := a.like()
	switch a.dtype {
	case Int32:
		unary(result, a, rounder[int32](p))
	case Float32:
		unary(result, a, rounder[float32](p))
	default:
		unary(result, a, rounder[float64](p))
	}
	return result
}

func rounder[T number](p float64) func(x T) T {
	return func(x T) T {
		return T(math.Round(float64(x)*p) / p)
	}
}

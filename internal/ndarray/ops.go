package ndarray

import (
	"fmt"
	"math"
)

// Every arithmetic operation returns a fresh natural array of the receiver's shape and
// dtype. Operands are never modified. A natural receiver (with a natural array operand)
// runs a flat loop over the buffers; any other layout walks the multi-index space.

// like allocates a natural array with a's shape and dtype.
func (a *NDArray) like() *NDArray {
	r, err := Empty(a.shape, a.dtype)
	if err != nil {
		panic(err) // a's shape and dtype were validated on construction
	}
	return r
}

// binary applies op elementwise between a and other. An operand of another dtype is
// converted to a's dtype first.
func (a *NDArray) binary(op binaryOp, other *NDArray) (*NDArray, error) {
	if !a.shape.Equal(other.shape) {
		return nil, fmt.Errorf("%s: shapes %v and %v: %w", op, a.shape, other.shape, ErrShapeMismatch)
	}
	if other.dtype != a.dtype {
		conv, err := FromArray(other, a.dtype, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		defer conv.Release()
		other = conv
	}
	if op == opDiv && a.dtype == Int32 && anyZero(other) {
		return nil, fmt.Errorf("%s: int32 divisor holds zero: %w", op, ErrDivisionByZero)
	}

	result := a.like()
	switch a.dtype {
	case Int32:
		binaryArrays(result, a, other, typedOp[int32](op))
	case Float32:
		binaryArrays(result, a, other, typedOp[float32](op))
	default:
		binaryArrays(result, a, other, typedOp[float64](op))
	}
	return result, nil
}

// scalar applies op elementwise between a and s, in float64, storing in a's dtype.
func (a *NDArray) scalar(op binaryOp, s float64) *NDArray {
	fn := floatOp(op)
	result := a.like()
	switch a.dtype {
	case Int32:
		binaryScalar[int32](result, a, s, truncating(fn))
	case Float32:
		binaryScalar[float32](result, a, s, fn)
	default:
		binaryScalar[float64](result, a, s, fn)
	}
	return result
}

// truncating rounds fn's result toward zero so it converts cleanly to int32.
func truncating(fn func(x, y float64) float64) func(x, y float64) float64 {
	return func(x, y float64) float64 { return math.Trunc(fn(x, y)) }
}

// Add returns a + other elementwise.
func (a *NDArray) Add(other *NDArray) (*NDArray, error) {
	return a.binary(opAdd, other)
}

// Sub returns a - other elementwise.
func (a *NDArray) Sub(other *NDArray) (*NDArray, error) {
	return a.binary(opSub, other)
}

// Mul returns a * other elementwise.
func (a *NDArray) Mul(other *NDArray) (*NDArray, error) {
	return a.binary(opMul, other)
}

// Div returns a / other elementwise. Float division by zero follows IEEE-754;
// int32 division by zero fails with ErrDivisionByZero.
func (a *NDArray) Div(other *NDArray) (*NDArray, error) {
	return a.binary(opDiv, other)
}

// AddScalar returns a + s.
func (a *NDArray) AddScalar(s float64) *NDArray {
	return a.scalar(opAdd, s)
}

// SubScalar returns a - s.
func (a *NDArray) SubScalar(s float64) *NDArray {
	return a.scalar(opSub, s)
}

// MulScalar returns a * s.
func (a *NDArray) MulScalar(s float64) *NDArray {
	return a.scalar(opMul, s)
}

// DivScalar returns a / s.
func (a *NDArray) DivScalar(s float64) (*NDArray, error) {
	if s == 0 && a.dtype == Int32 {
		return nil, fmt.Errorf("div: int32 divisor is zero: %w", ErrDivisionByZero)
	}
	return a.scalar(opDiv, s), nil
}

// RAdd returns s + a.
func (a *NDArray) RAdd(s float64) *NDArray {
	return a.AddScalar(s)
}

// RSub returns s - a, computed as (-a) + s.
func (a *NDArray) RSub(s float64) *NDArray {
	neg := a.Neg()
	defer neg.Release()
	return neg.AddScalar(s)
}

// RMul returns s * a.
func (a *NDArray) RMul(s float64) *NDArray {
	return a.MulScalar(s)
}

// RDiv returns s / a, computed as (1 / a) * s. For int32 the reciprocal truncates first.
func (a *NDArray) RDiv(s float64) (*NDArray, error) {
	rec, err := a.Reciprocal()
	if err != nil {
		return nil, fmt.Errorf("rdiv: %w", err)
	}
	defer rec.Release()
	return rec.MulScalar(s), nil
}

// Neg returns -a.
func (a *NDArray) Neg() *NDArray {
	result := a.like()
	switch a.dtype {
	case Int32:
		unary(result, a, negate[int32])
	case Float32:
		unary(result, a, negate[float32])
	default:
		unary(result, a, negate[float64])
	}
	return result
}

// Reciprocal returns 1 / a. For int32 the result truncates toward zero.
func (a *NDArray) Reciprocal() (*NDArray, error) {
	if a.dtype == Int32 && anyZero(a) {
		return nil, fmt.Errorf("reciprocal: int32 array holds zero: %w", ErrDivisionByZero)
	}
	result := a.like()
	switch a.dtype {
	case Int32:
		unary(result, a, reciprocal[int32])
	case Float32:
		unary(result, a, reciprocal[float32])
	default:
		unary(result, a, reciprocal[float64])
	}
	return result, nil
}

// AllClose reports whether a and b have equal shapes and every pair of elements differs by
// at most tol.
func AllClose(a, b *NDArray, tol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	la, lb := a.buffer.loader(), b.buffer.loader()
	ok := true
	walk(a.shape, []*NDArray{a, b}, func(_ int, sh []int) {
		if ok && !(math.Abs(la(sh[0])-lb(sh[1])) <= tol) {
			ok = false
		}
	})
	return ok
}

// Equal reports whether a and b have equal shapes and equal elements.
func Equal(a, b *NDArray) bool {
	return AllClose(a, b, 0)
}

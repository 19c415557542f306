// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"math/rand/v2"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// NDArray is a shaped, typed view over a shared Buffer.
type NDArray = ndarray.NDArray

// Buffer is the flat, reference-counted storage shared by views.
type Buffer = ndarray.Buffer

// DataType identifies the element type.
type DataType = ndarray.DataType

// Data type constants.
const (
	Int32   DataType = ndarray.Int32
	Float32 DataType = ndarray.Float32
	Float64 DataType = ndarray.Float64
)

// MaxElements is the largest element count a shape may describe.
const MaxElements = ndarray.MaxElements

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = ndarray.Shape

// Key is one entry of a multi-dimensional index.
type Key = ndarray.Key

// Element is the result of Get: a scalar or a view.
type Element = ndarray.Element

// Errors returned by array operations.
var (
	ErrShapeMismatch   = ndarray.ErrShapeMismatch
	ErrIndexOutOfRange = ndarray.ErrIndexOutOfRange
	ErrSingularMatrix  = ndarray.ErrSingularMatrix
	ErrInvalidDtype    = ndarray.ErrInvalidDtype
	ErrNonSquareMatrix = ndarray.ErrNonSquareMatrix
	ErrInvalidShape    = ndarray.ErrInvalidShape
	ErrInvalidKey      = ndarray.ErrInvalidKey
	ErrInvalidAxis     = ndarray.ErrInvalidAxis
	ErrDivisionByZero  = ndarray.ErrDivisionByZero
)

// ParseDataType maps "int32", "float32" or "float64" to its DataType.
func ParseDataType(s string) (DataType, error) {
	return ndarray.ParseDataType(s)
}

// Key constructors

// Scalar selects a single position along a dimension.
func Scalar(i int) Key { return ndarray.Scalar(i) }

// Range selects [start, stop) with the given step.
func Range(start, stop, step int) Key { return ndarray.Range(start, stop, step) }

// RangeFrom selects from start to the end of the dimension.
func RangeFrom(start, step int) Key { return ndarray.RangeFrom(start, step) }

// All selects a whole dimension.
func All() Key { return ndarray.All() }

// Creation functions

// NewBuffer allocates zeroed storage for n elements of dtype.
func NewBuffer(dtype DataType, n int) (*Buffer, error) {
	return ndarray.NewBuffer(dtype, n)
}

// New binds an array to an existing buffer. Nil strides mean row-major.
//
// Example:
//
//	buf, _ := ndarray.NewBuffer(ndarray.Float32, 6)
//	a, _ := ndarray.New(ndarray.Shape{2, 3}, ndarray.Float32, buf, 0, nil)
func New(shape Shape, dtype DataType, buf *Buffer, offset int, strides []int) (*NDArray, error) {
	return ndarray.New(shape, dtype, buf, offset, strides)
}

// Empty allocates an array; its elements are zero.
func Empty(shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.Empty(shape, dtype)
}

// Zeros creates an array filled with zeros.
//
// Example:
//
//	x, _ := ndarray.Zeros(ndarray.Shape{2, 3}, ndarray.Float64)
func Zeros(shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.Zeros(shape, dtype)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.Ones(shape, dtype)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64, dtype DataType) (*NDArray, error) {
	return ndarray.Full(shape, value, dtype)
}

// Identity creates an n x n identity matrix.
func Identity(n int, dtype DataType) (*NDArray, error) {
	return ndarray.Identity(n, dtype)
}

// Array creates an array from nested slices of numbers.
//
// Example:
//
//	a, _ := ndarray.Array([][]int{{1, 2}, {3, 4}}, ndarray.Int32)
func Array(obj any, dtype DataType) (*NDArray, error) {
	return ndarray.Array(obj, dtype)
}

// FromSlice creates an array from flat row-major data.
func FromSlice(data []float64, shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.FromSlice(data, shape, dtype)
}

// FromJSON creates an array from a JSON document of nested number arrays.
func FromJSON(data []byte, dtype DataType) (*NDArray, error) {
	return ndarray.FromJSON(data, dtype)
}

// FromArray returns a view of src, or a converted copy when deep is set.
func FromArray(src *NDArray, dtype DataType, deep bool) (*NDArray, error) {
	return ndarray.FromArray(src, dtype, deep)
}

// Copy returns a fresh natural copy of a.
func Copy(a *NDArray) (*NDArray, error) {
	return ndarray.Copy(a)
}

// Rand creates a float array with values uniformly distributed in [0, 1).
func Rand(shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.Rand(shape, dtype)
}

// RandWith is Rand drawing from rng.
func RandWith(rng *rand.Rand, shape Shape, dtype DataType) (*NDArray, error) {
	return ndarray.RandWith(rng, shape, dtype)
}

// Assembly

// Concatenate joins arrays along axis.
func Concatenate(arrays []*NDArray, axis int) (*NDArray, error) {
	return ndarray.Concatenate(arrays, axis)
}

// HStack joins 2-D arrays column-wise.
func HStack(arrays ...*NDArray) (*NDArray, error) {
	return ndarray.HStack(arrays...)
}

// VStack joins 2-D arrays row-wise.
func VStack(arrays ...*NDArray) (*NDArray, error) {
	return ndarray.VStack(arrays...)
}

// Split divides a into n equal views along axis.
func Split(a *NDArray, n, axis int) ([]*NDArray, error) {
	return ndarray.Split(a, n, axis)
}

// HSplit splits a 2-D array into n column blocks.
func HSplit(a *NDArray, n int) ([]*NDArray, error) {
	return ndarray.HSplit(a, n)
}

// VSplit splits a 2-D array into n row blocks.
func VSplit(a *NDArray, n int) ([]*NDArray, error) {
	return ndarray.VSplit(a, n)
}

// Comparison

// AllClose reports whether a and b have equal shapes and elements within tol.
func AllClose(a, b *NDArray, tol float64) bool {
	return ndarray.AllClose(a, b, tol)
}

// Equal reports whether a and b have equal shapes and elements.
func Equal(a, b *NDArray) bool {
	return ndarray.Equal(a, b)
}

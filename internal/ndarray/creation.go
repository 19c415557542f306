package ndarray

import (
	"fmt"
	"math/rand/v2"
	"reflect"

	"github.com/goccy/go-json"
)

// Empty allocates a natural array of shape. Go zeroes fresh memory, so Empty and Zeros
// only differ in intent.
func Empty(shape Shape, dtype DataType) (*NDArray, error) {
	if err := checkDtype(dtype); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return New(shape, dtype, newBuffer(dtype, shape.NumElements()), 0, nil)
}

// Zeros creates an array filled with zeros.
//
// Example:
//
//	z, _ := ndarray.Zeros(ndarray.Shape{3, 4}, ndarray.Float64)
func Zeros(shape Shape, dtype DataType) (*NDArray, error) {
	return Empty(shape, dtype)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType) (*NDArray, error) {
	return Full(shape, 1, dtype)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64, dtype DataType) (*NDArray, error) {
	a, err := Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	store := a.buffer.storer()
	for i := 0; i < a.length; i++ {
		store(i, value)
	}
	return a, nil
}

// Identity creates an n x n identity matrix.
func Identity(n int, dtype DataType) (*NDArray, error) {
	a, err := Zeros(Shape{n, n}, dtype)
	if err != nil {
		return nil, err
	}
	store := a.buffer.storer()
	for i := 0; i < n; i++ {
		store(i*n+i, 1)
	}
	return a, nil
}

// FromSlice creates a natural array from flat row-major data.
func FromSlice(data []float64, shape Shape, dtype DataType) (*NDArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d: %w", shape, shape.NumElements(), len(data), ErrShapeMismatch)
	}
	a, err := Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	store := a.buffer.storer()
	for i, v := range data {
		store(i, v)
	}
	return a, nil
}

// Array creates a natural array from nested Go slices of numbers, e.g. [][]float64 or
// []any holding []any. The shape is inferred by descending through the first elements.
// An *NDArray argument is copied.
//
// Example:
//
//	a, _ := ndarray.Array([][]int{{1, 2}, {3, 4}}, ndarray.Float64) // shape (2, 2)
func Array(obj any, dtype DataType) (*NDArray, error) {
	if src, ok := obj.(*NDArray); ok {
		return FromArray(src, dtype, true)
	}
	if err := checkDtype(dtype); err != nil {
		return nil, err
	}

	root := reflect.ValueOf(obj)
	var shape Shape
	for v := unwrap(root); isSequence(v); v = unwrap(v.Index(0)) {
		if v.Len() == 0 {
			return nil, fmt.Errorf("array: empty sequence at depth %d: %w", len(shape), ErrInvalidShape)
		}
		shape = append(shape, v.Len())
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("array: %T is not a sequence: %w", obj, ErrInvalidShape)
	}

	flat := make([]float64, 0, shape.NumElements())
	if err := flatten(root, shape, 0, &flat); err != nil {
		return nil, fmt.Errorf("array: %w", err)
	}
	return FromSlice(flat, shape, dtype)
}

// FromJSON creates an array from a JSON document of nested number arrays.
func FromJSON(data []byte, dtype DataType) (*NDArray, error) {
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("array: decode json: %w", err)
	}
	return Array(obj, dtype)
}

// FromArray returns a view sharing src's buffer when deep is false (dtype is then ignored),
// otherwise a fresh natural array holding src's elements converted to dtype.
func FromArray(src *NDArray, dtype DataType, deep bool) (*NDArray, error) {
	if !deep {
		return src.view(src.shape.Clone(), src.offset, append([]int(nil), src.strides...)), nil
	}

	result, err := Empty(src.shape, dtype)
	if err != nil {
		return nil, err
	}
	if src.natural && src.dtype == dtype {
		copy(result.buffer.data, src.buffer.data)
		return result, nil
	}
	copyInto(result, src)
	return result, nil
}

// Copy returns a fresh natural copy of a.
func Copy(a *NDArray) (*NDArray, error) {
	return FromArray(a, a.dtype, true)
}

// Rand creates a float array with values uniformly distributed in [0, 1).
func Rand(shape Shape, dtype DataType) (*NDArray, error) {
	return RandWith(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), shape, dtype) //nolint:gosec // G404: numeric sampling
}

// RandWith is Rand drawing from rng, for reproducible sequences.
func RandWith(rng *rand.Rand, shape Shape, dtype DataType) (*NDArray, error) {
	if !dtype.IsFloat() {
		return nil, fmt.Errorf("rand: %s is not a float type: %w", dtype, ErrInvalidDtype)
	}
	a, err := Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	store := a.buffer.storer()
	for i := 0; i < a.length; i++ {
		store(i, rng.Float64())
	}
	return a, nil
}

func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func flatten(v reflect.Value, shape Shape, dim int, out *[]float64) error {
	v = unwrap(v)
	if dim == len(shape) {
		f, ok := numeric(v)
		if !ok {
			return fmt.Errorf("leaf of kind %s is not a number: %w", v.Kind(), ErrInvalidShape)
		}
		*out = append(*out, f)
		return nil
	}
	if !isSequence(v) || v.Len() != shape[dim] {
		return fmt.Errorf("ragged sequence at depth %d (want length %d): %w", dim, shape[dim], ErrInvalidShape)
	}
	for i := 0; i < v.Len(); i++ {
		if err := flatten(v.Index(i), shape, dim+1, out); err != nil {
			return err
		}
	}
	return nil
}

func numeric(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

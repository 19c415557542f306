package ndarray

import (
	"fmt"
	"math"
)

// MaxElements bounds the element count of a shape so that its byte size fits in an int
// for every dtype.
const MaxElements = math.MaxInt / 8

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape has at least one dimension, all dimensions are > 0, and
// the element count does not exceed MaxElements.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty shape: %w", ErrInvalidShape)
	}
	n := 1
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d is %d (must be > 0): %w", i, dim, ErrInvalidShape)
		}
		if dim > MaxElements/n {
			return fmt.Errorf("shape %v exceeds %d elements: %w", []int(s), MaxElements, ErrInvalidShape)
		}
		n *= dim
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major byte strides for the shape and element size.
// The last dimension steps by itemsize; every other by the product of the dimensions after it.
func (s Shape) ComputeStrides(itemsize int) []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = itemsize
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

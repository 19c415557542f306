package ndarray

import "fmt"

// normalizeAxis maps a negative axis onto [0, ndim).
func normalizeAxis(axis, ndim int) (int, error) {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return 0, fmt.Errorf("axis %d out of range for %dD array: %w", axis, ndim, ErrInvalidAxis)
	}
	return axis, nil
}

// Concatenate joins arrays along axis into a fresh natural array of the first array's dtype.
//
// All arrays must have the same shape except along axis. Negative axis counts from the end.
//
// Example:
//
//	a, _ := ndarray.Zeros(ndarray.Shape{2, 3}, ndarray.Float64)
//	b, _ := ndarray.Ones(ndarray.Shape{2, 5}, ndarray.Float64)
//	c, _ := ndarray.Concatenate([]*ndarray.NDArray{a, b}, 1) // shape (2, 8)
func Concatenate(arrays []*NDArray, axis int) (*NDArray, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("concatenate: no arrays: %w", ErrShapeMismatch)
	}
	first := arrays[0]
	ndim := len(first.shape)
	axis, err := normalizeAxis(axis, ndim)
	if err != nil {
		return nil, fmt.Errorf("concatenate: %w", err)
	}

	total := 0
	for i, a := range arrays {
		if len(a.shape) != ndim {
			return nil, fmt.Errorf("concatenate: array %d has %d dimensions, expected %d: %w", i, len(a.shape), ndim, ErrShapeMismatch)
		}
		for d := range a.shape {
			if d == axis {
				total += a.shape[d]
			} else if a.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("concatenate: array %d dimension %d is %d, expected %d: %w", i, d, a.shape[d], first.shape[d], ErrShapeMismatch)
			}
		}
	}

	shape := first.shape.Clone()
	shape[axis] = total
	result, err := Empty(shape, first.dtype)
	if err != nil {
		return nil, fmt.Errorf("concatenate: %w", err)
	}

	start := 0
	for _, a := range arrays {
		target := result.view(a.shape.Clone(), start*result.strides[axis], result.strides)
		copyInto(target, a)
		target.Release()
		start += a.shape[axis]
	}
	return result, nil
}

// HStack joins 2-D arrays column-wise.
func HStack(arrays ...*NDArray) (*NDArray, error) {
	if err := require2D("hstack", arrays); err != nil {
		return nil, err
	}
	return Concatenate(arrays, 1)
}

// VStack joins 2-D arrays row-wise.
func VStack(arrays ...*NDArray) (*NDArray, error) {
	if err := require2D("vstack", arrays); err != nil {
		return nil, err
	}
	return Concatenate(arrays, 0)
}

func require2D(op string, arrays []*NDArray) error {
	for i, a := range arrays {
		if len(a.shape) != 2 {
			return fmt.Errorf("%s: array %d is %dD, expected 2D: %w", op, i, len(a.shape), ErrShapeMismatch)
		}
	}
	return nil
}

// Split divides a into n equal views along axis. The views share a's buffer.
// The size of axis must be divisible by n.
//
// Example:
//
//	x, _ := ndarray.Zeros(ndarray.Shape{2, 6}, ndarray.Float32)
//	parts, _ := ndarray.Split(x, 3, 1) // 3 views of shape (2, 2)
func Split(a *NDArray, n, axis int) ([]*NDArray, error) {
	if n <= 0 {
		return nil, fmt.Errorf("split: n must be positive, got %d: %w", n, ErrInvalidShape)
	}
	axis, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	size := a.shape[axis]
	if size%n != 0 {
		return nil, fmt.Errorf("split: dimension %d size %d not divisible by %d: %w", axis, size, n, ErrShapeMismatch)
	}

	part := size / n
	shape := a.shape.Clone()
	shape[axis] = part

	views := make([]*NDArray, n)
	for i := range views {
		views[i] = a.view(shape.Clone(), a.offset+i*part*a.strides[axis], append([]int(nil), a.strides...))
	}
	return views, nil
}

// HSplit splits a 2-D array into n column blocks.
func HSplit(a *NDArray, n int) ([]*NDArray, error) {
	if err := require2D("hsplit", []*NDArray{a}); err != nil {
		return nil, err
	}
	return Split(a, n, 1)
}

// VSplit splits a 2-D array into n row blocks.
func VSplit(a *NDArray, n int) ([]*NDArray, error) {
	if err := require2D("vsplit", []*NDArray{a}); err != nil {
		return nil, err
	}
	return Split(a, n, 0)
}

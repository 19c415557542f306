package ndarray

import (
	"fmt"
	"strconv"
	"strings"
)

// NDArray is a shaped, typed view over a shared Buffer.
//
// The array owns only its geometry: shape, byte offset and byte strides. Any number of
// arrays may be bound to the same buffer, and a write through one of them is visible
// through every other array covering the same elements.
//
// Example:
//
//	a, _ := ndarray.Array([][]float64{{1, 2}, {3, 4}}, ndarray.Float64)
//	row, _ := a.Slice(ndarray.Scalar(1), ndarray.All()) // view of [3 4]
//	_ = row.Set(9, ndarray.Scalar(0))                   // a is now [[1 2] [9 4]]
type NDArray struct {
	buffer   *Buffer  // Shared reference-counted storage
	shape    Shape    // Array dimensions
	dtype    DataType // Element type, equal to buffer.dtype
	offset   int      // Byte offset of element (0,...,0)
	strides  []int    // Byte step per dimension
	skips    []int    // Element step per dimension (strides / itemsize)
	natural  bool     // Row-major, zero offset, whole buffer
	length   int      // Product of shape
	nbytes   int      // length * itemsize
	released bool
}

// New binds an array to an existing buffer.
// If strides is nil, row-major strides are derived from shape and the dtype's itemsize.
func New(shape Shape, dtype DataType, buf *Buffer, offset int, strides []int) (*NDArray, error) {
	if err := checkDtype(dtype); err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, fmt.Errorf("nil buffer: %w", ErrInvalidShape)
	}
	if buf.dtype != dtype {
		return nil, fmt.Errorf("array dtype %s over %s buffer: %w", dtype, buf.dtype, ErrInvalidDtype)
	}
	if offset < 0 || offset%dtype.Size() != 0 {
		return nil, fmt.Errorf("offset %d is not a multiple of itemsize %d: %w", offset, dtype.Size(), ErrInvalidShape)
	}

	a := &NDArray{
		buffer: buf,
		dtype:  dtype,
		offset: offset,
	}
	if err := a.Reshape(shape, strides); err != nil {
		return nil, err
	}
	buf.addRef()
	return a, nil
}

// Reshape replaces the array's shape and strides in place without touching the buffer.
// If strides is nil, row-major strides are derived from shape. The caller guarantees that
// every element addressed by the new geometry lies inside the buffer.
func (a *NDArray) Reshape(shape Shape, strides []int) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	itemsize := a.dtype.Size()
	if strides == nil {
		strides = shape.ComputeStrides(itemsize)
	} else {
		if len(strides) != len(shape) {
			return fmt.Errorf("reshape: %d strides for %d dimensions: %w", len(strides), len(shape), ErrInvalidShape)
		}
		for i, s := range strides {
			if s%itemsize != 0 {
				return fmt.Errorf("reshape: stride %d of dimension %d is not a multiple of itemsize %d: %w",
					s, i, itemsize, ErrInvalidShape)
			}
		}
		strides = append([]int(nil), strides...)
	}

	a.shape = shape.Clone()
	a.strides = strides
	a.computeLayout()
	return nil
}

// view binds a new array to a's buffer with the given geometry. Geometry must be valid.
func (a *NDArray) view(shape Shape, offset int, strides []int) *NDArray {
	v := &NDArray{
		buffer:  a.buffer,
		dtype:   a.dtype,
		offset:  offset,
		shape:   shape,
		strides: strides,
	}
	v.computeLayout()
	a.buffer.addRef()
	return v
}

// Shape returns the array's shape.
func (a *NDArray) Shape() Shape {
	return a.shape
}

// DType returns the element type.
func (a *NDArray) DType() DataType {
	return a.dtype
}

// ItemSize returns the byte size of one element.
func (a *NDArray) ItemSize() int {
	return a.dtype.Size()
}

// NDim returns the number of dimensions.
func (a *NDArray) NDim() int {
	return len(a.shape)
}

// Len returns the number of elements.
func (a *NDArray) Len() int {
	return a.length
}

// NBytes returns the number of bytes addressed by the array's elements.
func (a *NDArray) NBytes() int {
	return a.nbytes
}

// Offset returns the byte offset of the first element within the buffer.
func (a *NDArray) Offset() int {
	return a.offset
}

// Strides returns the per-dimension byte steps.
func (a *NDArray) Strides() []int {
	return a.strides
}

// Skips returns the per-dimension element steps.
func (a *NDArray) Skips() []int {
	return a.skips
}

// Natural reports whether the array is row-major with zero offset and covers its whole buffer.
func (a *NDArray) Natural() bool {
	return a.natural
}

// Buffer returns the shared storage.
func (a *NDArray) Buffer() *Buffer {
	return a.buffer
}

// Release drops this array's reference to the buffer. The array must not be used afterwards.
// Other views keep the storage alive.
func (a *NDArray) Release() {
	if a.released {
		return
	}
	a.released = true
	a.buffer.release()
}

// AsType returns a new array over a freshly allocated buffer holding the whole source buffer
// converted to dtype. Shape, element offset and skips are preserved.
func (a *NDArray) AsType(dtype DataType) (*NDArray, error) {
	if err := checkDtype(dtype); err != nil {
		return nil, fmt.Errorf("astype: %w", err)
	}

	buf := newBuffer(dtype, a.buffer.length)
	load, store := a.buffer.loader(), buf.storer()
	for i := 0; i < buf.length; i++ {
		store(i, load(i))
	}

	itemsize := dtype.Size()
	strides := make([]int, len(a.skips))
	for i, skip := range a.skips {
		strides[i] = skip * itemsize
	}
	return New(a.shape, dtype, buf, a.shift()*itemsize, strides)
}

// Transpose returns a view with permuted dimensions.
//
// If axes is empty, all dimensions are reversed. Otherwise axes must be a permutation of
// [0, ndim).
//
// Example:
//
//	t, _ := a.Transpose()        // (2, 3) -> (3, 2)
//	u, _ := b.Transpose(2, 0, 1) // (2, 3, 4) -> (4, 2, 3)
func (a *NDArray) Transpose(axes ...int) (*NDArray, error) {
	ndim := len(a.shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("transpose: %d axes for %d dimensions: %w", len(axes), ndim, ErrInvalidAxis)
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("transpose: axis %d for %dD array: %w", ax, ndim, ErrInvalidAxis)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: duplicate axis %d: %w", ax, ErrInvalidAxis)
		}
		seen[ax] = true
	}

	shape := make(Shape, ndim)
	strides := make([]int, ndim)
	for i, ax := range axes {
		shape[i] = a.shape[ax]
		strides[i] = a.strides[ax]
	}
	return a.view(shape, a.offset, strides), nil
}

// T is a shortcut for reversing all dimensions.
func (a *NDArray) T() *NDArray {
	t, _ := a.Transpose() // reversing never fails
	return t
}

// ToList returns the elements as nested []any slices of float64.
func (a *NDArray) ToList() any {
	load := a.buffer.loader()
	var rec func(dim, shift int) []any
	rec = func(dim, shift int) []any {
		n, skip := a.shape[dim], a.skips[dim]
		out := make([]any, n)
		for i := 0; i < n; i++ {
			if dim == len(a.shape)-1 {
				out[i] = load(shift + i*skip)
			} else {
				out[i] = rec(dim+1, shift+i*skip)
			}
		}
		return out
	}
	return rec(0, a.shift())
}

// String renders the elements row by row, e.g. "[[1 2]\n [3 4]]".
func (a *NDArray) String() string {
	load := a.buffer.loader()
	var sb strings.Builder
	var rec func(dim, shift int)
	rec = func(dim, shift int) {
		n, skip := a.shape[dim], a.skips[dim]
		sb.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				if dim == len(a.shape)-1 {
					sb.WriteByte(' ')
				} else {
					sb.WriteString(strings.Repeat("\n", len(a.shape)-1-dim))
					sb.WriteString(strings.Repeat(" ", dim+1))
				}
			}
			if dim == len(a.shape)-1 {
				sb.WriteString(strconv.FormatFloat(load(shift+i*skip), 'g', -1, 64))
			} else {
				rec(dim+1, shift+i*skip)
			}
		}
		sb.WriteByte(']')
	}
	rec(0, a.shift())
	return sb.String()
}

// GoString returns a compact description of the array's geometry.
func (a *NDArray) GoString() string {
	return fmt.Sprintf("NDArray[%s]%v offset=%d strides=%v natural=%t", a.dtype, []int(a.shape), a.offset, a.strides, a.natural)
}

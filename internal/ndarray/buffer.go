package ndarray

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Buffer is a flat, fixed-length, typed allocation shared by every array view bound to it.
// It is reference counted: each NDArray bound to the buffer holds one reference and the
// storage is dropped when the last of them is released.
type Buffer struct {
	data     []byte
	dtype    DataType
	length   int
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// NewBuffer allocates zeroed storage for n elements of dtype.
func NewBuffer(dtype DataType, n int) (*Buffer, error) {
	if err := checkDtype(dtype); err != nil {
		return nil, err
	}
	if n <= 0 || n > MaxElements {
		return nil, fmt.Errorf("buffer length %d: %w", n, ErrInvalidShape)
	}
	return newBuffer(dtype, n), nil
}

// NewBufferFromBytes copies raw little-endian element bytes into a fresh buffer.
func NewBufferFromBytes(dtype DataType, raw []byte) (*Buffer, error) {
	if err := checkDtype(dtype); err != nil {
		return nil, err
	}
	if len(raw) == 0 || len(raw)%dtype.Size() != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of %s elements: %w", len(raw), dtype, ErrInvalidShape)
	}
	buf := newBuffer(dtype, len(raw)/dtype.Size())
	copy(buf.data, raw)
	return buf, nil
}

func newBuffer(dtype DataType, n int) *Buffer {
	size := n * dtype.Size()
	// Back the bytes with uint64 words so every element type is naturally aligned.
	words := make([]uint64, (size+7)/8)
	//nolint:gosec // unsafe.Slice for zero-copy typed access, size bounded by the word slice
	data := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	return &Buffer{
		data:   data,
		dtype:  dtype,
		length: n,
	}
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	return b.length
}

// DType returns the element type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Bytes returns the raw storage.
// WARNING: Direct access to underlying memory shared by every view.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Refs returns the number of arrays currently bound to the buffer.
func (b *Buffer) Refs() int {
	return int(b.refCount.Load())
}

// Released reports whether the storage has been dropped.
func (b *Buffer) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data == nil
}

func (b *Buffer) addRef() {
	b.refCount.Add(1)
}

func (b *Buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

// AsInt32 interprets the storage as []int32.
// Panics if the buffer's dtype is not Int32.
func (b *Buffer) AsInt32() []int32 {
	if b.dtype != Int32 {
		panic(fmt.Sprintf("buffer dtype is %s, not int32", b.dtype))
	}
	return typed[int32](b)
}

// AsFloat32 interprets the storage as []float32.
// Panics if the buffer's dtype is not Float32.
func (b *Buffer) AsFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("buffer dtype is %s, not float32", b.dtype))
	}
	return typed[float32](b)
}

// AsFloat64 interprets the storage as []float64.
// Panics if the buffer's dtype is not Float64.
func (b *Buffer) AsFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", b.dtype))
	}
	return typed[float64](b)
}

// typed reinterprets the storage as []T. T must match the buffer dtype.
func typed[T number](b *Buffer) []T {
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounded by the element count
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), b.length)
}

// loader returns an element reader converting to float64, which is exact for every dtype.
func (b *Buffer) loader() func(i int) float64 {
	switch b.dtype {
	case Int32:
		s := typed[int32](b)
		return func(i int) float64 { return float64(s[i]) }
	case Float32:
		s := typed[float32](b)
		return func(i int) float64 { return float64(s[i]) }
	default:
		s := typed[float64](b)
		return func(i int) float64 { return s[i] }
	}
}

// storer returns an element writer converting from float64. Integers truncate toward zero.
func (b *Buffer) storer() func(i int, v float64) {
	switch b.dtype {
	case Int32:
		s := typed[int32](b)
		return func(i int, v float64) { s[i] = int32(v) }
	case Float32:
		s := typed[float32](b)
		return func(i int, v float64) { s[i] = float32(v) }
	default:
		s := typed[float64](b)
		return func(i int, v float64) { s[i] = v }
	}
}

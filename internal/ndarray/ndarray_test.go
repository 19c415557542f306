package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf, err := NewBuffer(Float64, 6)
	require.NoError(t, err)

	a, err := New(Shape{2, 3}, Float64, buf, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, []int{24, 8}, a.Strides())
	assert.Equal(t, []int{3, 1}, a.Skips())
	assert.Equal(t, 6, a.Len())
	assert.Equal(t, 48, a.NBytes())
	assert.Equal(t, 2, a.NDim())
	assert.Equal(t, 8, a.ItemSize())
	assert.True(t, a.Natural())
	assert.Equal(t, 1, buf.Refs())
}

func TestNew_Errors(t *testing.T) {
	buf, err := NewBuffer(Float32, 6)
	require.NoError(t, err)

	tests := []struct {
		name    string
		shape   Shape
		dtype   DataType
		buf     *Buffer
		offset  int
		strides []int
		want    error
	}{
		{"nil buffer", Shape{6}, Float32, nil, 0, nil, ErrInvalidShape},
		{"dtype differs from buffer", Shape{6}, Float64, buf, 0, nil, ErrInvalidDtype},
		{"unknown dtype", Shape{6}, DataType(5), buf, 0, nil, ErrInvalidDtype},
		{"misaligned offset", Shape{2}, Float32, buf, 2, nil, ErrInvalidShape},
		{"negative offset", Shape{2}, Float32, buf, -4, nil, ErrInvalidShape},
		{"empty shape", Shape{}, Float32, buf, 0, nil, ErrInvalidShape},
		{"zero dimension", Shape{0, 2}, Float32, buf, 0, nil, ErrInvalidShape},
		{"stride rank", Shape{2, 3}, Float32, buf, 0, []int{4}, ErrInvalidShape},
		{"misaligned stride", Shape{2, 3}, Float32, buf, 0, []int{12, 2}, ErrInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shape, tt.dtype, tt.buf, tt.offset, tt.strides)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, buf.Refs(), "failed binds take no reference")
}

func TestNatural(t *testing.T) {
	buf, err := NewBuffer(Float64, 6)
	require.NoError(t, err)

	tests := []struct {
		name    string
		shape   Shape
		offset  int
		strides []int
		want    bool
	}{
		{"row-major whole buffer", Shape{2, 3}, 0, nil, true},
		{"flat", Shape{6}, 0, nil, true},
		{"nonzero offset", Shape{5}, 8, nil, false},
		{"partial buffer", Shape{2, 2}, 0, nil, false},
		{"column-major", Shape{2, 3}, 0, []int{8, 16}, false},
		{"size-1 dimension with odd stride", Shape{1, 6}, 0, []int{800, 8}, true},
		{"increasing skips", Shape{3, 2}, 0, []int{8, 24}, false},
		{"step 2", Shape{3}, 0, []int{16}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.shape, Float64, buf, tt.offset, tt.strides)
			require.NoError(t, err)
			defer a.Release()
			assert.Equal(t, tt.want, a.Natural())
		})
	}
}

func TestReshape(t *testing.T) {
	a := arange(t, Shape{2, 3}, Float64)

	require.NoError(t, a.Reshape(Shape{3, 2}, nil))
	assert.Equal(t, Shape{3, 2}, a.Shape())
	assert.Equal(t, []int{16, 8}, a.Strides())
	assert.True(t, a.Natural())
	assert.Equal(t, 5.0, mustAt(t, a, 2, 1))

	require.NoError(t, a.Reshape(Shape{2, 3}, []int{8, 16}))
	assert.False(t, a.Natural())
	assert.Equal(t, []float64{0, 2, 4, 1, 3, 5}, flat(a))

	require.ErrorIs(t, a.Reshape(Shape{6}, []int{8, 8}), ErrInvalidShape)
	require.ErrorIs(t, a.Reshape(Shape{-6}, nil), ErrInvalidShape)
}

func TestReshape_ClonesInputs(t *testing.T) {
	a := arange(t, Shape{6}, Float32)
	shape := Shape{2, 3}
	strides := []int{12, 4}
	require.NoError(t, a.Reshape(shape, strides))

	shape[0], strides[0] = 99, 99
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, []int{12, 4}, a.Strides())
}

func TestTranspose(t *testing.T) {
	a := arange(t, Shape{2, 3}, Float64)
	at := a.T()

	assert.Equal(t, Shape{3, 2}, at.Shape())
	assert.Equal(t, []int{8, 24}, at.Strides())
	assert.False(t, at.Natural())
	assert.Same(t, a.Buffer(), at.Buffer())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, mustAt(t, a, i, j), mustAt(t, at, j, i))
		}
	}

	back := at.T()
	assert.True(t, back.Natural())
	assert.True(t, Equal(back, a))
}

func TestTranspose_Axes(t *testing.T) {
	a := arange(t, Shape{2, 3, 4}, Int32)

	p, err := a.Transpose(2, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 2, 3}, p.Shape())
	assert.Equal(t, mustAt(t, a, 1, 2, 3), mustAt(t, p, 3, 1, 2))

	// Inverse permutation restores the original.
	q, err := p.Transpose(1, 2, 0)
	require.NoError(t, err)
	assert.True(t, q.Natural())
	assert.True(t, Equal(q, a))

	rev, err := a.Transpose()
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 3, 2}, rev.Shape())

	for _, axes := range [][]int{{0, 0, 1}, {0, 1, 3}, {0, 1}, {-1, 0, 1}} {
		_, err := a.Transpose(axes...)
		require.ErrorIs(t, err, ErrInvalidAxis, "%v", axes)
	}
}

func TestTranspose_KeepsOffset(t *testing.T) {
	a := arange(t, Shape{3, 4}, Float64)
	s, err := a.Slice(Range(1, 3, 1), Range(1, 4, 1))
	require.NoError(t, err)
	require.Equal(t, 5*8, s.Offset())

	st := s.T()
	assert.Equal(t, s.Offset(), st.Offset())
	assert.Equal(t, mustAt(t, s, 1, 2), mustAt(t, st, 2, 1))
	assert.Equal(t, 11.0, mustAt(t, st, 2, 1))
}

func TestAsType(t *testing.T) {
	a := mustArray(t, [][]float64{{1.5, -2.5}, {3.9, 4}}, Float64)

	i, err := a.AsType(Int32)
	require.NoError(t, err)
	assert.Equal(t, Int32, i.DType())
	assert.Equal(t, []int32{1, -2, 3, 4}, i.Buffer().AsInt32())
	assert.NotSame(t, a.Buffer(), i.Buffer())

	_, err = a.AsType(DataType(8))
	require.ErrorIs(t, err, ErrInvalidDtype)
}

func TestAsType_PreservesGeometry(t *testing.T) {
	a := arange(t, Shape{3, 4}, Int32)
	v, err := a.Slice(Range(1, 3, 1), Range(0, 4, 2))
	require.NoError(t, err)

	f, err := v.AsType(Float64)
	require.NoError(t, err)
	assert.Equal(t, 12, f.Buffer().Len(), "whole source buffer is converted")
	assert.Equal(t, v.Skips(), f.Skips())
	assert.Equal(t, 4*8, f.Offset())
	assert.Equal(t, []float64{4, 6, 8, 10}, flat(f))
}

func TestToListAndString(t *testing.T) {
	a := mustArray(t, [][]int{{1, 2, 3}, {4, 5, 6}}, Int32)

	assert.Equal(t, []any{[]any{1.0, 2.0, 3.0}, []any{4.0, 5.0, 6.0}}, a.ToList())
	assert.Equal(t, "[[1 2 3]\n [4 5 6]]", a.String())
	assert.Equal(t, "[[1 4]\n [2 5]\n [3 6]]", a.T().String())

	b := arange(t, Shape{2, 2, 2}, Float64)
	assert.Equal(t, "[[[0 1]\n  [2 3]]\n\n [[4 5]\n  [6 7]]]", b.String())

	c := mustArray(t, []float64{0.5, -1.25}, Float32)
	assert.Equal(t, "[0.5 -1.25]", c.String())
	assert.Contains(t, c.GoString(), "float32")
}

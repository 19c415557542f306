package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarIdentities(t *testing.T) {
	for _, dt := range allDtypes {
		t.Run(dt.String(), func(t *testing.T) {
			a := arange(t, Shape{3, 4}, dt)
			want := flat(a)

			assert.Equal(t, want, flat(a.AddScalar(0)))
			assert.Equal(t, want, flat(a.SubScalar(0)))
			assert.Equal(t, want, flat(a.MulScalar(1)))
			d, err := a.DivScalar(1)
			require.NoError(t, err)
			assert.Equal(t, want, flat(d))
			assert.Equal(t, want, flat(a.Neg().Neg()))

			// Scalar ops keep the receiver's dtype.
			assert.Equal(t, dt, a.MulScalar(2.5).DType())
		})
	}
}

func TestArrayOps(t *testing.T) {
	a := mustArray(t, [][]float64{{1, 2}, {3, 4}}, Float64)
	b := mustArray(t, [][]float64{{10, 20}, {30, 40}}, Float64)

	tests := []struct {
		name string
		op   func(x, y *NDArray) (*NDArray, error)
		want []float64
	}{
		{"add", (*NDArray).Add, []float64{11, 22, 33, 44}},
		{"sub", (*NDArray).Sub, []float64{-9, -18, -27, -36}},
		{"mul", (*NDArray).Mul, []float64{10, 40, 90, 160}},
		{"div", (*NDArray).Div, []float64{0.1, 0.1, 0.1, 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.op(a, b)
			require.NoError(t, err)
			assert.True(t, r.Natural())
			assert.InDeltaSlice(t, tt.want, flat(r), 1e-12)
		})
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, flat(a), "operands are not modified")
	assert.Equal(t, []float64{10, 20, 30, 40}, flat(b))
}

func TestScalarOps(t *testing.T) {
	a := mustArray(t, []float64{2, 4, 8}, Float32)

	assert.Equal(t, []float64{5, 7, 11}, flat(a.AddScalar(3)))
	assert.Equal(t, []float64{1, 3, 7}, flat(a.SubScalar(1)))
	assert.Equal(t, []float64{1, 2, 4}, flat(a.MulScalar(0.5)))
	d, err := a.DivScalar(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 2}, flat(d))

	assert.Equal(t, []float64{5, 7, 11}, flat(a.RAdd(3)))
	assert.Equal(t, []float64{8, 6, 2}, flat(a.RSub(10)))
	assert.Equal(t, []float64{6, 12, 24}, flat(a.RMul(3)))
	rd, err := a.RDiv(8)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2, 1}, flat(rd))
}

// A natural operand runs the flat loop and a transposed copy runs the walk; both must agree.
func TestFastAndStridedPathsAgree(t *testing.T) {
	for _, dt := range allDtypes {
		t.Run(dt.String(), func(t *testing.T) {
			base := arange(t, Shape{4, 5}, dt)
			other := base.AddScalar(1)

			// Natural copies of the transposes.
			bt, err := Copy(base.T())
			require.NoError(t, err)
			ot, err := Copy(other.T())
			require.NoError(t, err)

			for _, op := range []binaryOp{opAdd, opSub, opMul, opDiv} {
				strided, err := base.T().binary(op, other.T())
				require.NoError(t, err)
				fast, err := bt.binary(op, ot)
				require.NoError(t, err)
				require.True(t, bt.Natural())
				assert.Equal(t, flat(fast), flat(strided), op.String())
			}

			assert.Equal(t, flat(bt.MulScalar(3)), flat(base.T().MulScalar(3)))
			assert.Equal(t, flat(bt.Neg()), flat(base.T().Neg()))
			assert.Equal(t, flat(bt.Round(0)), flat(base.T().Round(0)))
		})
	}
}

func TestOps_MixedLayouts(t *testing.T) {
	a := arange(t, Shape{3, 3}, Float64)
	v, err := a.Slice(Range(0, 3, 2), Range(0, 3, 2))
	require.NoError(t, err)
	n := mustArray(t, [][]float64{{1, 1}, {1, 1}}, Float64)

	r, err := v.Add(n)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 7, 9}, flat(r))

	r, err = n.Add(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 7, 9}, flat(r))
}

func TestOps_DtypeConversion(t *testing.T) {
	a := mustArray(t, []float64{7, 8, 9}, Int32)
	b := mustArray(t, []float64{0.5, 2.5, 3.9}, Float64)

	r, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, Int32, r.DType())
	// b truncates to {0, 2, 3} before multiplying.
	assert.Equal(t, []int32{0, 16, 27}, r.Buffer().AsInt32())

	r, err = b.Mul(a)
	require.NoError(t, err)
	assert.Equal(t, Float64, r.DType())
	assert.InDeltaSlice(t, []float64{3.5, 20, 35.1}, flat(r), 1e-9)
	assert.Equal(t, Float64, b.DType())
}

func TestInt32Truncation(t *testing.T) {
	a := mustArray(t, []int{7, -7, 5}, Int32)

	d, err := a.DivScalar(2)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, -3, 2}, d.Buffer().AsInt32())

	assert.Equal(t, []int32{9, -4, 7}, a.AddScalar(2.9).Buffer().AsInt32())
	assert.Equal(t, []int32{2, -2, 2}, a.MulScalar(0.4).Buffer().AsInt32())

	b := mustArray(t, []int{2, 2, -2}, Int32)
	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, -3, -2}, q.Buffer().AsInt32())

	r, err := a.Reciprocal()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, 0}, r.Buffer().AsInt32())

	one := mustArray(t, []int{1, -1, 2}, Int32)
	rd, err := one.RDiv(6)
	require.NoError(t, err)
	// The reciprocal truncates before the multiply: {1, -1, 0} * 6.
	assert.Equal(t, []int32{6, -6, 0}, rd.Buffer().AsInt32())
}

func TestDivisionByZero(t *testing.T) {
	ints := mustArray(t, []int{1, 0, 3}, Int32)
	nonzero := mustArray(t, []int{1, 2, 3}, Int32)

	_, err := nonzero.Div(ints)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = nonzero.DivScalar(0)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = ints.Reciprocal()
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = ints.RDiv(1)
	require.ErrorIs(t, err, ErrDivisionByZero)

	// A float divisor holding zero converts to an int32 zero.
	_, err = nonzero.Div(mustArray(t, []float64{1, 0.5, 1}, Float64))
	require.ErrorIs(t, err, ErrDivisionByZero)

	floats := mustArray(t, []float64{1, -1, 0}, Float64)
	d, err := floats.DivScalar(0)
	require.NoError(t, err)
	got := flat(d)
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsInf(got[1], -1))
	assert.True(t, math.IsNaN(got[2]))

	r, err := floats.Reciprocal()
	require.NoError(t, err)
	assert.True(t, math.IsInf(flat(r)[2], 1))
}

func TestOps_ShapeMismatch(t *testing.T) {
	a := arange(t, Shape{2, 3}, Float64)
	b := arange(t, Shape{3, 2}, Float64)

	for _, op := range []func(*NDArray) (*NDArray, error){a.Add, a.Sub, a.Mul, a.Div} {
		_, err := op(b)
		require.ErrorIs(t, err, ErrShapeMismatch)
	}
	_, err := a.Add(arange(t, Shape{6}, Float64))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestOps_ReleaseTemporaries(t *testing.T) {
	a := arange(t, Shape{4}, Float32)
	b := arange(t, Shape{4}, Int32)

	_, err := a.Add(b)
	require.NoError(t, err)
	_ = a.RSub(1)
	_, err = b.AddScalar(1).RDiv(2)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Buffer().Refs())
	assert.Equal(t, 1, b.Buffer().Refs())
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		dtype    DataType
		decimals int
		want     []float64
	}{
		{"integer places", []float64{1.4, 1.5, -1.5, 2.5}, Float64, 0, []float64{1, 2, -2, 3}},
		{"two places", []float64{3.14159, -0.006, 2.71828}, Float64, 2, []float64{3.14, -0.01, 2.72}},
		{"tens", []float64{149, 151, -56}, Float64, -1, []float64{150, 150, -60}},
		{"int32 hundreds", []float64{149, 151, 1260}, Int32, -2, []float64{100, 200, 1300}},
		{"int32 positive decimals", []float64{3, -4}, Int32, 3, []float64{3, -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustArray(t, tt.in, tt.dtype)
			r := a.Round(tt.decimals)
			assert.Equal(t, tt.dtype, r.DType())
			assert.InDeltaSlice(t, tt.want, flat(r), 1e-9)
		})
	}
}

func TestAllClose(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, Float64)
	b := mustArray(t, []float64{1, 2.05, 3}, Float32)

	assert.True(t, AllClose(a, b, 0.1))
	assert.False(t, AllClose(a, b, 0.01))
	assert.False(t, AllClose(a, arange(t, Shape{3, 1}, Float64), 10))
	assert.True(t, Equal(a, mustArray(t, []int{1, 2, 3}, Int32)))

	nan := mustArray(t, []float64{math.NaN(), 2, 3}, Float64)
	assert.False(t, AllClose(nan, nan, 1))
}

func BenchmarkAdd(b *testing.B) {
	a := arange(b, Shape{256, 256}, Float64)
	o := a.AddScalar(1)
	at, ot := a.T(), o.T()

	b.Run("natural", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r, _ := a.Add(o)
			r.Release()
		}
	})
	b.Run("strided", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r, _ := at.Add(ot)
			r.Release()
		}
	})
}

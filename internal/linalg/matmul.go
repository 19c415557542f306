package linalg

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/parallel"
)

type number interface {
	~int32 | ~float32 | ~float64
}

// layout2D is the element geometry of a 2-D operand within its buffer.
type layout2D struct {
	shift   int // element index of [0, 0]
	rowSkip int
	colSkip int
}

func layoutOf(a *ndarray.NDArray) layout2D {
	skips := a.Skips()
	return layout2D{
		shift:   a.Offset() / a.ItemSize(),
		rowSkip: skips[0],
		colSkip: skips[1],
	}
}

// Matmul computes the matrix product a @ b.
// For 2-D arrays: (M, K) @ (K, N) -> (M, N), in a's dtype.
//
// Unless cfg.OptimSpace is set, non-natural operands are first copied into natural layout
// so the flat kernel can run. With OptimSpace the strided kernel reads the views in place.
// Output rows are partitioned across goroutines per cfg.Parallel.
func Matmul(a, b *ndarray.NDArray, cfg Config) (*ndarray.NDArray, error) {
	if a.NDim() != 2 || b.NDim() != 2 {
		return nil, fmt.Errorf("matmul: only 2D arrays supported, got %dD and %dD: %w", a.NDim(), b.NDim(), ndarray.ErrShapeMismatch)
	}

	m, k := a.Shape()[0], a.Shape()[1]
	kAlt, n := b.Shape()[0], b.Shape()[1]
	if k != kAlt {
		return nil, fmt.Errorf("matmul: %dx%d @ %dx%d: %w", m, k, kAlt, n, ndarray.ErrShapeMismatch)
	}

	if b.DType() != a.DType() || (!cfg.OptimSpace && !b.Natural()) {
		conv, err := ndarray.FromArray(b, a.DType(), true)
		if err != nil {
			return nil, fmt.Errorf("matmul: %w", err)
		}
		defer conv.Release()
		b = conv
	}
	if !cfg.OptimSpace && !a.Natural() {
		conv, err := ndarray.Copy(a)
		if err != nil {
			return nil, fmt.Errorf("matmul: %w", err)
		}
		defer conv.Release()
		a = conv
	}

	result, err := ndarray.Empty(ndarray.Shape{m, n}, a.DType())
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}

	fast := a.Natural() && b.Natural()
	cfg.log().Debug("matmul",
		"rows", m, "inner", k, "cols", n,
		"dtype", a.DType().String(),
		"optim_space", cfg.OptimSpace,
		"fast", fast)

	pc := cfg.Parallel.PerItem(k * n)
	switch a.DType() {
	case ndarray.Int32:
		matmul(result.Buffer().AsInt32(), a.Buffer().AsInt32(), b.Buffer().AsInt32(), layoutOf(a), layoutOf(b), m, k, n, fast, pc)
	case ndarray.Float32:
		matmul(result.Buffer().AsFloat32(), a.Buffer().AsFloat32(), b.Buffer().AsFloat32(), layoutOf(a), layoutOf(b), m, k, n, fast, pc)
	default:
		matmul(result.Buffer().AsFloat64(), a.Buffer().AsFloat64(), b.Buffer().AsFloat64(), layoutOf(a), layoutOf(b), m, k, n, fast, pc)
	}
	return result, nil
}

// matmul writes c = a @ b into the natural (m, n) slice c.
// Both kernels accumulate in T in the same order, so they produce identical results.
func matmul[T number](c, a, b []T, la, lb layout2D, m, k, n int, fast bool, pc parallel.Config) {
	parallel.ForRange(m, func(start, end int) {
		if fast {
			matmulFlat(c, a, b, start, end, k, n)
		} else {
			matmulStrided(c, a, b, la, lb, start, end, k, n)
		}
	}, pc)
}

// matmulFlat computes rows [start, end) for natural operands.
// C[i,j] = sum_k A[i,k] * B[k,j]
func matmulFlat[T number](c, a, b []T, start, end, k, n int) {
	for i := start; i < end; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// matmulStrided computes rows [start, end) through the operands' skips.
func matmulStrided[T number](c, a, b []T, la, lb layout2D, start, end, k, n int) {
	for i := start; i < end; i++ {
		aRow := la.shift + i*la.rowSkip
		for j := 0; j < n; j++ {
			bCol := lb.shift + j*lb.colSkip
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[aRow+kIdx*la.colSkip] * b[bCol+kIdx*lb.rowSkip]
			}
			c[i*n+j] = sum
		}
	}
}

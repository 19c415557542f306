package linalg

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Inv returns the inverse of the square matrix a by Gauss-Jordan elimination.
//
// The augmented matrix [A | I] is built with HStack and reduced in place: for each column
// the first row at or below the diagonal holding a nonzero becomes the pivot row, is swapped
// into place and normalized, and the column is eliminated from every other row. The result
// is the right half of the augmented matrix, a view into its buffer.
//
// Int32 input is promoted to float64. A column without a nonzero pivot yields
// ErrSingularMatrix.
func Inv(a *ndarray.NDArray, cfg Config) (*ndarray.NDArray, error) {
	if a.NDim() != 2 {
		return nil, fmt.Errorf("inv: expected 2D array, got %dD: %w", a.NDim(), ndarray.ErrShapeMismatch)
	}
	n := a.Shape()[0]
	if a.Shape()[1] != n {
		return nil, fmt.Errorf("inv: shape %v: %w", a.Shape(), ndarray.ErrNonSquareMatrix)
	}

	dtype := a.DType()
	if !dtype.IsFloat() {
		dtype = ndarray.Float64
	}

	aug, err := augment(a, dtype)
	if err != nil {
		return nil, fmt.Errorf("inv: %w", err)
	}
	defer aug.Release()

	cfg.log().Debug("inv", "n", n, "dtype", dtype.String())

	pc := cfg.Parallel.PerItem(2 * n)
	if dtype == ndarray.Float32 {
		err = gaussJordan(aug.Buffer().AsFloat32(), n, pc)
	} else {
		err = gaussJordan(aug.Buffer().AsFloat64(), n, pc)
	}
	if err != nil {
		return nil, fmt.Errorf("inv: %w", err)
	}

	halves, err := ndarray.HSplit(aug, 2)
	if err != nil {
		return nil, fmt.Errorf("inv: %w", err)
	}
	halves[0].Release()
	return halves[1], nil
}

// augment returns the natural (n, 2n) array [A | I] in dtype.
func augment(a *ndarray.NDArray, dtype ndarray.DataType) (*ndarray.NDArray, error) {
	left, err := ndarray.FromArray(a, dtype, true)
	if err != nil {
		return nil, err
	}
	defer left.Release()

	eye, err := ndarray.Identity(a.Shape()[0], dtype)
	if err != nil {
		return nil, err
	}
	defer eye.Release()

	return ndarray.HStack(left, eye)
}

// gaussJordan reduces the row-major (n, 2n) matrix m to [I | A^-1] in place.
// Within one pivot step the pivot row is final before any other row reads it, and every
// other row is written by exactly one goroutine.
func gaussJordan[T ~float32 | ~float64](m []T, n int, pc parallel.Config) error {
	w := 2 * n
	row := func(r int) []T { return m[r*w : (r+1)*w] }

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if m[r*w+col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return fmt.Errorf("no nonzero pivot in column %d: %w", col, ndarray.ErrSingularMatrix)
		}
		if pivot != col {
			pr, cr := row(pivot), row(col)
			for j := range pr {
				pr[j], cr[j] = cr[j], pr[j]
			}
		}

		prow := row(col)
		p := prow[col]
		for j := col; j < w; j++ {
			prow[j] /= p
		}

		parallel.ForRange(n, func(start, end int) {
			for r := start; r < end; r++ {
				if r == col {
					continue
				}
				cur := row(r)
				f := cur[col]
				if f == 0 {
					continue
				}
				for j := col; j < w; j++ {
					cur[j] -= f * prow[j]
				}
			}
		}, pc)
	}
	return nil
}

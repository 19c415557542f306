package ndarray

// computeLayout recomputes skips, length, nbytes and the natural flag from shape and strides.
func (a *NDArray) computeLayout() {
	itemsize := a.dtype.Size()

	a.skips = make([]int, len(a.strides))
	for i, s := range a.strides {
		a.skips[i] = s / itemsize
	}
	a.length = a.shape.NumElements()
	a.nbytes = a.length * itemsize

	a.natural = a.offset == 0 && a.length == a.buffer.length && rowMajor(a.shape, a.skips)
}

// rowMajor reports whether skips describe a dense C-order layout of shape.
// Dimensions of size 1 never move, so their skip only has to keep the ordering.
func rowMajor(shape Shape, skips []int) bool {
	for i := 0; i < len(skips)-1; i++ {
		if skips[i] < skips[i+1] {
			return false
		}
	}
	expect := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 1 && skips[i] != expect {
			return false
		}
		expect *= shape[i]
	}
	return true
}

// shift returns the element index of (0,...,0) within the buffer.
func (a *NDArray) shift() int {
	return a.offset / a.dtype.Size()
}

// walk visits every multi-index of shape in row-major order, recursing over all but the
// innermost dimension. For each element it passes the linear position and, for every array,
// the element index resolved through that array's skips. The shifts slice is reused
// between calls. Every array must have the given shape.
func walk(shape Shape, arrays []*NDArray, fn func(pos int, shifts []int)) {
	ndim := len(shape)
	shifts := make([]int, len(arrays))
	for k, a := range arrays {
		shifts[k] = a.shift()
	}

	pos := 0
	var rec func(dim int)
	rec = func(dim int) {
		n := shape[dim]
		for i := 0; i < n; i++ {
			if dim == ndim-1 {
				fn(pos, shifts)
				pos++
			} else {
				rec(dim + 1)
			}
			for k, a := range arrays {
				shifts[k] += a.skips[dim]
			}
		}
		for k, a := range arrays {
			shifts[k] -= n * a.skips[dim]
		}
	}
	rec(0)
}

// copyInto copies src into dst element by element. Shapes must be equal.
func copyInto(dst, src *NDArray) {
	load, store := src.buffer.loader(), dst.buffer.storer()
	walk(dst.shape, []*NDArray{dst, src}, func(_ int, sh []int) {
		store(sh[0], load(sh[1]))
	})
}

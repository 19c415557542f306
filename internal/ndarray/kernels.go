package ndarray

// binaryOp identifies an elementwise arithmetic operation.
type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	default:
		return "div"
	}
}

// typedOp returns op evaluated in the element type. Integer division truncates toward zero.
func typedOp[T number](op binaryOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	default:
		return func(x, y T) T { return x / y }
	}
}

// floatOp returns op evaluated in float64, used for scalar operands.
func floatOp(op binaryOp) func(x, y float64) float64 {
	switch op {
	case opAdd:
		return func(x, y float64) float64 { return x + y }
	case opSub:
		return func(x, y float64) float64 { return x - y }
	case opMul:
		return func(x, y float64) float64 { return x * y }
	default:
		return func(x, y float64) float64 { return x / y }
	}
}

// binaryArrays computes dst = fn(a, b) elementwise.
// Requires: dst natural, equal shapes, all three of element type T.
func binaryArrays[T number](dst, a, b *NDArray, fn func(x, y T) T) {
	r, s, o := typed[T](dst.buffer), typed[T](a.buffer), typed[T](b.buffer)
	if a.natural && b.natural {
		for i := range r {
			r[i] = fn(s[i], o[i])
		}
		return
	}
	walk(a.shape, []*NDArray{a, b}, func(pos int, sh []int) {
		r[pos] = fn(s[sh[0]], o[sh[1]])
	})
}

// binaryScalar computes dst = fn(a, scalar) elementwise in float64 and stores in T.
// Requires: dst natural, equal shapes, dst and a of element type T.
func binaryScalar[T number](dst, a *NDArray, scalar float64, fn func(x, y float64) float64) {
	r, s := typed[T](dst.buffer), typed[T](a.buffer)
	if a.natural {
		for i := range r {
			r[i] = T(fn(float64(s[i]), scalar))
		}
		return
	}
	walk(a.shape, []*NDArray{a}, func(pos int, sh []int) {
		r[pos] = T(fn(float64(s[sh[0]]), scalar))
	})
}

// unary computes dst = fn(a) elementwise.
// Requires: dst natural, equal shapes, both of element type T.
func unary[T number](dst, a *NDArray, fn func(x T) T) {
	r, s := typed[T](dst.buffer), typed[T](a.buffer)
	if a.natural {
		for i := range r {
			r[i] = fn(s[i])
		}
		return
	}
	walk(a.shape, []*NDArray{a}, func(pos int, sh []int) {
		r[pos] = fn(s[sh[0]])
	})
}

func negate[T number](x T) T { return -x }

func reciprocal[T number](x T) T { return 1 / x }

// anyZero reports whether any element of a is zero.
func anyZero(a *NDArray) bool {
	load := a.buffer.loader()
	found := false
	walk(a.shape, []*NDArray{a}, func(_ int, sh []int) {
		if load(sh[0]) == 0 {
			found = true
		}
	})
	return found
}

package ndarray

import "errors"

// Every message carries the "ndarray:" prefix. Operations wrap these sentinels with
// context (fmt.Errorf("op: ...: %w", ErrX)); callers match them with errors.Is.
var (
	// ErrShapeMismatch is returned when operand shapes are incompatible, e.g. Add on
	// different shapes, Matmul where a.cols != b.rows, or a split that does not divide evenly.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrIndexOutOfRange indicates that a scalar or range key entry resolves outside [0, shape[dim]).
	ErrIndexOutOfRange = errors.New("ndarray: index out of range")

	// ErrSingularMatrix is returned by Inv when no nonzero pivot exists in some column.
	ErrSingularMatrix = errors.New("ndarray: singular matrix")

	// ErrInvalidDtype signals an unrecognized dtype tag or a dtype that does not match its buffer.
	ErrInvalidDtype = errors.New("ndarray: invalid dtype")

	// ErrNonSquareMatrix signals that a square matrix was required.
	ErrNonSquareMatrix = errors.New("ndarray: matrix is not square")

	// ErrInvalidShape is returned for empty shapes, non-positive dimensions, ragged nested
	// input, or strides that do not fit the dtype.
	ErrInvalidShape = errors.New("ndarray: invalid shape")

	// ErrInvalidKey signals a malformed index key (wrong arity, non-positive step, no range
	// where a view is required).
	ErrInvalidKey = errors.New("ndarray: invalid key")

	// ErrInvalidAxis signals an axis outside [0, ndim) or a permutation with duplicates.
	ErrInvalidAxis = errors.New("ndarray: invalid axis")

	// ErrDivisionByZero is returned when an int32 array is divided by zero.
	ErrDivisionByZero = errors.New("ndarray: integer division by zero")
)

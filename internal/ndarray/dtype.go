// Package ndarray provides the strided multi-dimensional array engine: typed shared buffers,
// view-producing indexing, elementwise arithmetic and array assembly.
package ndarray

import "fmt"

// DataType represents runtime type information for array elements.
type DataType int

// Supported data types.
const (
	Int32 DataType = iota
	Float32
	Float64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Int32, Float32:
		return 4
	case Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// String returns the dtype tag.
func (dt DataType) String() string {
	switch dt {
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", int(dt))
	}
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt == Int32 || dt == Float32 || dt == Float64
}

// IsFloat returns true for floating point types.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// ParseDataType maps a dtype tag to its DataType.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "int32":
		return Int32, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidDtype)
	}
}

func checkDtype(dt DataType) error {
	if !dt.Valid() {
		return fmt.Errorf("%s: %w", dt, ErrInvalidDtype)
	}
	return nil
}

// number is the set of element types backing the supported dtypes.
type number interface {
	~int32 | ~float32 | ~float64
}

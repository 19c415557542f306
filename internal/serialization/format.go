package serialization

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// Format constants.
const (
	MetadataKey     = "__metadata__"
	ChecksumKey     = "sha256"
	HeaderAlignment = 8 // JSON header is space padded to this multiple
)

// SafeTensors dtype tags.
const (
	DTypeInt32   = "I32"
	DTypeFloat32 = "F32"
	DTypeFloat64 = "F64"
)

// TensorInfo is one tensor entry of the JSON header.
type TensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// TensorMeta is a tensor's name and byte region within the data section.
type TensorMeta struct {
	Name   string
	Offset int64
	Size   int64
}

func dtypeToString(dt ndarray.DataType) (string, error) {
	switch dt {
	case ndarray.Int32:
		return DTypeInt32, nil
	case ndarray.Float32:
		return DTypeFloat32, nil
	case ndarray.Float64:
		return DTypeFloat64, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDtype, dt)
	}
}

func stringToDtype(s string) (ndarray.DataType, error) {
	switch s {
	case DTypeInt32:
		return ndarray.Int32, nil
	case DTypeFloat32:
		return ndarray.Float32, nil
	case DTypeFloat64:
		return ndarray.Float64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDtype, s)
	}
}

package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch  = errors.New("serialization: checksum mismatch: file may be corrupted")
	ErrOffsetOverlap     = errors.New("serialization: tensor offsets overlap")
	ErrOutOfBounds       = errors.New("serialization: tensor extends beyond data section")
	ErrNegativeOffset    = errors.New("serialization: negative offset or size")
	ErrSizeMismatch      = errors.New("serialization: tensor byte size does not match shape and dtype")
	ErrTooManyTensors    = errors.New("serialization: too many tensors in file")
	ErrInvalidTensorName = errors.New("serialization: invalid tensor name")
	ErrHeaderTooLarge    = errors.New("serialization: header exceeds maximum size")
	ErrUnsupportedDtype  = errors.New("serialization: unsupported dtype")
	ErrTensorNotFound    = errors.New("serialization: tensor not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap maps the error type to its sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	switch e.Type {
	case "offset_overlap":
		return ErrOffsetOverlap
	case "out_of_bounds":
		return ErrOutOfBounds
	case "negative_offset":
		return ErrNegativeOffset
	case "size_mismatch":
		return ErrSizeMismatch
	case "too_many_tensors":
		return ErrTooManyTensors
	case "name_too_long", "invalid_name":
		return ErrInvalidTensorName
	default:
		return nil
	}
}

package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// WriteFile writes arrays to a SafeTensors file at path.
func WriteFile(path string, arrays map[string]*ndarray.NDArray, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, arrays, metadata); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	return file.Close()
}

// Encode writes arrays in SafeTensors format.
//
// Tensors are written in alphabetical order by name. Arrays that are not natural are
// materialized into row-major order first; the sources are never modified.
func Encode(w io.Writer, arrays map[string]*ndarray.NDArray, metadata map[string]string) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if name == MetadataKey {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidTensorName, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	// Gather contiguous payloads and header entries.
	header := make(map[string]any, len(names)+1)
	var data bytes.Buffer
	for _, name := range names {
		payload, dtype, err := contiguousBytes(arrays[name])
		if err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}
		shape := arrays[name].Shape()
		shapeInt64 := make([]int64, len(shape))
		for i, dim := range shape {
			shapeInt64[i] = int64(dim)
		}

		begin := int64(data.Len())
		data.Write(payload)
		header[name] = TensorInfo{
			DType:       dtype,
			Shape:       shapeInt64,
			DataOffsets: [2]int64{begin, int64(data.Len())},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[ChecksumKey] = ComputeChecksum(data.Bytes())
	header[MetadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := len(headerJSON) % HeaderAlignment; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, HeaderAlignment-pad)...)
	}

	// Write header size (8 bytes, little-endian uint64)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// contiguousBytes returns a's elements as row-major little-endian bytes.
func contiguousBytes(a *ndarray.NDArray) ([]byte, string, error) {
	dtype, err := dtypeToString(a.DType())
	if err != nil {
		return nil, "", err
	}
	if a.Natural() {
		return a.Buffer().Bytes(), dtype, nil
	}
	dense, err := ndarray.Copy(a)
	if err != nil {
		return nil, "", err
	}
	defer dense.Release()
	return append([]byte(nil), dense.Buffer().Bytes()...), dtype, nil
}

package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// ReaderOptions configures Decode.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// File is a decoded SafeTensors document. Every array owns a fresh natural buffer.
type File struct {
	Metadata map[string]string
	arrays   map[string]*ndarray.NDArray
}

// Names returns the tensor names in alphabetical order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.arrays))
	for name := range f.arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named array.
func (f *File) Get(name string) (*ndarray.NDArray, error) {
	a, ok := f.arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return a, nil
}

// Release drops every array's buffer reference.
func (f *File) Release() {
	for _, a := range f.arrays {
		a.Release()
	}
}

// ReadFile decodes the SafeTensors file at path with strict validation.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Read-only, nothing to flush
	}()
	return Decode(file, ReaderOptions{ValidationLevel: ValidationStrict})
}

// Decode reads a SafeTensors document from r.
func Decode(r io.Reader, opts ReaderOptions) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	f := &File{arrays: make(map[string]*ndarray.NDArray, len(entries))}
	infos := make(map[string]TensorInfo, len(entries))
	metas := make([]TensorMeta, 0, len(entries))
	for name, raw := range entries {
		if name == MetadataKey {
			if err := json.Unmarshal(raw, &f.Metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to parse tensor %s: %w", name, err)
		}
		infos[name] = info
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}

	if err := ValidateTensors(metas, int64(len(data)), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if sum, ok := f.Metadata[ChecksumKey]; ok && !opts.SkipChecksumValidation {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, err
		}
	}

	for name, info := range infos {
		a, err := decodeTensor(name, info, data)
		if err != nil {
			f.Release()
			return nil, err
		}
		f.arrays[name] = a
	}
	return f, nil
}

func decodeTensor(name string, info TensorInfo, data []byte) (*ndarray.NDArray, error) {
	dtype, err := stringToDtype(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	if err := validateSize(name, info, dtype.Size()); err != nil {
		return nil, err
	}
	begin, end := info.DataOffsets[0], info.DataOffsets[1]
	if begin < 0 || end < begin || end > int64(len(data)) {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Tensor:  name,
			Details: fmt.Sprintf("region [%d-%d] outside data section of %d bytes", begin, end, len(data)),
		}
	}

	shape := make(ndarray.Shape, len(info.Shape))
	for i, d := range info.Shape {
		shape[i] = int(d)
	}
	buf, err := ndarray.NewBufferFromBytes(dtype, data[begin:end])
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	a, err := ndarray.New(shape, dtype, buf, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	return a, nil
}

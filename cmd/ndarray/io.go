package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/serialization"
)

// ioOptions are the input and output flags shared by inv and matmul.
type ioOptions struct {
	dtype  string
	name   string
	out    string
	asJSON bool
}

func ioFlags(o *ioOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dtype",
			Usage:       "element type for JSON inputs (int32, float32, float64)",
			Value:       "float64",
			Destination: &o.dtype,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "tensor to read from .safetensors inputs (default: the only tensor)",
			Destination: &o.name,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "write the result to a .safetensors file",
			Destination: &o.out,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print the result as JSON",
			Destination: &o.asJSON,
		},
	}
}

// loadMatrix reads a JSON document of nested arrays or one tensor of a SafeTensors file.
func loadMatrix(path string, o ioOptions) (*ndarray.NDArray, error) {
	if strings.EqualFold(filepath.Ext(path), ".safetensors") {
		return loadSafeTensors(path, o.name)
	}

	dtype, err := ndarray.ParseDataType(o.dtype)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G304: File path comes from user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ndarray.FromJSON(data, dtype)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func loadSafeTensors(path, name string) (*ndarray.NDArray, error) {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Release()

	if name == "" {
		names := f.Names()
		if len(names) != 1 {
			return nil, fmt.Errorf("%s holds %d tensors, pick one with --name", path, len(names))
		}
		name = names[0]
	}
	a, err := f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ndarray.FromArray(a, a.DType(), false)
}

// emit writes the result to --out, or prints it as JSON or text.
func emit(w io.Writer, result *ndarray.NDArray, op string, o ioOptions) error {
	switch {
	case o.out != "":
		return serialization.WriteFile(o.out, map[string]*ndarray.NDArray{"result": result}, map[string]string{"op": op})
	case o.asJSON:
		data, err := json.Marshal(result.ToList())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		_, err := fmt.Fprintln(w, result.String())
		return err
	}
}

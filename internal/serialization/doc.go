// Package serialization stores named arrays in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size N (uint64 LE)]
//	  [N bytes: JSON header, space padded to a multiple of 8]
//	  [Tensor data: raw little-endian bytes, in name order]
//
// The JSON header maps each tensor name to {"dtype", "shape", "data_offsets"}, where
// data_offsets are [begin, end) byte positions relative to the data section. The optional
// "__metadata__" entry holds string pairs; the writer records a SHA-256 of the data
// section under "sha256" and the reader verifies it when present.
//
// Example usage:
//
//	a, _ := ndarray.Array([][]float64{{1, 2}, {3, 4}}, ndarray.Float64)
//	if err := serialization.WriteFile("m.safetensors", map[string]*ndarray.NDArray{"a": a}, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := serialization.ReadFile("m.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Release()
//	back, _ := f.Get("a")
package serialization

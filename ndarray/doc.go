// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides strided n-dimensional numeric arrays.
//
// # Overview
//
// An NDArray is a shaped, typed view over a reference-counted Buffer. Slicing, transposing
// and splitting produce views that share the buffer, so writes through one view are visible
// through every other. Arithmetic always returns a fresh row-major ("natural") array.
//
//   - Element types: Int32, Float32, Float64
//   - Views: Slice, Transpose, Split, FromArray without copy
//   - Arithmetic: Add, Sub, Mul, Div and their scalar and reflected forms
//   - Assembly: Concatenate, HStack, VStack, HSplit, VSplit
//
// # Basic Usage
//
//	import "github.com/born-ml/ndarray/ndarray"
//
//	func main() {
//	    a, _ := ndarray.Array([][]float64{{1, 2}, {3, 4}}, ndarray.Float64)
//	    b := a.MulScalar(2)
//
//	    col, _ := a.Slice(ndarray.All(), ndarray.Scalar(1)) // view of [2 4]
//	    _ = col.Set(0, ndarray.Scalar(0))                 // a is now [[1 0] [3 4]]
//
//	    sum, _ := a.Add(b)
//	    fmt.Println(sum)
//	}
//
// # Errors
//
// Operations return wrapped sentinel errors (ErrShapeMismatch, ErrIndexOutOfRange, ...)
// matched with errors.Is.
package ndarray

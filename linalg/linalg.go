// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides matrix multiplication and inversion for ndarray arrays.
//
// Example:
//
//	a, _ := ndarray.Array([][]float64{{1, 2}, {3, 4}}, ndarray.Float64)
//	inv, _ := linalg.Inv(a, linalg.DefaultConfig())
//	eye, _ := linalg.Matmul(a, inv, linalg.DefaultConfig())
package linalg

import (
	"github.com/born-ml/ndarray/internal/linalg"
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Config selects how the kernels execute (copy vs strided operands, row parallelism,
// debug logging).
type Config = linalg.Config

// DefaultConfig returns the default execution settings.
func DefaultConfig() Config {
	return linalg.DefaultConfig()
}

// Matmul computes the matrix product a @ b of two 2-D arrays.
func Matmul(a, b *ndarray.NDArray, cfg Config) (*ndarray.NDArray, error) {
	return linalg.Matmul(a, b, cfg)
}

// Inv returns the inverse of a square matrix by Gauss-Jordan elimination.
func Inv(a *ndarray.NDArray, cfg Config) (*ndarray.NDArray, error) {
	return linalg.Inv(a, cfg)
}

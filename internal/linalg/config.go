// Package linalg implements matrix multiplication and Gauss-Jordan inversion over
// ndarray views.
package linalg

import (
	"github.com/born-ml/ndarray/internal/logger"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Config selects how the linear algebra kernels execute.
type Config struct {
	// OptimSpace runs Matmul directly on strided operands instead of first copying
	// non-natural operands into natural layout.
	OptimSpace bool

	// Parallel controls row partitioning across goroutines.
	Parallel parallel.Config

	// Logger receives debug records about the chosen execution path. Nil discards them.
	Logger logger.Logger
}

// DefaultConfig returns a config that copies strided operands, partitions rows across all
// CPUs and discards logs.
func DefaultConfig() Config {
	return Config{
		Parallel: parallel.DefaultConfig(),
		Logger:   logger.Discard(),
	}
}

func (c Config) log() logger.Logger {
	if c.Logger == nil {
		return logger.Discard()
	}
	return c.Logger
}

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/ndarray/internal/linalg"
	"github.com/born-ml/ndarray/internal/logger"
	"github.com/born-ml/ndarray/internal/ndarray"
)

func invCmd(st *state, w io.Writer) *cli.Command {
	var o ioOptions
	return &cli.Command{
		Name:      "inv",
		Usage:     "Invert a square matrix",
		ArgsUsage: "<matrix>",
		Flags:     ioFlags(&o),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: inv takes exactly one matrix", 1)
			}
			a, err := loadMatrix(cmd.Args().First(), o)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load matrix: %v", err), 1)
			}
			defer a.Release()

			start := time.Now()
			inv, err := linalg.Inv(a, st.linalg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer inv.Release()
			logger.FromContext(ctx).Info("inverted", "shape", fmt.Sprint(a.Shape()), "took", time.Since(start))

			return emit(w, inv, "inv", o)
		},
	}
}

func matmulCmd(st *state, w io.Writer) *cli.Command {
	var o ioOptions
	return &cli.Command{
		Name:      "matmul",
		Usage:     "Multiply two matrices",
		ArgsUsage: "<a> <b>",
		Flags:     ioFlags(&o),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: matmul takes exactly two matrices", 1)
			}
			a, err := loadMatrix(cmd.Args().Get(0), o)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load matrix: %v", err), 1)
			}
			defer a.Release()
			b, err := loadMatrix(cmd.Args().Get(1), o)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load matrix: %v", err), 1)
			}
			defer b.Release()

			start := time.Now()
			c, err := linalg.Matmul(a, b, st.linalg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer c.Release()
			logger.FromContext(ctx).Info("multiplied", "shape", fmt.Sprint(c.Shape()), "took", time.Since(start))

			return emit(w, c, "matmul", o)
		},
	}
}

func benchCmd(st *state, w io.Writer) *cli.Command {
	var (
		size int64
		seed uint64
	)
	return &cli.Command{
		Name:  "bench",
		Usage: "Time inversion and multiplication of a random matrix on every execution path",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "size",
				Aliases:     []string{"n"},
				Usage:       "matrix order",
				Value:       30,
				Destination: &size,
			},
			&cli.Uint64Flag{
				Name:        "seed",
				Usage:       "random seed",
				Value:       42,
				Destination: &seed,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if size < 5 {
				return cli.Exit("error: --size must be at least 5", 1)
			}
			rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // G404: benchmark data
			a, err := ndarray.RandWith(rng, ndarray.Shape{int(size), int(size)}, ndarray.Float64)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer a.Release()

			for _, optimSpace := range []bool{false, true} {
				for _, transpose := range []bool{false, true} {
					cfg := st.linalg
					cfg.OptimSpace = optimSpace
					if err := benchCase(w, a, cfg, transpose); err != nil {
						return cli.Exit(fmt.Sprintf("error: %v", err), 1)
					}
				}
			}
			return nil
		},
	}
}

// benchCase inverts a (or its transpose), multiplies back, and prints the rounded top-left
// 5x5 block of the product with timings.
func benchCase(w io.Writer, a *ndarray.NDArray, cfg linalg.Config, transpose bool) error {
	m := a
	if transpose {
		m = a.T()
		defer m.Release()
	}

	start := time.Now()
	inv, err := linalg.Inv(m, cfg)
	if err != nil {
		return err
	}
	defer inv.Release()
	invTook := time.Since(start)

	start = time.Now()
	prod, err := linalg.Matmul(m, inv, cfg)
	if err != nil {
		return err
	}
	defer prod.Release()
	mulTook := time.Since(start)

	corner, err := prod.Slice(ndarray.Range(0, 5, 1), ndarray.Range(0, 5, 1))
	if err != nil {
		return err
	}
	defer corner.Release()
	rounded := corner.Round(2)
	defer rounded.Release()

	_, err = fmt.Fprintf(w, "optim_space=%t transpose=%t inv=%s matmul=%s\n%s\n\n",
		cfg.OptimSpace, transpose, invTook.Round(time.Microsecond), mulTook.Round(time.Microsecond), rounded)
	return err
}

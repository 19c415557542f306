// Package main provides the ndarray CLI: matrix inversion and multiplication on JSON or
// SafeTensors inputs, and a timing demo of the linear algebra execution paths.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/linalg"
	"github.com/born-ml/ndarray/internal/logger"
)

const version = "v0.1.0-dev"

// state carries settings resolved by the root command's Before hook.
type state struct {
	configPath string
	logLevel   string
	optimSpace bool

	linalg linalg.Config
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	st := &state{}
	return &cli.Command{
		Name:      "ndarray",
		Usage:     "Strided n-dimensional arrays and linear algebra",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.yaml",
				Value:       config.DefaultPath(),
				Destination: &st.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Destination: &st.logLevel,
			},
			&cli.BoolFlag{
				Name:        "optim-space",
				Usage:       "multiply strided operands in place instead of copying them",
				Destination: &st.optimSpace,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if cmd.IsSet("log-level") {
				cfg.LogLevel = st.logLevel
			}
			if cmd.IsSet("optim-space") {
				cfg.OptimSpace = &st.optimSpace
			}

			log := cfg.Logger(stderr)
			st.linalg = cfg.Linalg(log)
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			versionCmd(stdout),
			invCmd(st, stdout),
			matmulCmd(st, stdout),
			benchCmd(st, stdout),
		},
	}
}

func versionCmd(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(w, "ndarray %s\n", version)
			return err
		},
	}
}

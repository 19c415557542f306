// Package config loads the YAML settings file (~/.config/ndarray/config.yaml by default)
// and turns it into linear algebra and logging configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/ndarray/internal/linalg"
	"github.com/born-ml/ndarray/internal/logger"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Config represents the settings file.
// All scalar fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	OptimSpace *bool    `yaml:"optim_space"`
	Parallel   Parallel `yaml:"parallel"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Parallel mirrors parallel.Config.
type Parallel struct {
	Enabled  *bool `yaml:"enabled"`
	Workers  *int  `yaml:"workers"`
	MinChunk *int  `yaml:"min_chunk"`
}

// DefaultPath returns the per-user settings path, or "" when no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ndarray", "config.yaml")
}

// Load reads the settings file at path. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Parallel.Workers != nil && *c.Parallel.Workers < 1 {
		return fmt.Errorf("parallel.workers must be >= 1, got %d", *c.Parallel.Workers)
	}
	if c.Parallel.MinChunk != nil && *c.Parallel.MinChunk < 1 {
		return fmt.Errorf("parallel.min_chunk must be >= 1, got %d", *c.Parallel.MinChunk)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Linalg returns linalg.DefaultConfig with every set field applied.
func (c Config) Linalg(log logger.Logger) linalg.Config {
	cfg := linalg.DefaultConfig()
	if c.OptimSpace != nil {
		cfg.OptimSpace = *c.OptimSpace
	}
	cfg.Parallel = c.Parallel.apply(cfg.Parallel)
	if log != nil {
		cfg.Logger = log
	}
	return cfg
}

func (p Parallel) apply(base parallel.Config) parallel.Config {
	if p.Enabled != nil {
		base.Enabled = *p.Enabled
	}
	if p.Workers != nil {
		base.NumWorkers = *p.Workers
	}
	if p.MinChunk != nil {
		base.MinChunkSize = *p.MinChunk
	}
	return base
}

// Logger builds a logger writing to w in the configured format and level.
func (c Config) Logger(w io.Writer) logger.Logger {
	return logger.ForFormat(w, c.LogFormat, logger.ParseLevel(c.LogLevel))
}

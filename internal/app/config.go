package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // .hcl files or directories
	Demo  bool     // run the built-in neuron instead of loading files

	LogFormat string
	LogLevel  string

	// Accumulate keeps gradients from earlier roots instead of zeroing the
	// reachable subgraph before each backward pass.
	Accumulate bool
	GradCheck  bool
	Epsilon    float64
	Tolerance  float64
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 && !cfg.Demo {
		return nil, errors.New("at least one expression file path is required unless running the demo")
	}
	if len(cfg.Paths) > 0 && cfg.Demo {
		return nil, errors.New("expression file paths cannot be combined with the demo")
	}
	if cfg.GradCheck && cfg.Epsilon <= 0 {
		return nil, fmt.Errorf("epsilon must be positive, got %v", cfg.Epsilon)
	}
	if cfg.GradCheck && cfg.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance must not be negative, got %v", cfg.Tolerance)
	}

	return &cfg, nil
}

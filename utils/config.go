package utils

import (
	"fmt"
	"strconv"
	"strings"

	"sonic/nn"
)

// Config holds the knobs the binaries read from flags.
type Config struct {
	Architecture []int
	WeightsPath  string
	Activation   string
	Kernel       string
	LinearOutput bool
	Seed         int64
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates inference configuration
func ValidateConfig(config *Config) error {
	if config.WeightsPath == "" {
		if len(config.Architecture) < 2 {
			return fmt.Errorf("architecture must have at least 2 layers (input and output)")
		}
		for i, w := range config.Architecture {
			if w <= 0 {
				return fmt.Errorf("architecture width %d at position %d must be positive", w, i)
			}
		}
	}

	if _, err := nn.ParseActivation(config.Activation); err != nil {
		return err
	}

	if _, err := nn.SelectKernel(config.Kernel); err != nil {
		return err
	}

	return nil
}

// NetworkOptions turns the kernel, activation and output settings into
// Network options. An empty Activation and a false LinearOutput add nothing,
// leaving whatever a weights file recorded in place.
func (c *Config) NetworkOptions() ([]nn.Option, error) {
	kernel, err := nn.SelectKernel(c.Kernel)
	if err != nil {
		return nil, err
	}
	opts := []nn.Option{nn.WithKernel(kernel)}
	if c.Activation != "" {
		act, err := nn.ParseActivation(c.Activation)
		if err != nil {
			return nil, err
		}
		opts = append(opts, nn.WithActivation(act))
	}
	if c.LinearOutput {
		opts = append(opts, nn.WithLinearOutput())
	}
	return opts, nil
}

package config

import "fmt"

// NumericConfig bounds the numeric core.
type NumericConfig struct {
	// MaxFactorialInput is the largest n accepted by factorial
	MaxFactorialInput uint64 `yaml:"max_factorial_input"`

	// Workers limits concurrent evaluations in the CLI
	Workers int `yaml:"workers"`
}

// DefaultNumericConfig returns the default limits.
func DefaultNumericConfig() NumericConfig {
	return NumericConfig{
		MaxFactorialInput: 10000,
		Workers:           4,
	}
}

// Validate rejects zero limits.
func (c *NumericConfig) Validate() error {
	if c.MaxFactorialInput < 1 {
		return fmt.Errorf("numeric.max_factorial_input must be at least 1")
	}
	if c.Workers < 1 {
		return fmt.Errorf("numeric.workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

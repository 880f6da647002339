package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// Interpolation methods
const (
	InterpolationNTT      = "ntt"
	InterpolationLagrange = "lagrange"
)

// Config represents the configuration for trace commitment generation
type Config struct {
	// Field backend: "goldilocks" or "stark101"
	Field string `json:"field"`

	// Hash function: "blake3", "sha3", "sha256" or "tip5"
	HashFunction string `json:"hash_function"`

	// BlowupFactor is the ratio between the extended domain and the trace length
	BlowupFactor int `json:"blowup_factor"`

	// Interpolation selects "ntt" or "lagrange" for interpolation and extension
	Interpolation string `json:"interpolation"`

	// Workers bounds the goroutines used for evaluation and leaf hashing
	Workers int `json:"workers"`
}

// DefaultConfig returns the configuration the golden vectors are pinned to
func DefaultConfig() *Config {
	return &Config{
		Field:         core.FieldGoldilocks,
		HashFunction:  core.HashBlake3,
		BlowupFactor:  2,
		Interpolation: InterpolationNTT,
		Workers:       runtime.NumCPU(),
	}
}

// LoadConfig reads a JSON file and applies it on top of DefaultConfig
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, core.WrapError(core.ErrCodeInvalidConfig, err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	f, err := core.FieldByName(c.Field)
	if err != nil {
		return err
	}

	if _, err := core.NewHasher(c.HashFunction); err != nil {
		return err
	}

	if c.BlowupFactor < 2 || !IsPowerOfTwo(c.BlowupFactor) {
		return core.NewError(core.ErrCodeInvalidConfig,
			"blowup factor must be a power of two >= 2, got %d", c.BlowupFactor)
	}
	if Log2(c.BlowupFactor) > f.TwoAdicity() {
		return core.NewError(core.ErrCodeInvalidConfig,
			"blowup factor %d exceeds max root-of-unity order 2^%d of %s", c.BlowupFactor, f.TwoAdicity(), f.Name())
	}

	if c.Interpolation != InterpolationNTT && c.Interpolation != InterpolationLagrange {
		return core.NewError(core.ErrCodeInvalidConfig,
			"interpolation must be 'ntt' or 'lagrange', got '%s'", c.Interpolation)
	}

	if c.Workers <= 0 {
		return core.NewError(core.ErrCodeInvalidConfig, "workers must be positive, got %d", c.Workers)
	}

	return nil
}

// WithField sets the field backend
func (c *Config) WithField(name string) *Config {
	c.Field = name
	return c
}

// WithHashFunction sets the hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// WithBlowupFactor sets the low-degree extension blowup factor
func (c *Config) WithBlowupFactor(factor int) *Config {
	c.BlowupFactor = factor
	return c
}

// WithInterpolation sets the interpolation method
func (c *Config) WithInterpolation(method string) *Config {
	c.Interpolation = method
	return c
}

// WithWorkers sets the number of workers
func (c *Config) WithWorkers(workers int) *Config {
	c.Workers = workers
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

package interpret

import "fmt"

// Config controls how a Driver evaluates the cross product.
type Config struct {
	// AllowEmpty makes an empty registry produce an empty result instead of
	// an EmptyRegistryError.
	// Default: false.
	AllowEmpty bool

	// Parallelism is the maximum number of observers evaluated at once.
	// Values <= 1 evaluate sequentially on the calling goroutine.
	// Default: 1.
	Parallelism int
}

// DefaultConfig returns the default driver configuration.
func DefaultConfig() *Config {
	return &Config{
		AllowEmpty:  false,
		Parallelism: 1,
	}
}

// Validate validates the driver configuration.
func (c *Config) Validate() error {
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism cannot be negative, got %d", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// WithAllowEmpty sets whether empty registries are accepted.
func (c *Config) WithAllowEmpty(allow bool) *Config {
	c.AllowEmpty = allow
	return c
}

// WithParallelism sets the maximum number of concurrently evaluated observers.
func (c *Config) WithParallelism(n int) *Config {
	c.Parallelism = n
	return c
}

func (c *Config) parallel() bool {
	return c.Parallelism > 1
}

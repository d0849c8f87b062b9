// Package config loads gitreview configuration from file, environment,
// and defaults.
package config

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNonPositiveIterations = errors.New("iterations must be positive")
	ErrUnknownFormat         = errors.New("unknown report format")
)

// Report formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Defaults applied when neither file nor environment sets a value.
const (
	DefaultTool         = "pylint"
	DefaultIterations   = 100
	DefaultSignificance = "score-and-lines"
	DefaultErrorDelta   = "appeared"
	DefaultFormat       = FormatText
	DefaultCwd          = "."
)

// Config is the top-level configuration struct for gitreview.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Cwd          string `mapstructure:"cwd"`
	Tool         string `mapstructure:"tool"`
	Iterations   int    `mapstructure:"iterations"`
	Significance string `mapstructure:"significance"`
	ErrorDelta   string `mapstructure:"error_delta"`
	Format       string `mapstructure:"format"`
	Plot         string `mapstructure:"plot"`
	RCFile       string `mapstructure:"rcfile"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
}

// Validate checks cross-field constraints. Tool and policy names are
// validated by their owning packages at construction time.
func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrNonPositiveIterations, c.Iterations)
	}

	if c.Format != FormatText && c.Format != FormatYAML {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	return nil
}

package domain

import (
	"runtime"

	"go.trai.ch/arcstr"
	"go.trai.ch/zerr"
)

// ConfigFileName is the name of the optional configuration file.
const ConfigFileName = "arcstr.yaml"

// DefaultPayload is the shared string used by stress runs unless configured otherwise.
var DefaultPayload = arcstr.Literal("the quick brown fox jumps over the lazy dog")

// Config is the content of arcstr.yaml.
type Config struct {
	Stress StressConfig `yaml:"stress"`
	Lex    LexConfig    `yaml:"lex"`
}

// StressConfig controls the stress command.
type StressConfig struct {
	Goroutines int           `yaml:"goroutines"`
	Iterations int           `yaml:"iterations"`
	Payload    arcstr.ArcStr `yaml:"payload"`
}

// LexConfig controls the lex command.
type LexConfig struct {
	Format         Format `yaml:"format"`
	KeepWhitespace bool   `yaml:"keep_whitespace"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Stress: StressConfig{
			Goroutines: runtime.NumCPU(),
			Iterations: 10000,
			Payload:    DefaultPayload,
		},
		Lex: LexConfig{
			Format: FormatText,
		},
	}
}

// Validate checks that the configuration can drive both commands.
func (c Config) Validate() error {
	if err := c.Stress.Validate(); err != nil {
		return err
	}
	if _, err := ParseFormat(string(c.Lex.Format)); err != nil {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "lex.format is not supported"), "format", string(c.Lex.Format))
	}
	return nil
}

// Validate checks the stress settings.
func (c StressConfig) Validate() error {
	switch {
	case c.Goroutines < 1:
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "goroutines must be positive"), "goroutines", c.Goroutines)
	case c.Iterations < 1:
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "iterations must be positive"), "iterations", c.Iterations)
	case c.Payload.IsEmpty():
		return zerr.Wrap(ErrInvalidConfig, "payload must not be empty")
	}
	return nil
}

// Package config provides the configuration loader for arcstr.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/arcstr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a Loader for domain.ConfigFileName.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Filename: domain.ConfigFileName,
		logger:   logger,
	}
}

// Load reads the configuration from the given working directory. A missing file yields
// the defaults.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	path := filepath.Join(cwd, l.Filename)
	cfg, err := Load(path)
	if errors.Is(err, iofs.ErrNotExist) {
		l.logger.Info("no " + l.Filename + " found, using defaults")
		return domain.DefaultConfig(), nil
	}
	return cfg, err
}

// Load reads a configuration file from the given path and applies it over the defaults.
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}
	return Parse(data)
}

// Parse decodes arcstr.yaml content and applies it over the defaults.
func Parse(data []byte) (domain.Config, error) {
	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := domain.DefaultConfig()
	if s := file.Stress; s != nil {
		if s.Goroutines != nil {
			cfg.Stress.Goroutines = *s.Goroutines
		}
		if s.Iterations != nil {
			cfg.Stress.Iterations = *s.Iterations
		}
		if !s.Payload.IsEmpty() {
			cfg.Stress.Payload = s.Payload
		}
	}
	if x := file.Lex; x != nil {
		if x.Format != nil {
			cfg.Lex.Format = domain.Format(*x.Format)
		}
		if x.KeepWhitespace != nil {
			cfg.Lex.KeepWhitespace = *x.KeepWhitespace
		}
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

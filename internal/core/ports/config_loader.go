package ports

import "go.trai.ch/arcstr/internal/core/domain"

// ConfigLoader defines the interface for loading arcstr.yaml.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory. A missing file
	// yields domain.DefaultConfig. The caller owns the returned stress payload and must
	// release it.
	Load(cwd string) (domain.Config, error)
}

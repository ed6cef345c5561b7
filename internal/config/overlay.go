// config/overlay.go
package config

import (
	"os"

	"jobsearch-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

type SourcesFile struct {
	Sources []domain.SourceDefinition `yaml:"sources"`
}

// OverlaySources replaces cfg.Sources with the list from a separate sources
// file, so the firm list can be edited without touching scoring tables.
func OverlaySources(cfg *Config, sourcesPath string) error {
	b, err := os.ReadFile(sourcesPath)
	if err != nil {
		// Missing sources file should not kill startup
		return nil
	}

	var sf SourcesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Sources) > 0 {
		cfg.Sources = sf.Sources
	}
	return nil
}

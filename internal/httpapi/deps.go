package httpapi

import (
	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/search"

	"go.uber.org/zap"
)

type Deps struct {
	Service *search.Service
	Log     *zap.Logger

	// ConfigPath is reported by /config/path; empty when running on defaults.
	ConfigPath string
	Config     config.Config
}

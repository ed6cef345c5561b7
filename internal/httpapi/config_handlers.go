package httpapi

import (
	"net/http"
	"path/filepath"

	"jobsearch-engine/internal/config"
)

// ConfigHandler exposes the running configuration read-only.
type ConfigHandler struct {
	Cfg     config.Config
	CfgPath string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Cfg)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	if h.CfgPath == "" {
		writeJSON(w, map[string]any{"path": ""})
		return
	}
	abs, _ := filepath.Abs(h.CfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.Cfg)
	writeJSON(w, vr)
}

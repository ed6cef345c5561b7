package httpapi

import "net/http"

// NewMux registers every route on a fresh mux without middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Search
	sh := SearchHandler{Service: d.Service}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Search,
	}))
	mux.HandleFunc("/expand-keywords", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Expand,
	}))
	mux.HandleFunc("/suggest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Suggest,
	}))
	mux.HandleFunc("/match", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Match,
	}))

	// Company sources
	src := SourcesHandler{Service: d.Service}
	mux.HandleFunc("/sources", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: src.List,
	}))
	mux.HandleFunc("/sources/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: src.JobsByPath, // expects /sources/{id}/jobs
	}))
	mux.HandleFunc("/scrape-companies", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: src.ScrapeCompanies,
	}))

	// Config
	ch := ConfigHandler{Cfg: d.Config, CfgPath: d.ConfigPath}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	return mux
}

// NewHandler is NewMux wrapped in the standard middleware stack.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, AccessLog(d.Log), Recover(d.Log), Cors)
}

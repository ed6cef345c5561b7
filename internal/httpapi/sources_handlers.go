package httpapi

import (
	"net/http"
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/search"
)

type SourcesHandler struct {
	Service *search.Service
}

// List returns every source grouped by category plus the flat list.
func (h SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	srcs := h.Service.ListSources()
	if srcs == nil {
		srcs = []domain.SourceDefinition{}
	}
	writeJSON(w, map[string]any{
		"count":      len(srcs),
		"sources":    srcs,
		"categories": h.Service.SourcesByCategory(),
	})
}

// JobsByPath expects POST /sources/{id}/jobs.
func (h SourcesHandler) JobsByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sources/")
	id, tail, ok := strings.Cut(rest, "/")
	if !ok || tail != "jobs" || id == "" {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /sources/{id}/jobs")
		return
	}

	var req scrapeRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	posts, err := h.Service.ScrapeSource(r.Context(), id, req.SearchTerm)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, sourceJobsResponse{SourceID: id, Count: len(posts), Jobs: posts})
}

func (h SourcesHandler) ScrapeCompanies(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	byID := h.Service.ScrapeAllSources(r.Context(), req.SearchTerm, req.Categories)
	n := 0
	for _, ps := range byID {
		n += len(ps)
	}
	writeJSON(w, companiesResponse{Count: n, Companies: byID})
}

package httpapi

import (
	"net/http"
	"strings"

	"jobsearch-engine/internal/search"
)

type SearchHandler struct {
	Service *search.Service
}

func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	res, err := h.Service.Search(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, searchResponse{Count: len(res.Postings), Result: res})
}

func (h SearchHandler) Expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	kws := req.Keywords
	if strings.TrimSpace(req.Keyword) != "" {
		kws = append([]string{req.Keyword}, kws...)
	}
	expanded, err := h.Service.Expand(kws)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, expandResponse{Original: kws, Expanded: expanded, Count: len(expanded)})
}

func (h SearchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	ranked, err := h.Service.Match(req.Resume, req.Jobs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"jobs": ranked, "jobs_count": len(ranked)})
}

func (h SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.Suggest(r.URL.Query().Get("keyword"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	writeJSON(w, map[string]any{"suggestions": out})
}

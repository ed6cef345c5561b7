package httpapi

import (
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/search"
)

type expandRequest struct {
	Keywords []string `json:"keywords"`
	Keyword  string   `json:"keyword,omitempty"`
}

type expandResponse struct {
	Original []string `json:"original"`
	Expanded []string `json:"expanded"`
	Count    int      `json:"count"`
}

type scrapeRequest struct {
	SearchTerm string   `json:"search_term"`
	Categories []string `json:"categories,omitempty"`
}

type sourceJobsResponse struct {
	SourceID string           `json:"source_id"`
	Count    int              `json:"jobs_count"`
	Jobs     []domain.Posting `json:"jobs"`
}

type companiesResponse struct {
	Count     int                         `json:"jobs_count"`
	Companies map[string][]domain.Posting `json:"companies"`
}

type matchRequest struct {
	Resume *domain.ResumeProfile `json:"resume"`
	Jobs   []domain.Posting      `json:"jobs"`
}

type searchResponse struct {
	Count int `json:"jobs_count"`
	search.Result
}

package types

import (
	"context"

	"jobsearch-engine/internal/domain"
)

// Adapter fetches postings for one ATS family. A non-nil error always means
// the source was unavailable this time (network, timeout, parse); callers
// log it and treat the source as empty.
type Adapter interface {
	Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error)
}

// AdapterFunc lets a plain function act as an Adapter.
type AdapterFunc func(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error)

func (f AdapterFunc) Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error) {
	return f(ctx, src, query)
}

// NewPosting returns a Posting carrying src's provenance fields.
func NewPosting(src domain.SourceDefinition) domain.Posting {
	return domain.Posting{
		Company:    src.DisplayName,
		SourceID:   src.ID,
		SourceKind: src.ATSKind.SourceKind(),
		Category:   src.Category,
	}
}

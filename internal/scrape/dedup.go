package scrape

import (
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/util"
)

// Dedup stamps each posting's DedupKey and drops later postings whose key was
// already seen. The input is not modified.
func Dedup(postings []domain.Posting) []domain.Posting {
	return dedupInto(postings, map[string]bool{})
}

func dedupInto(postings []domain.Posting, seen map[string]bool) []domain.Posting {
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		p.DedupKey = util.DedupKey(p)
		if seen[p.DedupKey] {
			continue
		}
		seen[p.DedupKey] = true
		out = append(out, p)
	}
	return out
}

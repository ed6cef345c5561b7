package scrape

import (
	"context"
	"strings"
	"time"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of one aggregation run.
type Report struct {
	// Results holds only sources that produced at least one posting after
	// cross-source dedup.
	Results map[string][]domain.Posting
	Queried []string
	Failed  []string
}

// Total counts postings across every source in the report.
func (r Report) Total() int {
	n := 0
	for _, ps := range r.Results {
		n += len(ps)
	}
	return n
}

// ScrapeAll fetches every selected source concurrently and returns postings
// keyed by source id.
func (r *Registry) ScrapeAll(ctx context.Context, query string, categories []string) map[string][]domain.Posting {
	return r.Run(ctx, query, categories).Results
}

// Run is ScrapeAll with bookkeeping about which sources were queried and
// which failed. A failed or slow source never affects its siblings.
func (r *Registry) Run(ctx context.Context, query string, categories []string) Report {
	selected := r.selectSources(categories)

	type outcome struct {
		posts []domain.Posting
		err   error
	}
	outcomes := make([]outcome, len(selected))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	start := time.Now()
	for i, src := range selected {
		i, src := i, src
		g.Go(func() error {
			posts, err := r.fetch(ctx, src, query)
			if err != nil {
				r.logFailure(src, err)
				outcomes[i] = outcome{err: err}
				return nil // best-effort: don't cancel siblings
			}
			outcomes[i] = outcome{posts: posts}
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Results: map[string][]domain.Posting{}}
	seen := map[string]bool{}
	for i, src := range selected {
		rep.Queried = append(rep.Queried, src.ID)
		o := outcomes[i]
		if o.err != nil {
			rep.Failed = append(rep.Failed, src.ID)
			continue
		}
		// Configured order decides which duplicate survives.
		kept := dedupInto(o.posts, seen)
		if len(kept) > 0 {
			rep.Results[src.ID] = kept
		}
	}

	r.log.Info("company scrape finished",
		zap.String("query", logger.Truncate(query, 80)),
		zap.Int("sources", len(selected)),
		zap.Int("failed", len(rep.Failed)),
		zap.Int("postings", rep.Total()),
		zap.Duration("took", time.Since(start)))
	return rep
}

// selectSources keeps configured order. An empty filter selects everything.
func (r *Registry) selectSources(categories []string) []domain.SourceDefinition {
	want := map[string]bool{}
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			want[c] = true
		}
	}
	if len(want) == 0 {
		return r.Sources()
	}
	var out []domain.SourceDefinition
	for _, s := range r.sources {
		if want[strings.ToLower(s.Category)] {
			out = append(out, s)
		}
	}
	return out
}

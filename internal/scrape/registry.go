package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/logger"
	"jobsearch-engine/internal/scrape/custom"
	"jobsearch-engine/internal/scrape/greenhouse"
	"jobsearch-engine/internal/scrape/lever"
	"jobsearch-engine/internal/scrape/smartrecruiters"
	"jobsearch-engine/internal/scrape/types"
	"jobsearch-engine/internal/scrape/unsupported"
	"jobsearch-engine/internal/scrape/util"

	"go.uber.org/zap"
)

const (
	defaultConcurrency  = 4
	defaultFetchTimeout = 10 * time.Second
)

// Registry maps every configured career page to the adapter for its ATS
// family. Source definitions are read-only after New.
type Registry struct {
	sources  []domain.SourceDefinition
	byID     map[string]domain.SourceDefinition
	adapters map[domain.ATSKind]types.Adapter

	log         *zap.Logger
	concurrency int
	timeout     time.Duration
}

type Option func(*Registry)

func WithLogger(l *zap.Logger) Option { return func(r *Registry) { r.log = logger.OrNop(l) } }

// WithAdapter overrides the adapter used for one ATS family.
func WithAdapter(kind domain.ATSKind, a types.Adapter) Option {
	return func(r *Registry) { r.adapters[kind] = a }
}

func WithConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithTimeout bounds each single source fetch.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(sources []domain.SourceDefinition, client *util.Client, opts ...Option) *Registry {
	r := &Registry{
		byID:        make(map[string]domain.SourceDefinition, len(sources)),
		adapters:    map[domain.ATSKind]types.Adapter{},
		log:         zap.NewNop(),
		concurrency: defaultConcurrency,
		timeout:     defaultFetchTimeout,
	}
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}

	defaults := map[domain.ATSKind]types.Adapter{
		domain.ATSGreenhouse:      greenhouse.New(client),
		domain.ATSLever:           lever.New(client),
		domain.ATSSmartRecruiters: smartrecruiters.New(client),
		domain.ATSHTMLCustom:      custom.New(client),
		domain.ATSUnsupported:     unsupported.New(r.log),
	}
	for k, a := range defaults {
		if _, ok := r.adapters[k]; !ok {
			r.adapters[k] = a
		}
	}

	for _, s := range sources {
		if _, dup := r.byID[s.ID]; dup {
			r.log.Warn("duplicate source id ignored", zap.String(logger.FieldSource, s.ID))
			continue
		}
		r.byID[s.ID] = s
		r.sources = append(r.sources, s)
	}
	return r
}

// NewFromConfig wires the shared HTTP client and host limiter from cfg.
func NewFromConfig(cfg config.Config, log *zap.Logger) *Registry {
	limiter := util.NewHostLimiter(cfg.HTTP.RatePerSecond, cfg.HTTP.Burst)
	client := util.NewClient(cfg.HTTP, limiter)
	return New(cfg.Sources, client,
		WithLogger(log),
		WithConcurrency(cfg.Scrape.MaxConcurrency),
		WithTimeout(cfg.HTTP.Timeout()),
	)
}

// Sources lists the definitions in configured order.
func (r *Registry) Sources() []domain.SourceDefinition {
	out := make([]domain.SourceDefinition, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) Source(id string) (domain.SourceDefinition, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// SourcesByCategory groups the definitions by category, keeping configured
// order inside each group.
func (r *Registry) SourcesByCategory() map[string][]domain.SourceDefinition {
	out := map[string][]domain.SourceDefinition{}
	for _, s := range r.sources {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (r *Registry) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range r.sources {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// ScrapeOne fetches a single source. Unknown ids yield an error matching
// domain.ErrUnknownSource; adapter failures are logged and yield no postings.
func (r *Registry) ScrapeOne(ctx context.Context, id, query string) ([]domain.Posting, error) {
	src, ok := r.byID[id]
	if !ok {
		return nil, &domain.UnknownSourceError{ID: id}
	}
	posts, err := r.fetch(ctx, src, query)
	if err != nil {
		r.logFailure(src, err)
		return nil, nil
	}
	return posts, nil
}

// fetch runs one adapter under the per-source timeout. Adapter errors and
// panics come back as *domain.SourceUnavailableError.
func (r *Registry) fetch(ctx context.Context, src domain.SourceDefinition, query string) (out []domain.Posting, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = &domain.SourceUnavailableError{SourceID: src.ID, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()

	a, ok := r.adapters[src.ATSKind]
	if !ok {
		return nil, &domain.SourceUnavailableError{SourceID: src.ID, Cause: fmt.Errorf("no adapter for ats %q", src.ATSKind)}
	}

	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	posts, err := a.Fetch(fctx, src, strings.TrimSpace(query))
	if err != nil {
		return nil, &domain.SourceUnavailableError{SourceID: src.ID, Cause: err}
	}
	for i := range posts {
		posts[i].DedupKey = util.DedupKey(posts[i])
	}
	r.log.Debug("source fetched",
		zap.String(logger.FieldSource, src.ID),
		zap.Int("postings", len(posts)),
		zap.Duration("took", time.Since(start)))
	return posts, nil
}

func (r *Registry) logFailure(src domain.SourceDefinition, err error) {
	r.log.Warn("source unavailable",
		zap.String(logger.FieldSource, src.ID),
		zap.String("ats", string(src.ATSKind)),
		zap.Error(err))
}

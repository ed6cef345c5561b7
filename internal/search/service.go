// Package search implements the inbound operations: multi-term search,
// keyword expansion, and direct access to the company sources.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobsearch-engine/internal/boards"
	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/expand"
	"jobsearch-engine/internal/logger"
	"jobsearch-engine/internal/match"
	"jobsearch-engine/internal/rank"
	"jobsearch-engine/internal/scrape"
	"jobsearch-engine/internal/scrape/util"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	expandPerKeyword = 5
	boardConcurrency = 4
)

// Companies is the view of the source registry the service needs.
type Companies interface {
	Sources() []domain.SourceDefinition
	SourcesByCategory() map[string][]domain.SourceDefinition
	ScrapeOne(ctx context.Context, id, query string) ([]domain.Posting, error)
	Run(ctx context.Context, query string, categories []string) scrape.Report
}

type Service struct {
	cfg       config.Config
	companies Companies
	boards    boards.Scraper

	expander *expand.Expander
	scorer   *rank.Scorer
	matcher  *match.Matcher
	validate *validator.Validate
	log      *zap.Logger
}

// New wires the service. companies and board may be nil; the corresponding
// sources are then simply not queried.
func New(cfg config.Config, companies Companies, board boards.Scraper, log *zap.Logger) *Service {
	return &Service{
		cfg:       cfg,
		companies: companies,
		boards:    board,
		expander:  expand.New(cfg.Tables, cfg.Search.MaxExpansions),
		scorer:    rank.NewScorer(cfg.Tables),
		matcher:   match.New(cfg.Tables),
		validate:  newValidator(),
		log:       logger.OrNop(log),
	}
}

// NewFromConfig builds the registry and board client described by cfg.
func NewFromConfig(cfg config.Config, log *zap.Logger) *Service {
	var board boards.Scraper
	if hs := boards.FromConfig(cfg); hs != nil {
		board = hs
	}
	return New(cfg, scrape.NewFromConfig(cfg, log), board, log)
}

func (s *Service) Config() config.Config { return s.cfg }

// Search runs every term against every requested board, optionally adds the
// company career pages, dedups, filters and ranks.
func (s *Service) Search(ctx context.Context, req Request) (Result, error) {
	req = normalize(req, s.cfg.Search)
	if err := s.validate.Struct(req); err != nil {
		return Result{}, toValidationError(err)
	}

	terms := req.Terms
	if req.Expand {
		terms = s.expander.ExpandManyN(req.Terms, expandPerKeyword, s.maxTotal())
	}

	start := time.Now()
	s.log.Info("search started",
		zap.Strings("terms", terms),
		zap.String("location", req.Location),
		zap.Strings("sites", req.Sites),
		zap.Bool("companies", req.IncludeCompanies))

	batches, queried, failed := s.collect(ctx, req, terms)

	res := Result{
		CountsByTerm:   map[string]int{},
		Terms:          terms,
		SourcesQueried: queried,
		SourcesFailed:  failed,
	}
	for _, t := range terms {
		res.CountsByTerm[t] = 0
	}
	for _, b := range batches {
		res.CountsByTerm[b.term] += len(b.posts)
	}

	postings := s.rankAndFilter(req, batches)
	if req.Resume != nil {
		postings = s.matcher.Rank(*req.Resume, postings)
	}
	res.Postings = postings
	if res.Postings == nil {
		res.Postings = []domain.Posting{}
	}

	if len(res.Postings) == 0 {
		switch {
		case len(queried) == 0:
			res.Message = MsgNoSources
		case len(failed) == len(queried):
			res.Message = MsgAllUnavailable
		default:
			res.Message = MsgNoMatches
		}
	}

	s.log.Info("search finished",
		zap.Int("postings", len(res.Postings)),
		zap.Int("queried", len(queried)),
		zap.Int("failed", len(failed)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// batch is what one source returned for one term.
type batch struct {
	term  string
	posts []domain.Posting
}

// collect fans out term × site board calls and the per-term company runs.
// Batches come back in term order, boards before companies, so dedup keeps
// the same posting every time.
func (s *Service) collect(ctx context.Context, req Request, terms []string) ([]batch, []string, []string) {
	type job struct {
		term string
		site string // empty means company sources
	}
	var jobs []job
	for _, t := range terms {
		if s.boards != nil {
			for _, site := range req.Sites {
				jobs = append(jobs, job{term: t, site: site})
			}
		}
		if req.IncludeCompanies && s.companies != nil {
			jobs = append(jobs, job{term: t})
		}
	}

	type outcome struct {
		batches []batch
		queried []string
		failed  []string
	}
	outcomes := make([]outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(boardConcurrency)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if j.site == "" {
				rep := s.companies.Run(ctx, j.term, req.Categories)
				o := outcome{queried: rep.Queried, failed: rep.Failed}
				for _, src := range rep.Queried {
					if ps := rep.Results[src]; len(ps) > 0 {
						o.batches = append(o.batches, batch{term: j.term, posts: ps})
					}
				}
				outcomes[i] = o
				return nil
			}

			posts, err := s.boards.Scrape(ctx, boards.Query{
				Site:          j.site,
				Term:          j.term,
				Location:      req.Location,
				ResultsWanted: req.ResultsWanted,
				Distance:      *req.Distance,
				JobType:       req.JobType,
				IsRemote:      req.IsRemote,
				HoursOld:      req.HoursOld,
			})
			if err != nil {
				s.log.Warn("board search failed",
					zap.String(logger.FieldSite, j.site),
					zap.String("term", j.term),
					zap.Error(err))
				outcomes[i] = outcome{queried: []string{j.site}, failed: []string{j.site}}
				return nil // best-effort: don't cancel siblings
			}
			s.log.Debug("board search",
				zap.String(logger.FieldSite, j.site),
				zap.String("term", j.term),
				zap.Int("postings", len(posts)))
			outcomes[i] = outcome{
				batches: []batch{{term: j.term, posts: posts}},
				queried: []string{j.site},
			}
			return nil
		})
	}
	_ = g.Wait()

	var (
		flat    []batch
		queried = newOrderedSet()
		ok      = newOrderedSet()
		broken  = newOrderedSet()
	)
	for _, o := range outcomes {
		flat = append(flat, o.batches...)
		queried.add(o.queried...)
		broken.add(o.failed...)
		bad := map[string]bool{}
		for _, id := range o.failed {
			bad[id] = true
		}
		for _, id := range o.queried {
			if !bad[id] {
				ok.add(id)
			}
		}
	}
	// A source that failed for one term but answered another is not failed.
	var failed []string
	for _, id := range broken.items {
		if !ok.seen[id] {
			failed = append(failed, id)
		}
	}
	return flat, queried.items, failed
}

// rankAndFilter dedups across batches, then scores each posting against the
// term that found it. The exclusion and job-type gates always apply; the
// threshold defaults to the configured one.
func (s *Service) rankAndFilter(req Request, batches []batch) []domain.Posting {
	seen := map[string]bool{}
	var order []string
	byTerm := map[string][]domain.Posting{}
	for _, b := range batches {
		for _, p := range b.posts {
			p.DedupKey = util.DedupKey(p)
			if seen[p.DedupKey] {
				continue
			}
			seen[p.DedupKey] = true
			if _, ok := byTerm[b.term]; !ok {
				order = append(order, b.term)
			}
			byTerm[b.term] = append(byTerm[b.term], p)
		}
	}

	threshold := s.cfg.Search.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	var out []domain.Posting
	for _, term := range order {
		ps := s.scorer.FilterJobs(byTerm[term], term, threshold, req.JobType)
		out = append(out, rank.FilterByExperience(ps, req.ExperienceLevels)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	return out
}

// Expand returns the originals followed by up to five expansions per keyword,
// capped at the configured total.
func (s *Service) Expand(keywords []string) ([]string, error) {
	kws := trimDedup(keywords)
	if len(kws) == 0 {
		return nil, &domain.ValidationError{Field: "keywords", Message: "at least one keyword is required"}
	}
	return s.expander.ExpandManyN(kws, expandPerKeyword, s.maxTotal()), nil
}

// Suggest lists related phrases for one keyword.
func (s *Service) Suggest(keyword string) ([]string, error) {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return nil, &domain.ValidationError{Field: "keyword", Message: "is required"}
	}
	return s.expander.Suggest(kw), nil
}

func (s *Service) maxTotal() int {
	if s.cfg.Search.MaxTotalExpansions > 0 {
		return s.cfg.Search.MaxTotalExpansions
	}
	return 15
}

func (s *Service) ListSources() []domain.SourceDefinition {
	if s.companies == nil {
		return nil
	}
	return s.companies.Sources()
}

func (s *Service) SourcesByCategory() map[string][]domain.SourceDefinition {
	if s.companies == nil {
		return map[string][]domain.SourceDefinition{}
	}
	return s.companies.SourcesByCategory()
}

// ScrapeSource fetches one company source; unknown ids are surfaced.
func (s *Service) ScrapeSource(ctx context.Context, id, term string) ([]domain.Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Message: "is required"}
	}
	if s.companies == nil {
		return nil, &domain.UnknownSourceError{ID: id}
	}
	posts, err := s.companies.ScrapeOne(ctx, id, term)
	if err != nil {
		return nil, fmt.Errorf("scrape source: %w", err)
	}
	if posts == nil {
		posts = []domain.Posting{}
	}
	return posts, nil
}

func (s *Service) ScrapeAllSources(ctx context.Context, term string, categories []string) map[string][]domain.Posting {
	if s.companies == nil {
		return map[string][]domain.Posting{}
	}
	return s.companies.Run(ctx, term, trimDedup(categories)).Results
}

// Match scores postings against a résumé and orders them best first.
func (s *Service) Match(r *domain.ResumeProfile, postings []domain.Posting) ([]domain.Posting, error) {
	if r == nil {
		return nil, &domain.ValidationError{Field: "resume", Message: "is required"}
	}
	if len(postings) == 0 {
		return []domain.Posting{}, nil
	}
	return s.matcher.Rank(*r, postings), nil
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet { return &orderedSet{seen: map[string]bool{}} }

func (o *orderedSet) add(xs ...string) {
	for _, x := range xs {
		if !o.seen[x] {
			o.seen[x] = true
			o.items = append(o.items, x)
		}
	}
}

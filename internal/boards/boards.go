// Package boards talks to an external multi-board scraper (a JobSpy-compatible
// HTTP service) and turns its rows into postings.
package boards

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/util"
)

var ErrNoEndpoint = errors.New("boards: no scraper endpoint configured")

// Query is one site × term request.
type Query struct {
	Site          string
	Term          string
	Location      string
	ResultsWanted int
	Distance      int
	JobType       string
	IsRemote      bool
	HoursOld      *int
}

// Scraper returns postings for a single site and term, or fails as a whole.
type Scraper interface {
	Scrape(ctx context.Context, q Query) ([]domain.Posting, error)
}

type HTTPScraper struct {
	endpoint string
	client   *util.Client
}

// NewHTTPScraper builds a scraper for endpoint; the board service is slow, so
// it gets its own client with the boards timeout.
func NewHTTPScraper(endpoint string, timeoutSeconds int, userAgent string) *HTTPScraper {
	return &HTTPScraper{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		client: util.NewClient(config.HTTPConfig{
			UserAgent:      userAgent,
			TimeoutSeconds: timeoutSeconds,
		}, nil),
	}
}

// FromConfig returns nil when no endpoint is configured.
func FromConfig(cfg config.Config) *HTTPScraper {
	if strings.TrimSpace(cfg.Boards.Endpoint) == "" {
		return nil
	}
	return NewHTTPScraper(cfg.Boards.Endpoint, cfg.Boards.TimeoutSeconds, cfg.HTTP.UserAgent)
}

type row struct {
	Site        string `json:"site"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobURL      string `json:"job_url"`
	DatePosted  string `json:"date_posted"`
	Description string `json:"description"`
	IsRemote    *bool  `json:"is_remote"`
	JobLevel    string `json:"job_level"`
}

type response struct {
	Jobs []row `json:"jobs"`
}

func (s *HTTPScraper) Scrape(ctx context.Context, q Query) ([]domain.Posting, error) {
	if s == nil || s.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u := s.endpoint + "?" + encode(q).Encode()

	var resp response
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("boards %s %q: %w", q.Site, q.Term, err)
	}

	out := make([]domain.Posting, 0, len(resp.Jobs))
	for _, r := range resp.Jobs {
		title := util.CleanText(r.Title)
		if title == "" {
			continue
		}
		site := r.Site
		if site == "" {
			site = q.Site
		}
		loc := util.NormalizeLocation(r.Location)
		if r.IsRemote != nil && *r.IsRemote && !strings.Contains(strings.ToLower(loc), "remote") {
			loc = strings.TrimPrefix(loc+", Remote", ", ")
		}
		out = append(out, domain.Posting{
			Title:       title,
			Company:     util.CleanText(r.Company),
			Location:    loc,
			URL:         strings.TrimSpace(r.JobURL),
			PostedAt:    parseDate(r.DatePosted),
			SourceID:    strings.ToLower(site),
			SourceKind:  domain.SourceGenericBoard,
			Description: strings.TrimSpace(r.Description),
			JobLevel:    strings.TrimSpace(r.JobLevel),
		})
	}
	return out, nil
}

func encode(q Query) url.Values {
	v := url.Values{}
	v.Set("site_name", q.Site)
	v.Set("search_term", q.Term)
	v.Set("location", q.Location)
	v.Set("results_wanted", strconv.Itoa(q.ResultsWanted))
	v.Set("distance", strconv.Itoa(q.Distance))
	v.Set("country_indeed", "usa")
	if q.JobType != "" {
		v.Set("job_type", q.JobType)
	}
	if q.IsRemote {
		v.Set("is_remote", "true")
	}
	if q.HoursOld != nil {
		v.Set("hours_old", strconv.Itoa(*q.HoursOld))
	}
	return v
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

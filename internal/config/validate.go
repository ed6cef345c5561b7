package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"jobsearch-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

var validSites = map[string]bool{
	"linkedin":     true,
	"indeed":       true,
	"glassdoor":    true,
	"google":       true,
	"ziprecruiter": true,
}

// ValidSite reports whether name is a board the multi-board scraper understands.
func ValidSite(name string) bool { return validSites[strings.ToLower(strings.TrimSpace(name))] }

// NormalizeAndValidate returns a normalized copy plus errors and warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation
	out.Sources = append([]domain.SourceDefinition(nil), cfg.Sources...)

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}
	lowerList := func(xs []string) []string {
		ys := trimList(xs)
		for i := range ys {
			ys[i] = strings.ToLower(ys[i])
		}
		return ys
	}

	out.Search.Sites = lowerList(out.Search.Sites)
	out.Tables.Exclusion = lowerList(out.Tables.Exclusion)
	out.Tables.InternshipMarkers = lowerList(out.Tables.InternshipMarkers)
	out.Tables.SeniorityMarkers = lowerList(out.Tables.SeniorityMarkers)
	out.Tables.QuerySeniority = lowerList(out.Tables.QuerySeniority)
	out.Tables.DegreeSignals = lowerList(out.Tables.DegreeSignals)
	out.Tables.StopWords = lowerList(out.Tables.StopWords)
	out.Tables.TechSignals = lowerList(out.Tables.TechSignals)

	// ---- Validation rules ----

	if out.HTTP.TimeoutSeconds <= 0 {
		res.addErr("http.timeout_seconds must be > 0")
	} else if out.HTTP.TimeoutSeconds > 60 {
		res.addWarn("http.timeout_seconds is %d; one slow source will hold its worker that long.", out.HTTP.TimeoutSeconds)
	}
	if out.HTTP.RatePerSecond < 0 {
		res.addErr("http.rate_per_second must be >= 0 (0 disables limiting)")
	}
	if strings.TrimSpace(out.HTTP.UserAgent) == "" {
		res.addWarn("http.user_agent is empty; some career pages reject requests without one.")
	}
	if out.Scrape.MaxConcurrency <= 0 {
		res.addErr("scrape.max_concurrency must be > 0")
	}

	if out.Search.Threshold < 0 || out.Search.Threshold > 1 {
		res.addErr("search.threshold must be within [0,1]")
	}
	if out.Search.ResultsWanted < 1 || out.Search.ResultsWanted > 100 {
		res.addErr("search.results_wanted must be 1..100")
	}
	if out.Search.Distance < 0 {
		res.addErr("search.distance must be >= 0")
	}
	if out.Search.MaxExpansions <= 0 {
		res.addErr("search.max_expansions must be > 0")
	}
	if out.Search.MaxTotalExpansions <= 0 {
		res.addErr("search.max_total_expansions must be > 0")
	}
	for _, s := range out.Search.Sites {
		if !validSites[s] {
			res.addErr("search.sites: unknown site %q", s)
		}
	}
	if strings.TrimSpace(out.Boards.Endpoint) == "" {
		res.addWarn("boards.endpoint is empty; searches will only cover company career pages.")
	}

	// sources
	seen := map[string]bool{}
	for i, s := range out.Sources {
		s.ID = strings.TrimSpace(s.ID)
		s.DisplayName = strings.TrimSpace(s.DisplayName)
		s.CareerPageURL = strings.TrimSpace(s.CareerPageURL)
		s.Category = strings.TrimSpace(s.Category)
		if s.DisplayName == "" {
			s.DisplayName = s.ID
		}
		out.Sources[i] = s

		if s.ID == "" {
			res.addErr("sources[%d].id is required", i)
			continue
		}
		if seen[s.ID] {
			res.addErr("sources[%d].id %q is duplicated", i, s.ID)
		}
		seen[s.ID] = true
		if !s.ATSKind.Valid() {
			res.addErr("sources[%d] (%s): unknown ats %q", i, s.ID, s.ATSKind)
		}
		if u, err := url.Parse(s.CareerPageURL); err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("sources[%d] (%s): url %q must be absolute", i, s.ID, s.CareerPageURL)
		}
		if s.Category == "" {
			res.addWarn("sources[%d] (%s) has no category; category filters will never select it.", i, s.ID)
		}
	}
	if len(out.Sources) == 0 {
		res.addWarn("no sources configured; company scraping will return nothing.")
	}

	// tables
	if len(out.Tables.Roles) == 0 && len(out.Tables.Tech) == 0 {
		res.addWarn("tables.roles and tables.tech are empty; keyword expansion falls back to generated variants only.")
	}
	for i, b := range out.Tables.TechDomains {
		if len(b.Terms) == 0 {
			res.addErr("tables.tech_domains[%d] (%s) must have at least 1 term", i, b.Name)
		}
	}
	for i, d := range out.Tables.Degrees {
		if strings.TrimSpace(d.Name) == "" || d.Level <= 0 {
			res.addErr("tables.degrees[%d] needs a name and a level > 0", i)
		}
	}

	return out, res
}

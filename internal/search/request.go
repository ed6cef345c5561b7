package search

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/rank"

	"github.com/go-playground/validator/v10"
)

// Request is one search across the job boards and, optionally, the company
// career pages.
type Request struct {
	Terms            []string              `json:"terms" validate:"required,min=1,dive,required"`
	Location         string                `json:"location" validate:"required"`
	Sites            []string              `json:"sites,omitempty" validate:"omitempty,dive,site"`
	ResultsWanted    int                   `json:"results_wanted,omitempty" validate:"omitempty,min=1,max=100"`
	Distance         *int                  `json:"distance,omitempty" validate:"omitempty,min=0"`
	JobType          string                `json:"job_type,omitempty"`
	IsRemote         bool                  `json:"is_remote,omitempty"`
	HoursOld         *int                  `json:"hours_old,omitempty" validate:"omitempty,min=1"`
	Expand           bool                  `json:"expand,omitempty"`
	Threshold        *float64              `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
	IncludeCompanies bool                  `json:"include_companies,omitempty"`
	Categories       []string              `json:"categories,omitempty"`
	ExperienceLevels []string              `json:"experience_levels,omitempty" validate:"omitempty,dive,experience"`
	Resume           *domain.ResumeProfile `json:"resume,omitempty"`
}

// Result is always returned for a valid request; an empty Postings slice
// comes with a Message saying why.
type Result struct {
	Postings       []domain.Posting `json:"jobs"`
	CountsByTerm   map[string]int   `json:"jobs_by_term"`
	Terms          []string         `json:"terms"`
	SourcesQueried []string         `json:"sources_queried"`
	SourcesFailed  []string         `json:"sources_failed"`
	Message        string           `json:"message,omitempty"`
}

const (
	MsgNoSources      = "no sources configured"
	MsgAllUnavailable = "all sources unavailable"
	MsgNoMatches      = "no postings matched"
)

// Err maps an empty result onto domain.ErrNoResults.
func (r Result) Err() error {
	if len(r.Postings) > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrNoResults, r.Message)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("site", func(fl validator.FieldLevel) bool {
		return config.ValidSite(fl.Field().String())
	})
	_ = v.RegisterValidation("experience", func(fl validator.FieldLevel) bool {
		return rank.ValidExperienceLevel(fl.Field().String())
	})
	return v
}

// toValidationError turns the first validator failure into a domain error.
func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}
	fe := ves[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	case "site":
		msg = fmt.Sprintf("unknown site %q; must be one of linkedin, indeed, glassdoor, google, ziprecruiter", fe.Value())
	case "experience":
		msg = fmt.Sprintf("unknown experience level %q; must be one of internship, 1-3, 3-5, 5-7, 7+", fe.Value())
	default:
		msg = "failed " + fe.Tag()
	}
	return &domain.ValidationError{Field: field, Message: msg}
}

// normalize trims the request and fills defaults from cfg. It runs before
// validation so blank terms count as missing.
func normalize(req Request, cfg config.SearchConfig) Request {
	out := req
	out.Terms = trimDedup(req.Terms)
	out.Location = strings.TrimSpace(req.Location)

	sites := trimDedup(req.Sites)
	for i := range sites {
		sites[i] = strings.ToLower(sites[i])
	}
	if len(sites) == 0 {
		sites = append([]string(nil), cfg.Sites...)
	}
	out.Sites = sites

	if out.ResultsWanted == 0 {
		out.ResultsWanted = cfg.ResultsWanted
	}
	if out.Distance == nil {
		d := cfg.Distance
		out.Distance = &d
	}
	out.JobType = strings.TrimSpace(req.JobType)
	out.Categories = trimDedup(req.Categories)
	out.ExperienceLevels = trimDedup(req.ExperienceLevels)
	return out
}

func trimDedup(xs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		k := strings.ToLower(x)
		if x == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, x)
	}
	return out
}

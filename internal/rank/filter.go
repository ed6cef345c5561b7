package rank

import (
	"sort"
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/textmatch"
)

type JobType string

const (
	JobTypeAny        JobType = ""
	JobTypeInternship JobType = "internship"
	JobTypeFullTime   JobType = "fulltime"
)

// ParseJobType folds the spellings callers use ("full-time", "Full Time")
// onto the gate values. Anything else passes through lower-cased and is not
// gated.
func ParseJobType(s string) JobType {
	k := strings.ToLower(strings.TrimSpace(s))
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(k) {
	case "fulltime":
		return JobTypeFullTime
	case "internship", "intern":
		return JobTypeInternship
	}
	return JobType(k)
}

// IsExcluded reports whether the posting text contains a staffing/contract
// denylist phrase.
func (s *Scorer) IsExcluded(title, description, company string) bool {
	text := strings.ToLower(title + " " + description + " " + company)
	return textmatch.ContainsAny(text, s.exclusion)
}

func (s *Scorer) IsInternship(title, description string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return textmatch.ContainsAnyTerm(strings.ToLower(title), s.internship) ||
		textmatch.ContainsAnyTerm(strings.ToLower(description), s.internship)
}

func (s *Scorer) IsSenior(title string) bool {
	return textmatch.ContainsAnyTerm(strings.ToLower(title), s.seniority)
}

// PassesJobType applies the employment-category gate for jt. Unknown or
// empty job types always pass.
func (s *Scorer) PassesJobType(title, description, query string, jt JobType) bool {
	switch jt {
	case JobTypeInternship:
		return s.IsInternship(title, description) && !s.IsSenior(title)
	case JobTypeFullTime:
		if s.IsInternship(title, description) {
			return false
		}
		if s.IsSenior(title) {
			return textmatch.ContainsAnyTerm(strings.ToLower(query), s.querySeniority)
		}
	}
	return true
}

// FilterJobs drops denylisted postings, applies the job-type gate, keeps
// postings scoring at least threshold and returns copies annotated with
// RelevanceScore, best first. Ties keep input order.
func (s *Scorer) FilterJobs(postings []domain.Posting, query string, threshold float64, jobType string) []domain.Posting {
	jt := ParseJobType(jobType)
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if s.IsExcluded(p.Title, p.Description, p.Company) {
			continue
		}
		if !s.PassesJobType(p.Title, p.Description, query, jt) {
			continue
		}
		score := s.Score(p.Title, query, p.Description)
		if score < threshold {
			continue
		}
		p.RelevanceScore = score
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

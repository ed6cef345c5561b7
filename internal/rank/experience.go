package rank

import (
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/match"
)

// Experience buckets accepted by FilterByExperience.
const (
	ExperienceInternship = "internship"
	ExperienceEntry      = "1-3"
	ExperienceMid        = "3-5"
	ExperienceSenior     = "5-7"
	ExperienceExpert     = "7+"
)

var boardLevels = map[string][]string{
	ExperienceInternship: {"internship"},
	ExperienceEntry:      {"entry_level", "associate"},
	ExperienceMid:        {"associate", "mid_senior_level"},
	ExperienceSenior:     {"mid_senior_level"},
	ExperienceExpert:     {"mid_senior_level", "director", "executive"},
}

// ValidExperienceLevel reports whether s names a known bucket.
func ValidExperienceLevel(s string) bool {
	_, ok := boardLevels[s]
	return ok
}

// BoardLevels maps experience buckets onto the seniority labels job boards
// attach to postings. Unknown buckets map to nothing.
func BoardLevels(levels []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range levels {
		for _, b := range boardLevels[l] {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	return out
}

// FilterByExperience keeps postings whose board level matches one of the
// requested buckets, or whose stated years requirement falls inside one.
// Postings stating no requirement are kept. An empty levels list keeps
// everything. Input order is preserved.
func FilterByExperience(postings []domain.Posting, levels []string) []domain.Posting {
	if len(levels) == 0 {
		return postings
	}
	labels := BoardLevels(levels)
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if jl := strings.ToLower(p.JobLevel); jl != "" && containsLabel(jl, labels) {
			out = append(out, p)
			continue
		}
		years, ok := match.RequiredYears(p.Description)
		if !ok || years == 0 || inAnyBucket(years, levels) {
			out = append(out, p)
		}
	}
	return out
}

func containsLabel(jobLevel string, labels []string) bool {
	for _, l := range labels {
		if strings.Contains(jobLevel, l) {
			return true
		}
	}
	return false
}

func inAnyBucket(years int, levels []string) bool {
	for _, l := range levels {
		switch l {
		case ExperienceEntry:
			if years >= 1 && years <= 3 {
				return true
			}
		case ExperienceMid:
			if years >= 3 && years <= 5 {
				return true
			}
		case ExperienceSenior:
			if years >= 5 && years <= 7 {
				return true
			}
		case ExperienceExpert:
			if years >= 7 {
				return true
			}
		}
	}
	return false
}

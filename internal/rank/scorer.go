// internal/rank/scorer.go
package rank

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/textmatch"

	"github.com/pmezard/go-difflib/difflib"
)

// Tier values returned by Score, highest precision first.
const (
	ScoreExact       = 1.0
	ScoreOverlap     = 0.9
	ScoreDomain      = 0.8
	ScoreFuzzy       = 0.7
	ScoreDescription = 0.5

	fuzzyMin     = 0.8
	fuzzyMinWord = 4
)

var nonKeyword = regexp.MustCompile(`[^a-z0-9\s+#]`)

// Scorer computes query relevance and the exclusion / job-type gates.
// It holds only read-only tables and is safe for concurrent use.
type Scorer struct {
	exclusion      []string
	domains        []config.Bucket
	internship     []string
	seniority      []string
	querySeniority []string
}

func NewScorer(t config.Tables) *Scorer {
	lower := func(xs []string) []string {
		out := make([]string, 0, len(xs))
		for _, x := range xs {
			if x = strings.ToLower(strings.TrimSpace(x)); x != "" {
				out = append(out, x)
			}
		}
		return out
	}
	s := &Scorer{
		exclusion:      lower(t.Exclusion),
		internship:     lower(t.InternshipMarkers),
		seniority:      lower(t.SeniorityMarkers),
		querySeniority: lower(t.QuerySeniority),
	}
	for _, b := range t.TechDomains {
		s.domains = append(s.domains, config.Bucket{Name: b.Name, Terms: lower(b.Terms)})
	}
	return s
}

// Score returns the relevance of a posting to query in [0,1]. The first
// matching tier wins.
func (s *Scorer) Score(title, query, description string) float64 {
	t := strings.ToLower(strings.TrimSpace(title))
	q := strings.ToLower(strings.TrimSpace(query))
	if t == "" || q == "" {
		return 0
	}

	if strings.Contains(t, q) {
		return ScoreExact
	}

	tk := keywords(t)
	for k := range keywords(q) {
		if tk[k] {
			return ScoreOverlap
		}
	}

	for _, b := range s.domains {
		if textmatch.ContainsAny(q, b.Terms) && textmatch.ContainsAny(t, b.Terms) {
			return ScoreDomain
		}
	}

	if maxWordSimilarity(strings.Fields(t), strings.Fields(q)) > fuzzyMin {
		return ScoreFuzzy
	}

	if description != "" && strings.Contains(strings.ToLower(description), q) {
		return ScoreDescription
	}
	return 0
}

// keywords returns the unigrams and bigrams of s after stripping everything
// but letters, digits, whitespace, '+' and '#'.
func keywords(s string) map[string]bool {
	words := strings.Fields(nonKeyword.ReplaceAllString(strings.ToLower(s), " "))
	out := make(map[string]bool, 2*len(words))
	for i, w := range words {
		out[w] = true
		if i+1 < len(words) {
			out[w+" "+words[i+1]] = true
		}
	}
	return out
}

func maxWordSimilarity(a, b []string) float64 {
	best := 0.0
	for _, x := range a {
		if utf8.RuneCountInString(x) < fuzzyMinWord {
			continue
		}
		for _, y := range b {
			if utf8.RuneCountInString(y) < fuzzyMinWord {
				continue
			}
			if r := charRatio(x, y); r > best {
				best = r
			}
		}
	}
	return best
}

// charRatio is the difflib similarity ratio over the characters of a and b.
func charRatio(a, b string) float64 {
	m := difflib.NewMatcher(chars(a), chars(b))
	return m.Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

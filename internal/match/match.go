// Package match scores a parsed résumé against a job description.
package match

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/textmatch"
)

const (
	WeightSkills     = 0.40
	WeightExperience = 0.25
	WeightEducation  = 0.15
	WeightKeywords   = 0.20
)

// Neutral values used when a signal is absent.
const (
	experienceNoDescription = 50
	experienceNoRequirement = 75
	experienceUnknownYears  = 50

	educationNoDescription = 70
	educationNoBar         = 80
	educationMissingDegree = 40
	educationUnparseable   = 70
)

var (
	yearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`minimum\s+(\d+)\s+years?`),
		regexp.MustCompile(`at least\s+(\d+)\s+years?`),
	}
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

type Matcher struct {
	degrees []config.DegreeLevel
	signals []string
	stop    map[string]bool
}

func New(t config.Tables) *Matcher {
	m := &Matcher{stop: textmatch.LowerSet(t.StopWords)}
	for _, d := range t.Degrees {
		m.degrees = append(m.degrees, config.DegreeLevel{Name: strings.ToLower(strings.TrimSpace(d.Name)), Level: d.Level})
	}
	for _, s := range t.DegreeSignals {
		m.signals = append(m.signals, strings.ToLower(strings.TrimSpace(s)))
	}
	return m
}

// Match computes the weighted résumé/description score.
func (m *Matcher) Match(r domain.ResumeProfile, description string) domain.MatchResult {
	skills, matched := SkillsScore(r.Skills, description)
	exp := ExperienceScore(r.YearsExperience, description)
	edu := m.EducationScore(r.HighestDegree, description)
	kw := m.KeywordsScore(r.RawText, description)

	overall := skills*WeightSkills + exp*WeightExperience + edu*WeightEducation + kw*WeightKeywords

	return domain.MatchResult{
		OverallScore:    clamp(round1(overall)),
		SkillsScore:     round1(skills),
		ExperienceScore: round1(exp),
		EducationScore:  round1(edu),
		KeywordsScore:   round1(kw),
		MatchedSkills:   matched,
	}
}

// MatchPosting scores p, using "<title> at <company>" as context when the
// posting has no description.
func (m *Matcher) MatchPosting(r domain.ResumeProfile, p domain.Posting) domain.MatchResult {
	text := p.Description
	if strings.TrimSpace(text) == "" {
		text = p.Title
		if p.Company != "" {
			text += " at " + p.Company
		}
	}
	return m.Match(r, text)
}

// Rank returns copies of postings annotated with their MatchResult, best
// match first. Ties keep input order.
func (m *Matcher) Rank(r domain.ResumeProfile, postings []domain.Posting) []domain.Posting {
	out := make([]domain.Posting, len(postings))
	for i, p := range postings {
		res := m.MatchPosting(r, p)
		p.Match = &res
		out[i] = p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.OverallScore > out[j].Match.OverallScore
	})
	return out
}

// SkillsScore is the percentage of skills found as whole words in
// description, plus the matched skills in input order.
func SkillsScore(skills []string, description string) (float64, []string) {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	total := 0
	var matched []string
	for _, s := range skills {
		k := strings.ToLower(strings.TrimSpace(s))
		if k == "" {
			continue
		}
		total++
		if textmatch.ContainsTerm(text, k) {
			matched = append(matched, s)
		}
	}
	if total == 0 {
		return 0, nil
	}
	return float64(len(matched)) / float64(total) * 100, matched
}

// RequiredYears returns the largest stated years-of-experience figure, or
// false if the description states none.
func RequiredYears(description string) (int, bool) {
	text := strings.ToLower(description)
	best, found := 0, false
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if !found || n > best {
				best, found = n, true
			}
		}
	}
	return best, found
}

func ExperienceScore(years *int, description string) float64 {
	if strings.TrimSpace(description) == "" {
		return experienceNoDescription
	}
	required, ok := RequiredYears(description)
	if !ok {
		return experienceNoRequirement
	}
	if years == nil {
		return experienceUnknownYears
	}
	have := float64(*years)
	need := float64(required)
	switch {
	case have >= need:
		return 100
	case have >= need*0.75:
		return 80
	case have >= need*0.5:
		return 60
	default:
		return 40
	}
}

// DegreeLevel returns the highest hierarchy level named in text, 0 if none.
func (m *Matcher) DegreeLevel(text string) int {
	text = strings.ToLower(text)
	level := 0
	for _, d := range m.degrees {
		if d.Level > level && textmatch.ContainsTerm(text, d.Name) {
			level = d.Level
		}
	}
	return level
}

func (m *Matcher) EducationScore(degree, description string) float64 {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return educationNoDescription
	}
	if !textmatch.ContainsAnyTerm(text, m.signals) {
		return educationNoBar
	}
	if strings.TrimSpace(degree) == "" {
		return educationMissingDegree
	}
	required := m.DegreeLevel(text)
	if required == 0 {
		return educationUnparseable
	}
	have := m.DegreeLevel(degree)
	switch {
	case have >= required:
		return 100
	case have == required-1:
		return 70
	default:
		return 50
	}
}

// KeywordsScore is the cosine similarity of the word-frequency vectors of
// the two texts, scaled to [0,100].
func (m *Matcher) KeywordsScore(resumeText, description string) float64 {
	a := m.termFreq(resumeText)
	b := m.termFreq(description)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for w, x := range a {
		na += float64(x * x)
		if y, ok := b[w]; ok {
			dot += float64(x * y)
		}
	}
	for _, y := range b {
		nb += float64(y * y)
	}
	if dot == 0 || na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)) * 100)
}

func (m *Matcher) termFreq(text string) map[string]int {
	words := strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " "))
	out := map[string]int{}
	for _, w := range words {
		if m.stop[w] || utf8.RuneCountInString(w) <= 2 {
			continue
		}
		out[w]++
	}
	return out
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func clamp(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 100:
		return 100
	}
	return x
}

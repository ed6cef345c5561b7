package match

import (
	"testing"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher() *Matcher { return New(config.Default().Tables) }

func intp(n int) *int { return &n }

func TestSkillsScore(t *testing.T) {
	score, matched := SkillsScore([]string{"Python", "SQL"}, "Looking for a Python and SQL expert")
	assert.Equal(t, 100.0, score)
	assert.Equal(t, []string{"Python", "SQL"}, matched)

	score, matched = SkillsScore([]string{"Go", "Rust", "C++", "Java"}, "C++ and Go services; JavaScript a plus")
	assert.Equal(t, 50.0, score)
	assert.Equal(t, []string{"Go", "C++"}, matched)

	score, _ = SkillsScore(nil, "anything")
	assert.Zero(t, score)
	score, _ = SkillsScore([]string{"Python"}, "")
	assert.Zero(t, score)
}

func TestExperienceScore(t *testing.T) {
	desc := "We need 5+ years of experience building systems."
	tests := []struct {
		name  string
		years *int
		desc  string
		want  float64
	}{
		{"empty description", intp(10), "", 50},
		{"no requirement", intp(1), "Great team, great snacks.", 75},
		{"unknown years", nil, desc, 50},
		{"meets", intp(5), desc, 100},
		{"75 percent", intp(4), desc, 80},
		{"50 percent", intp(3), desc, 60},
		{"below half", intp(2), desc, 40},
		{"max of patterns", intp(5), "Minimum 3 years in finance, at least 7 years coding", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperienceScore(tt.years, tt.desc))
		})
	}
}

func TestRequiredYears(t *testing.T) {
	n, ok := RequiredYears("3 years experience or 10+ years of experience")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = RequiredYears("experience with years of data")
	assert.False(t, ok)
}

func TestEducationScore(t *testing.T) {
	m := newMatcher()
	tests := []struct {
		name, degree, desc string
		want               float64
	}{
		{"empty description", "BS", "", 70},
		{"no bar", "", "Strong C++ skills and teamwork.", 80},
		{"missing resume degree", "", "Bachelor's degree required.", 40},
		{"exceeds", "Master of Science", "Bachelor's degree in CS.", 100},
		{"one below", "BS", "Master's degree preferred.", 70},
		{"far below", "Bachelor", "PhD required.", 50},
		{"unparseable requirement", "BS", "Degree in a quantitative field.", 70},
		{"teams is not ms", "BA", "Work across teams; bachelor degree needed.", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.EducationScore(tt.degree, tt.desc))
		})
	}
}

func TestKeywordsScore(t *testing.T) {
	m := newMatcher()
	assert.InDelta(t, 100.0, m.KeywordsScore("Python developer", "python DEVELOPER!"), 1e-9)
	assert.Zero(t, m.KeywordsScore("python", "rust"))
	assert.Zero(t, m.KeywordsScore("", "python"))
	// stop words and short tokens are ignored
	assert.Zero(t, m.KeywordsScore("the and of go", "the and of go"))

	s := m.KeywordsScore("python sql trading", "python trading risk")
	assert.Greater(t, s, 0.0)
	assert.Less(t, s, 100.0)
}

func TestMatch_SkillsScenario(t *testing.T) {
	r := domain.ResumeProfile{Skills: []string{"Python", "SQL"}}
	got := newMatcher().Match(r, "Looking for a Python and SQL expert")

	assert.Equal(t, 100.0, got.SkillsScore)
	assert.Equal(t, []string{"Python", "SQL"}, got.MatchedSkills)
	assert.Equal(t, 75.0, got.ExperienceScore)
	assert.Equal(t, 80.0, got.EducationScore)
	assert.Zero(t, got.KeywordsScore)
	assert.InDelta(t, 70.8, got.OverallScore, 1e-9)
}

func TestMatch_MonotoneInSkills(t *testing.T) {
	m := newMatcher()
	desc := "Python, SQL and Kafka. 3+ years of experience. Bachelor degree."
	base := domain.ResumeProfile{YearsExperience: intp(3), HighestDegree: "BS", RawText: "python kafka"}

	prev := -1.0
	for _, skills := range [][]string{{"Haskell"}, {"Python", "Haskell"}, {"Python"}} {
		r := base
		r.Skills = skills
		got := m.Match(r, desc)
		assert.GreaterOrEqual(t, got.OverallScore, prev, "skills=%v", skills)
		prev = got.OverallScore
	}
}

func TestMatch_Bounds(t *testing.T) {
	m := newMatcher()
	r := domain.ResumeProfile{Skills: []string{"Go"}, YearsExperience: intp(20), HighestDegree: "PhD", RawText: "go distributed systems"}
	got := m.Match(r, "Go distributed systems. 2 years of experience. PhD.")
	assert.LessOrEqual(t, got.OverallScore, 100.0)
	assert.GreaterOrEqual(t, got.OverallScore, 0.0)

	empty := m.Match(domain.ResumeProfile{}, "")
	assert.Equal(t, 50.0, empty.ExperienceScore)
	assert.Equal(t, 70.0, empty.EducationScore)
	assert.InDelta(t, 23.0, empty.OverallScore, 1e-9)
}

func TestRank(t *testing.T) {
	m := newMatcher()
	r := domain.ResumeProfile{Skills: []string{"Python", "Rust"}, RawText: "python rust engineer"}
	in := []domain.Posting{
		{Title: "Office Manager", Company: "A", Description: "Keep the office running."},
		{Title: "Rust Engineer", Company: "B"},
		{Title: "Python Engineer", Company: "C", Description: "Python and Rust engineer wanted."},
	}
	got := m.Rank(r, in)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].Company)
	assert.Equal(t, "B", got[1].Company)
	assert.Equal(t, "A", got[2].Company)
	for _, p := range got {
		require.NotNil(t, p.Match)
	}
	assert.Equal(t, []string{"Rust"}, got[1].Match.MatchedSkills)
	assert.Nil(t, in[0].Match)
}

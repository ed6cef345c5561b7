// Package expand broadens a search phrase into related job titles using the
// curated role and tech tables, falling back to rule-based generation.
package expand

import (
	"strings"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/textmatch"
)

// generatedCap bounds the rule-based fallback regardless of the caller's max.
const generatedCap = 8

type Expander struct {
	roles        []config.Expansion
	tech         []config.Expansion
	roleVariants map[string][]string
	areas        []string
	techSignals  []string
	max          int
}

// New builds an Expander over t. Keys are normalized once here; the tables
// themselves are never modified.
func New(t config.Tables, maxExpansions int) *Expander {
	if maxExpansions <= 0 {
		maxExpansions = generatedCap
	}
	e := &Expander{
		roles:        normalizeKeys(t.Roles),
		tech:         normalizeKeys(t.Tech),
		roleVariants: make(map[string][]string, len(t.RoleVariants)),
		areas:        t.Areas,
		techSignals:  t.TechSignals,
		max:          maxExpansions,
	}
	for _, rv := range t.RoleVariants {
		e.roleVariants[textmatch.Normalize(rv.Key)] = rv.Variants
	}
	return e
}

func normalizeKeys(in []config.Expansion) []config.Expansion {
	out := make([]config.Expansion, 0, len(in))
	for _, x := range in {
		out = append(out, config.Expansion{Key: textmatch.Normalize(x.Key), Variants: x.Variants})
	}
	return out
}

// Expand returns at most the configured number of phrases related to term.
func (e *Expander) Expand(term string) []string {
	return e.ExpandN(term, e.max)
}

// ExpandN is Expand with an explicit limit.
func (e *Expander) ExpandN(term string, limit int) []string {
	norm := textmatch.Normalize(term)
	if norm == "" || limit <= 0 {
		return nil
	}

	// 1. curated role titles
	for _, r := range e.roles {
		if r.Key == norm {
			return head(r.Variants, limit)
		}
	}
	// 2. tech stack keywords, substring so "golang" finds "go"
	for _, t := range e.tech {
		if strings.Contains(norm, t.Key) {
			return head(t.Variants, limit)
		}
	}
	// 3. partial role match
	for _, r := range e.roles {
		if strings.Contains(norm, r.Key) || strings.Contains(r.Key, norm) {
			return head(r.Variants, limit)
		}
	}
	// 4. generated
	return head(e.generate(term), limit)
}

func (e *Expander) generate(term string) []string {
	original := strings.Join(strings.Fields(term), " ")
	lower := strings.ToLower(original)
	words := strings.Fields(original)

	out := []string{original}

	last := strings.ToLower(words[len(words)-1])
	if variants, ok := e.roleVariants[last]; ok {
		base := strings.Join(words[:len(words)-1], " ")
		for _, v := range variants {
			if base == "" {
				out = append(out, v)
			} else {
				out = append(out, base+" "+v)
			}
		}
	}

	hasEngineer := strings.Contains(lower, "engineer")
	hasDeveloper := strings.Contains(lower, "developer")

	if textmatch.ContainsAnyTerm(lower, e.techSignals) {
		if hasEngineer {
			out = append(out,
				strings.ReplaceAll(original, "Engineer", "Developer"),
				strings.ReplaceAll(original, "engineer", "developer"))
		}
		if hasDeveloper {
			out = append(out,
				strings.ReplaceAll(original, "Developer", "Engineer"),
				strings.ReplaceAll(original, "developer", "engineer"))
		}
	}

	if hasEngineer || hasDeveloper {
		for _, area := range e.areas {
			if !strings.Contains(lower, strings.ToLower(area)) {
				out = append(out, area+" "+original)
			}
		}
	}

	return head(dedupFold(out), generatedCap)
}

// ExpandMany expands every term with the configured per-term limit.
// See ExpandManyN.
func (e *Expander) ExpandMany(terms []string, maxTotal int) []string {
	return e.ExpandManyN(terms, e.max, maxTotal)
}

// ExpandManyN returns the trimmed original terms first, then expansions in
// input order, deduplicated case-insensitively. The result never exceeds
// maxTotal unless the originals alone already do; originals are never cut.
func (e *Expander) ExpandManyN(terms []string, perTerm, maxTotal int) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		k := strings.ToLower(s)
		if s == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, s)
	}

	var originals []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		originals = append(originals, t)
		add(t)
	}

	limit := maxTotal
	if len(out) > limit {
		limit = len(out)
	}

	for _, t := range originals {
		for _, x := range e.ExpandN(t, perTerm) {
			if len(out) >= limit {
				return out
			}
			add(x)
		}
	}
	return out
}

// Suggest lists related titles for term, excluding term itself.
func (e *Expander) Suggest(term string) []string {
	norm := textmatch.Normalize(term)
	if norm == "" {
		return nil
	}
	var cand []string
	for _, r := range e.roles {
		if r.Key == norm {
			cand = append(cand, r.Variants...)
		}
	}
	for _, r := range e.roles {
		if strings.Contains(norm, r.Key) || strings.Contains(r.Key, norm) {
			cand = append(cand, r.Variants...)
		}
	}

	var out []string
	for _, s := range dedupFold(cand) {
		if strings.ToLower(s) != norm {
			out = append(out, s)
		}
	}
	return head(out, generatedCap)
}

func dedupFold(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		k := strings.ToLower(x)
		if x == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, x)
	}
	return out
}

func head(xs []string, n int) []string {
	if len(xs) > n {
		xs = xs[:n]
	}
	out := make([]string, len(xs))
	copy(out, xs)
	return out
}

// Package textmatch holds the small lexical helpers shared by the expander
// and the scorers.
package textmatch

import (
	"strings"
	"unicode"
)

// ContainsTerm reports whether term occurs in text on word boundaries.
// Both are expected lower-cased. A boundary is only required on a side where
// the term itself starts/ends with a letter or digit, so "sr." and "c++"
// behave as expected.
func ContainsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	startWord := isWordByte(term[0])
	endWord := isWordByte(term[len(term)-1])

	from := 0
	for from <= len(text)-len(term) {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(term)

		okStart := !startWord || i == 0 || !isWordByte(text[i-1])
		okEnd := !endWord || end == len(text) || !isWordByte(text[end])
		if okStart && okEnd {
			return true
		}
		from = i + 1
	}
	return false
}

// ContainsAnyTerm is ContainsTerm over a list.
func ContainsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if ContainsTerm(text, t) {
			return true
		}
	}
	return false
}

// ContainsAny is a plain substring check over a list.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	if b >= 0x80 {
		return true
	}
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Normalize lower-cases, trims and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// LowerSet returns the lower-cased members of xs as a set.
func LowerSet(xs []string) map[string]bool {
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x != "" {
			out[x] = true
		}
	}
	return out
}

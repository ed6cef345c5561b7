package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const NoLocation = "Location not specified"

// LocationIn looks under sel for the first element whose class attribute
// contains "location", then for a "Location: ..." label in sel's text.
func LocationIn(sel *goquery.Selection) string {
	var loc string
	sel.Find("[class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		if strings.Contains(strings.ToLower(class), "location") {
			loc = NormalizeLocation(el.Text())
			return false
		}
		return true
	})
	if loc != "" {
		return loc
	}
	return NormalizeLocation(ExtractLocationFromLabeledText(sel.Text()))
}

// extracts after "Location" patterns in plain text
func ExtractLocationFromLabeledText(s string) string {
	low := strings.ToLower(s)

	// common label forms: "Location", "Locations", "Job Location"
	labels := []string{
		"job location:",
		"locations:",
		"location:",
	}

	for _, lab := range labels {
		if i := strings.Index(low, lab); i >= 0 {
			start := i + len(lab)
			if start > len(s) {
				continue
			}
			rest := strings.TrimSpace(s[start:])

			// stop at newline-ish boundaries if present
			for _, cut := range []string{"\n", "\r", " | ", " · "} {
				if j := strings.Index(rest, cut); j >= 0 {
					rest = rest[:j]
				}
			}

			rest = CleanText(rest)
			if rest != "" && len(rest) <= 80 {
				return rest
			}
		}
	}
	return ""
}

// Package custom extracts postings from free-form career pages by looking
// for repeated nodes whose class names suggest a job listing. Best effort.
package custom

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/types"
	"jobsearch-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	MaxCandidates = 50
	minTitleLen   = 10
)

// classHints are matched against the class attribute, in this order.
var classHints = []string{"job", "position", "role", "opening"}

var titleTags = []string{"h1", "h2", "h3", "h4", "a"}

type Adapter struct {
	client *util.Client
}

func New(client *util.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error) {
	doc, _, err := a.client.GetHTML(ctx, src.CareerPageURL)
	if err != nil {
		return nil, fmt.Errorf("career page: %w", err)
	}
	return Extract(doc, src, query), nil
}

// Extract runs the listing heuristics over an already parsed page.
func Extract(doc *goquery.Document, src domain.SourceDefinition, query string) []domain.Posting {
	seen := map[string]bool{}
	var out []domain.Posting

	for _, node := range candidates(doc) {
		title := titleOf(node)
		if title == "" || !util.MatchesQuery(title, query) {
			continue
		}
		if seen[title] {
			continue
		}
		seen[title] = true

		p := types.NewPosting(src)
		p.Title = title
		if href, ok := node.Find("a[href]").First().Attr("href"); ok {
			p.URL = util.ResolveAgainstOrigin(src.CareerPageURL, href)
		}
		if p.URL == "" {
			// Link-less cards all point at the career page; key them by title.
			p.URL = src.CareerPageURL
			p.DedupKey = util.TitleKey(p)
		}
		p.Location = util.LocationIn(node)
		if p.Location == "" {
			p.Location = util.NoLocation
		}
		out = append(out, p)
	}
	return out
}

// candidates returns up to MaxCandidates nodes: every classed element
// matching the first hint in document order, then the second hint, etc.
// A node can appear under more than one hint.
func candidates(doc *goquery.Document) []*goquery.Selection {
	classed := doc.Find("[class]")
	var out []*goquery.Selection
	for _, hint := range classHints {
		classed.EachWithBreak(func(_ int, el *goquery.Selection) bool {
			class, _ := el.Attr("class")
			if strings.Contains(strings.ToLower(class), hint) {
				out = append(out, el)
			}
			return len(out) < MaxCandidates
		})
		if len(out) >= MaxCandidates {
			break
		}
	}
	return out
}

// titleOf takes the text of the first h1..h4 or anchor under node that is
// longer than minTitleLen. If none is long enough the last non-empty one
// is kept.
func titleOf(node *goquery.Selection) string {
	title := ""
	for _, tag := range titleTags {
		el := node.Find(tag).First()
		if el.Length() == 0 {
			continue
		}
		t := util.CleanText(el.Text())
		if t == "" {
			continue
		}
		title = t
		if utf8.RuneCountInString(t) > minTitleLen {
			break
		}
	}
	return title
}

package greenhouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/types"
	"jobsearch-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const DefaultAPIBase = "https://boards-api.greenhouse.io/v1/boards"

var (
	scriptToken = regexp.MustCompile(`boards/([a-zA-Z0-9_-]+)`)
	pageToken   = regexp.MustCompile(`boards\.greenhouse\.io/([a-zA-Z0-9_-]+)`)
	embedFor    = regexp.MustCompile(`boards\.greenhouse\.io/embed/[^"'\s]*[?&]for=([a-zA-Z0-9_-]+)`)
)

// Adapter reads a company's career page, discovers its Greenhouse board
// token and lists the board through the public jobs API.
type Adapter struct {
	client  *util.Client
	apiBase string
}

func New(client *util.Client) *Adapter {
	return &Adapter{client: client, apiBase: DefaultAPIBase}
}

// WithAPIBase points the adapter at another jobs API root.
func (a *Adapter) WithAPIBase(base string) *Adapter {
	cp := *a
	cp.apiBase = strings.TrimRight(base, "/")
	return &cp
}

type boardJob struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	AbsoluteURL string   `json:"absolute_url"`
	UpdatedAt   string   `json:"updated_at"`
	Location    location `json:"location"`
}

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

// location is either {"name": "..."} or a bare string.
type location string

func (l *location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = location(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = location(obj.Name)
	return nil
}

func (a *Adapter) Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error) {
	doc, body, err := a.client.GetHTML(ctx, src.CareerPageURL)
	if err != nil {
		return nil, fmt.Errorf("greenhouse career page: %w", err)
	}

	token := DiscoverToken(doc, body)
	if token == "" {
		return nil, nil
	}

	apiURL := fmt.Sprintf("%s/%s/jobs", a.apiBase, url.PathEscape(token))
	var resp boardResponse
	if err := a.client.GetJSON(ctx, apiURL, &resp); err != nil {
		return nil, fmt.Errorf("greenhouse board %s: %w", token, err)
	}

	out := make([]domain.Posting, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		title := util.CleanText(j.Title)
		if title == "" || !util.MatchesQuery(title, query) {
			continue
		}
		p := types.NewPosting(src)
		p.Title = title
		p.Location = util.NormalizeLocation(string(j.Location))
		p.URL = strings.TrimSpace(j.AbsoluteURL)
		if t, err := time.Parse(time.RFC3339, j.UpdatedAt); err == nil {
			p.PostedAt = &t
		}
		out = append(out, p)
	}
	return out, nil
}

// DiscoverToken finds the board token, first in inline scripts that mention
// greenhouse and then anywhere in the page source.
func DiscoverToken(doc *goquery.Document, page []byte) string {
	var token string
	if doc != nil {
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if !strings.Contains(strings.ToLower(text), "greenhouse") {
				return true
			}
			if m := scriptToken.FindStringSubmatch(text); m != nil {
				token = m[1]
				return false
			}
			return true
		})
	}
	if token == "" {
		if m := pageToken.FindSubmatch(page); m != nil {
			token = string(m[1])
		}
	}
	if token == "embed" {
		token = ""
		if m := embedFor.FindSubmatch(page); m != nil {
			token = string(m[1])
		}
	}
	return token
}

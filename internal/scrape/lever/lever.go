package lever

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/types"
	"jobsearch-engine/internal/scrape/util"
)

const DefaultAPIBase = "https://api.lever.co/v0/postings"

// Adapter lists a company's postings through the public Lever API. The
// company slug is the first label of the career page host.
type Adapter struct {
	client  *util.Client
	apiBase string
}

func New(client *util.Client) *Adapter {
	return &Adapter{client: client, apiBase: DefaultAPIBase}
}

func (a *Adapter) WithAPIBase(base string) *Adapter {
	cp := *a
	cp.apiBase = strings.TrimRight(base, "/")
	return &cp
}

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	Description      string `json:"description"` // html
	DescriptionPlain string `json:"descriptionPlain"`
}

// Slug derives the Lever company slug from a career page URL:
// https://www.gtsx.com/careers -> "gtsx".
func Slug(careerURL string) string {
	u, err := url.Parse(strings.TrimSpace(careerURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "jobs.lever.co" {
		return strings.Split(strings.Trim(u.Path, "/"), "/")[0]
	}
	label, _, _ := strings.Cut(host, ".")
	return label
}

func (a *Adapter) Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error) {
	slug := Slug(src.CareerPageURL)
	if slug == "" {
		return nil, fmt.Errorf("lever: no slug in %q", src.CareerPageURL)
	}

	apiURL := fmt.Sprintf("%s/%s?mode=json", a.apiBase, url.PathEscape(slug))
	var postings []leverPosting
	if err := a.client.GetJSON(ctx, apiURL, &postings); err != nil {
		return nil, fmt.Errorf("lever %s: %w", slug, err)
	}

	out := make([]domain.Posting, 0, len(postings))
	for _, lp := range postings {
		title := util.CleanText(lp.Text)
		if title == "" || !util.MatchesQuery(title, query) {
			continue
		}
		p := types.NewPosting(src)
		p.Title = title
		p.Location = util.NormalizeLocation(lp.Categories.Location)
		p.URL = strings.TrimSpace(lp.HostedURL)
		if lp.CreatedAt > 0 {
			t := time.UnixMilli(lp.CreatedAt).UTC()
			p.PostedAt = &t
		}
		p.Description = strings.TrimSpace(lp.DescriptionPlain)
		if p.Description == "" {
			p.Description = lp.Description
		}
		out = append(out, p)
	}
	return out, nil
}

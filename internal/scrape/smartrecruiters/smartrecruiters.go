package smartrecruiters

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

const (
	DefaultAPIBase = "https://api.smartrecruiters.com/v1/companies"
	pageSize       = 100
	maxOffset      = 5000
)

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

// Response schema (public API) is typically:
// { "content": [...], "totalFound": N, "offset": O, "limit": L }
// but only the fields below are decoded.
type postingsResponse struct {
	Content    []posting `json:"content"`
	TotalFound int       `json:"totalFound"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
}

type posting struct {
	ID           string    `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	ReleasedDate time.Time `json:"releasedDate"`
	Ref          string    `json:"ref"`
	Location     struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
	} `json:"location"`
}

// Slug extracts the company identifier from
// https://jobs.smartrecruiters.com/<slug> (or careers.), else the first
// host label.
func Slug(careerURL string) string {
	u, err := url.Parse(strings.TrimSpace(careerURL))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if strings.HasSuffix(host, "smartrecruiters.com") {
		if seg := strings.Split(strings.Trim(u.Path, "/"), "/")[0]; seg != "" {
			return seg
		}
	}
	label, _, _ := strings.Cut(host, ".")
	return label
}

func (a *Adapter) Fetch(ctx context.Context, src domain.SourceDefinition, query string) ([]domain.Posting, error) {
	slug := Slug(src.CareerPageURL)
	if slug == "" {
		return nil, fmt.Errorf("smartrecruiters: no slug in %q", src.CareerPageURL)
	}

	base := fmt.Sprintf("%s/%s/postings", a.apiBase, url.PathEscape(slug))
	var out []domain.Posting

	for offset := 0; offset <= maxOffset; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u := fmt.Sprintf("%s?limit=%d&offset=%d", base, pageSize, offset)
		var pr postingsResponse
		if err := a.client.GetJSON(ctx, u, &pr); err != nil {
			return nil, fmt.Errorf("smartrecruiters %s: %w", slug, err)
		}
		if len(pr.Content) == 0 {
			break
		}

		for _, sp := range pr.Content {
			title := util.CleanText(sp.Name)
			id := strings.TrimSpace(firstNonEmpty(sp.ID, sp.UUID, sp.Ref))
			if title == "" || id == "" || !util.MatchesQuery(title, query) {
				continue
			}

			p := types.NewPosting(src)
			p.Title = title
			p.URL = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", slug, id)
			p.Location = util.NormalizeLocation(strings.Join(nonEmpty(sp.Location.City, sp.Location.Region, sp.Location.Country), ", "))
			if sp.Location.Remote && !strings.Contains(strings.ToLower(p.Location), "remote") {
				p.Location = strings.TrimPrefix(p.Location+", Remote", ", ")
			}
			if !sp.ReleasedDate.IsZero() {
				posted := sp.ReleasedDate
				p.PostedAt = &posted
			}
			out = append(out, p)
		}

		if pr.TotalFound > 0 && offset+pageSize >= pr.TotalFound {
			break
		}
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"jobsearch-engine/internal/boards"
	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape"
	"jobsearch-engine/internal/scrape/types"
	"jobsearch-engine/internal/scrape/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoards struct {
	mu     sync.Mutex
	calls  []boards.Query
	bySite map[string][]domain.Posting
	fail   map[string]bool
}

func (f *fakeBoards) Scrape(_ context.Context, q boards.Query) ([]domain.Posting, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.fail[q.Site] {
		return nil, errors.New("blocked")
	}
	out := make([]domain.Posting, len(f.bySite[q.Site]))
	copy(out, f.bySite[q.Site])
	for i := range out {
		out[i].SourceID = q.Site
		out[i].SourceKind = domain.SourceGenericBoard
	}
	return out, nil
}

func (f *fakeBoards) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func post(title, url string) domain.Posting {
	return domain.Posting{Title: title, Company: "Acme", URL: url}
}

func newService(fb *fakeBoards, companies Companies) *Service {
	var b boards.Scraper
	if fb != nil {
		b = fb
	}
	return New(config.Default(), companies, b, nil)
}

func TestSearch_ValidationBeforeFetch(t *testing.T) {
	fb := &fakeBoards{}
	svc := newService(fb, nil)

	cases := []struct {
		name  string
		req   Request
		field string
	}{
		{"no terms", Request{Location: "Austin, TX"}, "terms"},
		{"blank terms", Request{Terms: []string{" ", ""}, Location: "Austin, TX"}, "terms"},
		{"no location", Request{Terms: []string{"swe"}}, "location"},
		{"bad site", Request{Terms: []string{"swe"}, Location: "NYC", Sites: []string{"monster"}}, "sites[0]"},
		{"too many results", Request{Terms: []string{"swe"}, Location: "NYC", ResultsWanted: 101}, "results_wanted"},
		{"negative distance", Request{Terms: []string{"swe"}, Location: "NYC", Distance: ptr(-1)}, "distance"},
		{"threshold above one", Request{Terms: []string{"swe"}, Location: "NYC", Threshold: ptr(1.5)}, "threshold"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.req)
			require.Error(t, err)
			require.True(t, domain.IsValidation(err))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Zero(t, fb.callCount())
}

func TestSearch_DefaultsAndFanOut(t *testing.T) {
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"linkedin": {post("Backend Engineer", "https://linkedin.com/jobs/view/1")},
		"indeed":   {post("Backend Engineer", "https://linkedin.com/jobs/view/1?utm_source=indeed"), post("Platform Engineer", "https://indeed.com/viewjob?jk=9")},
	}}
	svc := newService(fb, nil)

	res, err := svc.Search(context.Background(), Request{
		Terms:    []string{"backend engineer", "platform engineer"},
		Location: "Remote",
	})
	require.NoError(t, err)

	// 2 terms × default sites (linkedin, indeed)
	assert.Equal(t, 4, fb.callCount())
	for _, q := range fb.calls {
		assert.Equal(t, 20, q.ResultsWanted)
		assert.Equal(t, 50, q.Distance)
		assert.Equal(t, "Remote", q.Location)
	}

	assert.Equal(t, map[string]int{"backend engineer": 3, "platform engineer": 3}, res.CountsByTerm)
	assert.Equal(t, []string{"linkedin", "indeed"}, res.SourcesQueried)
	assert.Empty(t, res.SourcesFailed)
	require.Len(t, res.Postings, 2)
	assert.Equal(t, "linkedin", res.Postings[0].SourceID)
	assert.Equal(t, "https://indeed.com/viewjob?jk=9", res.Postings[1].URL)
	assert.Empty(t, res.Message)
	assert.NoError(t, res.Err())
}

func TestSearch_FullTimeGate(t *testing.T) {
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"linkedin": {
			post("Senior Python Developer", "https://example.com/1"),
			post("Python Developer", "https://example.com/2"),
			post("Python Developer Intern", "https://example.com/3"),
			post("Python Developer (W2 only)", "https://example.com/4"),
			post("Java Engineer", "https://example.com/5"),
		},
	}}
	svc := newService(fb, nil)

	res, err := svc.Search(context.Background(), Request{
		Terms: []string{"python developer"}, Location: "NYC",
		Sites: []string{"LinkedIn"}, JobType: "fulltime",
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 1)
	assert.Equal(t, "Python Developer", res.Postings[0].Title)
	assert.Equal(t, 1.0, res.Postings[0].RelevanceScore)

	res, err = svc.Search(context.Background(), Request{
		Terms: []string{"senior python developer"}, Location: "NYC",
		Sites: []string{"linkedin"}, JobType: "full-time",
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 2)
	assert.Equal(t, "Senior Python Developer", res.Postings[0].Title)
	assert.Equal(t, "Python Developer", res.Postings[1].Title)
	assert.Equal(t, 0.9, res.Postings[1].RelevanceScore)
}

func TestSearch_DefaultSearchDropsStaffingAndUnrelated(t *testing.T) {
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"linkedin": {
			post("Python Developer - C2C only", "https://example.com/c2c"),
			post("Cook", "https://example.com/cook"),
			post("Python Developer", "https://example.com/py"),
		},
	}}
	res, err := newService(fb, nil).Search(context.Background(), Request{
		Terms: []string{"python developer"}, Location: "NYC", Sites: []string{"linkedin"},
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 1)
	assert.Equal(t, "Python Developer", res.Postings[0].Title)
	assert.Equal(t, 1.0, res.Postings[0].RelevanceScore)
	assert.Equal(t, 3, res.CountsByTerm["python developer"])
}

func TestSearch_ExperienceLevels(t *testing.T) {
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"indeed": {
			{Title: "Data Engineer", URL: "https://example.com/1", Description: "2 years of experience with Spark."},
			{Title: "Data Engineer II", URL: "https://example.com/2", Description: "Minimum 8 years in data platforms."},
			{Title: "Senior Data Engineer", URL: "https://example.com/3", JobLevel: "Entry_Level"},
		},
	}}
	svc := newService(fb, nil)
	res, err := svc.Search(context.Background(), Request{
		Terms: []string{"data engineer"}, Location: "Remote", Sites: []string{"indeed"},
		ExperienceLevels: []string{"1-3"},
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 2)
	assert.Equal(t, "Data Engineer", res.Postings[0].Title)
	assert.Equal(t, "Senior Data Engineer", res.Postings[1].Title)

	_, err = svc.Search(context.Background(), Request{
		Terms: []string{"data engineer"}, Location: "Remote", ExperienceLevels: []string{"10+"},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "experience_levels[0]", ve.Field)
}

func TestSearch_FailuresAndMessages(t *testing.T) {
	t.Run("partial failure", func(t *testing.T) {
		fb := &fakeBoards{
			bySite: map[string][]domain.Posting{"linkedin": {post("Quant Developer", "https://example.com/q")}},
			fail:   map[string]bool{"indeed": true},
		}
		res, err := newService(fb, nil).Search(context.Background(), Request{Terms: []string{"quant"}, Location: "Chicago"})
		require.NoError(t, err)
		assert.Len(t, res.Postings, 1)
		assert.Equal(t, []string{"indeed"}, res.SourcesFailed)
	})

	t.Run("all failed", func(t *testing.T) {
		fb := &fakeBoards{fail: map[string]bool{"linkedin": true, "indeed": true}}
		res, err := newService(fb, nil).Search(context.Background(), Request{Terms: []string{"quant"}, Location: "Chicago"})
		require.NoError(t, err)
		assert.Empty(t, res.Postings)
		assert.Equal(t, MsgAllUnavailable, res.Message)
		assert.ErrorIs(t, res.Err(), domain.ErrNoResults)
	})

	t.Run("nothing configured", func(t *testing.T) {
		res, err := newService(nil, nil).Search(context.Background(), Request{Terms: []string{"quant"}, Location: "Chicago"})
		require.NoError(t, err)
		assert.NotNil(t, res.Postings)
		assert.Equal(t, MsgNoSources, res.Message)
	})

	t.Run("no matches", func(t *testing.T) {
		fb := &fakeBoards{bySite: map[string][]domain.Posting{"linkedin": {post("Barista", "https://example.com/b")}}}
		res, err := newService(fb, nil).Search(context.Background(), Request{
			Terms: []string{"quant researcher"}, Location: "Chicago", Threshold: ptr(0.5),
		})
		require.NoError(t, err)
		assert.Empty(t, res.Postings)
		assert.Equal(t, MsgNoMatches, res.Message)
		assert.Equal(t, 1, res.CountsByTerm["quant researcher"])
	})
}

func TestSearch_IncludeCompanies(t *testing.T) {
	reg := scrape.New([]domain.SourceDefinition{
		{ID: "hrt", DisplayName: "Hudson River Trading", CareerPageURL: "https://hrt.example.com", ATSKind: domain.ATSGreenhouse, Category: "Prop Trading"},
		{ID: "citadel", DisplayName: "Citadel", CareerPageURL: "https://citadel.example.com", ATSKind: domain.ATSLever, Category: "Hedge Fund"},
	}, util.NewClient(config.HTTPConfig{TimeoutSeconds: 5}, nil),
		scrape.WithAdapter(domain.ATSGreenhouse, types.AdapterFunc(func(_ context.Context, src domain.SourceDefinition, q string) ([]domain.Posting, error) {
			p := types.NewPosting(src)
			p.Title, p.URL = "Software Engineer", "https://boards.greenhouse.io/hrt/jobs/7"
			return []domain.Posting{p}, nil
		})),
		scrape.WithAdapter(domain.ATSLever, types.AdapterFunc(func(context.Context, domain.SourceDefinition, string) ([]domain.Posting, error) {
			return nil, errors.New("timeout")
		})),
	)
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"linkedin": {post("Software Engineer", "https://boards.greenhouse.io/hrt/jobs/7")},
	}}
	svc := newService(fb, reg)

	res, err := svc.Search(context.Background(), Request{
		Terms: []string{"software engineer"}, Location: "NYC", Sites: []string{"linkedin"},
		IncludeCompanies: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"linkedin", "hrt", "citadel"}, res.SourcesQueried)
	assert.Equal(t, []string{"citadel"}, res.SourcesFailed)
	require.Len(t, res.Postings, 1)
	assert.Equal(t, "linkedin", res.Postings[0].SourceID)

	res, err = svc.Search(context.Background(), Request{
		Terms: []string{"software engineer"}, Location: "NYC", Sites: []string{"linkedin"},
		IncludeCompanies: true, Categories: []string{"Hedge Fund"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"linkedin", "citadel"}, res.SourcesQueried)
}

func TestSearch_ResumeReranks(t *testing.T) {
	fb := &fakeBoards{bySite: map[string][]domain.Posting{
		"linkedin": {
			{Title: "Engineer A", URL: "https://example.com/a", Description: "Java and Spring services."},
			{Title: "Engineer B", URL: "https://example.com/b", Description: "Python and SQL pipelines. 3+ years of experience. Bachelor's degree."},
		},
	}}
	years := 4
	res, err := newService(fb, nil).Search(context.Background(), Request{
		Terms: []string{"engineer"}, Location: "NYC", Sites: []string{"linkedin"},
		Resume: &domain.ResumeProfile{Skills: []string{"Python", "SQL"}, YearsExperience: &years, HighestDegree: "Bachelor of Science"},
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 2)
	assert.Equal(t, "Engineer B", res.Postings[0].Title)
	require.NotNil(t, res.Postings[0].Match)
	assert.Equal(t, 100.0, res.Postings[0].Match.SkillsScore)
	assert.GreaterOrEqual(t, res.Postings[0].Match.OverallScore, res.Postings[1].Match.OverallScore)
}

func TestSearch_ExpandTerms(t *testing.T) {
	fb := &fakeBoards{}
	res, err := newService(fb, nil).Search(context.Background(), Request{
		Terms: []string{"Software Engineer"}, Location: "NYC", Sites: []string{"indeed"}, Expand: true,
	})
	require.NoError(t, err)
	require.Greater(t, len(res.Terms), 1)
	assert.Equal(t, "Software Engineer", res.Terms[0])
	assert.LessOrEqual(t, len(res.Terms), 6)
	assert.Equal(t, len(res.Terms), fb.callCount())
}

func TestExpand(t *testing.T) {
	svc := newService(nil, nil)

	_, err := svc.Expand([]string{"  "})
	assert.True(t, domain.IsValidation(err))

	got, err := svc.Expand([]string{"software engineer", "data scientist", "python", "devops", "machine learning"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 15)
	assert.Equal(t, []string{"software engineer", "data scientist", "python", "devops", "machine learning"}, got[:5])

	sugg, err := svc.Suggest("software engineer")
	require.NoError(t, err)
	assert.NotContains(t, sugg, "software engineer")
	_, err = svc.Suggest("")
	assert.True(t, domain.IsValidation(err))
}

func TestScrapeSource(t *testing.T) {
	reg := scrape.New([]domain.SourceDefinition{
		{ID: "fidelity", DisplayName: "Fidelity", CareerPageURL: "https://jobs.fidelity.com", ATSKind: domain.ATSUnsupported, Category: "Asset Manager"},
	}, util.NewClient(config.HTTPConfig{TimeoutSeconds: 5}, nil))
	svc := newService(nil, reg)

	_, err := svc.ScrapeSource(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)

	got, err := svc.ScrapeSource(context.Background(), "fidelity", "engineer")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Len(t, svc.ListSources(), 1)
	assert.Len(t, svc.SourcesByCategory()["Asset Manager"], 1)
	assert.Empty(t, svc.ScrapeAllSources(context.Background(), "", nil))
}

func TestMatch(t *testing.T) {
	svc := newService(nil, nil)
	_, err := svc.Match(nil, []domain.Posting{post("x", "")})
	assert.True(t, domain.IsValidation(err))

	got, err := svc.Match(&domain.ResumeProfile{Skills: []string{"Go"}}, []domain.Posting{
		{Title: "Rust Engineer", Description: "Rust systems work"},
		{Title: "Go Engineer", Description: "Go services and Kubernetes"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Go Engineer", got[0].Title)
}

func ptr[T any](v T) *T { return &v }

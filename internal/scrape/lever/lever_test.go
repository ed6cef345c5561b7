package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "gtsx", Slug("https://gtsx.com/careers"))
	assert.Equal(t, "gtsx", Slug("https://www.GTSX.com/careers"))
	assert.Equal(t, "acme", Slug("https://jobs.lever.co/acme/123"))
	assert.Equal(t, "", Slug("not a url"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/postings/gtsx", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
		w.Write([]byte(`[
			{"id":"a","text":"Quant Developer","hostedUrl":"https://jobs.lever.co/gtsx/a","createdAt":1714564800000,
			 "categories":{"location":"New York, NY"},"descriptionPlain":"Build things","description":"<p>Build things</p>"},
			{"id":"b","text":"Operations Analyst","hostedUrl":"https://jobs.lever.co/gtsx/b","categories":{"location":"Chicago"},"description":"<p>Ops</p>"}
		]`))
	}))
	defer srv.Close()

	a := New(util.NewClient(config.HTTPConfig{TimeoutSeconds: 2}, nil)).WithAPIBase(srv.URL + "/v0/postings")
	src := domain.SourceDefinition{ID: "gts", DisplayName: "GTS", CareerPageURL: "https://gtsx.com/careers", ATSKind: domain.ATSLever, Category: "Prop Trading"}

	got, err := a.Fetch(context.Background(), src, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Quant Developer", got[0].Title)
	assert.Equal(t, "New York, NY", got[0].Location)
	assert.Equal(t, "Build things", got[0].Description)
	require.NotNil(t, got[0].PostedAt)
	assert.Equal(t, int64(1714564800000), got[0].PostedAt.UnixMilli())
	assert.Equal(t, "<p>Ops</p>", got[1].Description)
	assert.Nil(t, got[1].PostedAt)
	assert.Equal(t, domain.SourceStructuredATS, got[1].SourceKind)

	got, err = a.Fetch(context.Background(), src, "ANALYST")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Operations Analyst", got[0].Title)
}

func TestFetch_DecodeErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	a := New(util.NewClient(config.HTTPConfig{TimeoutSeconds: 2}, nil)).WithAPIBase(srv.URL)
	_, err := a.Fetch(context.Background(), domain.SourceDefinition{ID: "x", CareerPageURL: "https://x.com"}, "")
	assert.Error(t, err)
}

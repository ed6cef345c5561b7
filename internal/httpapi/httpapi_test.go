package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobsearch-engine/internal/boards"
	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/scrape"
	"jobsearch-engine/internal/scrape/util"
	"jobsearch-engine/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubBoards struct{}

func (stubBoards) Scrape(_ context.Context, q boards.Query) ([]domain.Posting, error) {
	return []domain.Posting{{
		Title:      "Backend Engineer",
		Company:    "Acme",
		URL:        "https://" + q.Site + ".example.com/1",
		SourceID:   q.Site,
		SourceKind: domain.SourceGenericBoard,
	}}, nil
}

func newTestHandler(t *testing.T, log *zap.Logger) http.Handler {
	t.Helper()
	cfg := config.Default()
	reg := scrape.New([]domain.SourceDefinition{
		{ID: "fidelity", DisplayName: "Fidelity", CareerPageURL: "https://jobs.fidelity.com", ATSKind: domain.ATSUnsupported, Category: "Asset Manager"},
	}, util.NewClient(cfg.HTTP, nil))
	svc := search.New(cfg, reg, stubBoards{}, nil)
	return NewHandler(Deps{Service: svc, Log: log, Config: cfg})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func errorOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %v", body)
	return e
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, nil)
	rec, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodPost, "/search", `{"terms":["backend engineer"],"location":"Austin, TX"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["jobs_count"])
	assert.Len(t, body["jobs"], 2)
	assert.Contains(t, body, "jobs_by_term")

	rec, body = do(t, h, http.MethodPost, "/search", `{"terms":["backend engineer"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := errorOf(t, body)
	assert.Equal(t, "validation_error", e["code"])
	assert.Equal(t, "location", e["field"])
	assert.NotEmpty(t, e["request_id"])

	rec, body = do(t, h, http.MethodPost, "/search", `{"terms":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body", errorOf(t, body)["field"])

	rec, _ = do(t, h, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSourcesEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodGet, "/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	cats := body["categories"].(map[string]any)
	assert.Contains(t, cats, "Asset Manager")

	rec, body = do(t, h, http.MethodPost, "/sources/nope/jobs", `{"search_term":"engineer"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_source", errorOf(t, body)["code"])

	rec, body = do(t, h, http.MethodPost, "/sources/fidelity/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fidelity", body["source_id"])
	assert.EqualValues(t, 0, body["jobs_count"])
	assert.NotNil(t, body["jobs"])

	rec, _ = do(t, h, http.MethodPost, "/sources/fidelity", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, h, http.MethodPost, "/scrape-companies", `{"search_term":"engineer","categories":["Asset Manager"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["jobs_count"])
}

func TestExpandEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodPost, "/expand-keywords", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "keywords", errorOf(t, body)["field"])

	rec, body = do(t, h, http.MethodPost, "/expand-keywords", `{"keywords":["software engineer","python"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	expanded := body["expanded"].([]any)
	assert.Equal(t, "software engineer", expanded[0])
	assert.Equal(t, "python", expanded[1])
	assert.LessOrEqual(t, len(expanded), 15)

	rec, body = do(t, h, http.MethodGet, "/suggest?keyword=data+scientist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "suggestions")
}

func TestMatchEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodPost, "/match", `{"jobs":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "resume", errorOf(t, body)["field"])

	rec, body = do(t, h, http.MethodPost, "/match", `{
		"resume":{"skills":["Python","SQL"]},
		"jobs":[
			{"title":"Java Dev","description":"Java and Spring"},
			{"title":"Data Eng","description":"Python and SQL pipelines"}
		]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 2)
	first := jobs[0].(map[string]any)
	assert.Equal(t, "Data Eng", first["title"])
	m := first["match"].(map[string]any)
	assert.EqualValues(t, 100, m["skills_score"])
}

func TestConfigEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, body := do(t, h, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "sources")

	rec, body = do(t, h, http.MethodGet, "/config/validate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["errors"])
}

func TestRecoverAndAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") })
	h := Chain(boom, RequestID, AccessLog(log), Recover(log))

	rec, body := do(t, h, http.MethodGet, "/anything", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", errorOf(t, body)["code"])

	require.Equal(t, 1, logs.FilterMessage("panic").Len())
	access := logs.FilterMessage("http").All()
	require.Len(t, access, 1)
	assert.EqualValues(t, http.StatusInternalServerError, access[0].ContextMap()["status"])
	assert.NotEmpty(t, access[0].ContextMap()["request_id"])
}

func TestCorsPreflight(t *testing.T) {
	h := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

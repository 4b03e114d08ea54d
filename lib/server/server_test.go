package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlewis84/weekly-summary/lib/caches"
	"github.com/nlewis84/weekly-summary/lib/charts"
	"github.com/nlewis84/weekly-summary/lib/github"
	"github.com/nlewis84/weekly-summary/lib/transcripts"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// summariesBackend serves just enough of the GitHub contents API for the
// routes under test: one directory with one structured summary.
func summariesBackend(t *testing.T) *httptest.Server {
	t.Helper()

	summary := `{
		"meta": {"week_ending": "2026-01-31T23:59:59.999Z"},
		"stats": {"prs_merged": 3, "pr_reviews": 5, "repos": ["apollos-admin"]}
	}`
	encoded := base64.StdEncoding.EncodeToString([]byte(summary))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/contents/summaries", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"name": "2026-01-31.json", "path": "summaries/2026-01-31.json", "type": "file"},
		})
	})
	mux.HandleFunc("/repos/o/r/contents/summaries/2026-01-31.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content":  encoded,
			"encoding": "base64",
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})

	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	return backend
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	backend := summariesBackend(t)

	cache := caches.NewTTL(caches.DefaultTTL)
	store, err := github.NewStore(&github.StoreOptions{
		Repo:   "o/r",
		Token:  "t",
		Dirs:   []string{"summaries"},
		APIURL: backend.URL,
	}, github.NewTransport(), transcripts.NewParser(), cache)
	require.NoError(t, err)

	s := newServer(store, charts.New(store, cache), nil)

	return s.createRouter()
}

func doGet(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestHistoryList(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/history")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"weeks": ["2026-01-31"]}`, w.Body.String())
}

func TestHistoryWeek(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/history/2026-01-31")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Payload struct {
			Meta struct {
				WeekEnding string `json:"week_ending"`
			} `json:"meta"`
			Stats struct {
				PRsMerged int `json:"prs_merged"`
			} `json:"stats"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-01-31T23:59:59.999Z", body.Payload.Meta.WeekEnding)
	assert.Equal(t, 3, body.Payload.Stats.PRsMerged)
}

func TestHistoryWeekInvalidFormat(t *testing.T) {
	r := newTestRouter(t)

	for _, week := range []string{"not-a-week", "2026-1-31", "2026-01-31T00"} {
		w := doGet(r, "/api/history/"+week)

		assert.Equal(t, http.StatusBadRequest, w.Code, week)
		assert.Contains(t, w.Body.String(), "invalid week format")
	}
}

func TestHistoryWeekMissing(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/history/2026-02-14")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartsData(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/charts")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dataPoints"`)
	assert.Contains(t, w.Body.String(), `"repoActivity"`)
	assert.Contains(t, w.Body.String(), `"2026-01-31"`)
}

func TestChartsAnnual(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/annual/2026")

	assert.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Year  string   `json:"year"`
		Weeks []string `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "2026", stats.Year)
	assert.Equal(t, []string{"2026-01-31"}, stats.Weeks)
}

func TestChartsAnnualInvalidYear(t *testing.T) {
	r := newTestRouter(t)

	for _, year := range []string{"26", "20261", "abcd"} {
		w := doGet(r, "/api/annual/"+year)

		assert.Equal(t, http.StatusBadRequest, w.Code, year)
		assert.Contains(t, w.Body.String(), "invalid year")
	}
}

func TestChartsYears(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/years")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"years": ["2026"]}`, w.Body.String())
}

func TestQuotaUnavailable(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/quota")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"github": null}`, w.Body.String())
}

func TestBustQueryParam(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/history?bust=true")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/api/history/2026-01-31?bust=true")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/api/charts?bust=true")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestRouter(t)

	w := doGet(r, "/api/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "error"))
}

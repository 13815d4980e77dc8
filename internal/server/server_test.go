package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-nextdoor-leads/internal/metrics"
	"go-nextdoor-leads/internal/models"
	"go-nextdoor-leads/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRunner struct {
	report *models.RunReport
	err    error
	ctxErr error
}

func (m *mockRunner) RunOnce(ctx context.Context) (*models.RunReport, error) {
	m.ctxErr = ctx.Err()
	return m.report, m.err
}

type mockHistory struct {
	runs  []models.RunReport
	err   error
	limit int
}

func (m *mockHistory) RecentRuns(ctx context.Context, limit int) ([]models.RunReport, error) {
	m.limit = limit
	return m.runs, m.err
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func sampleReport() *models.RunReport {
	at := time.Date(2026, 10, 16, 9, 31, 2, 345_000_000, time.UTC)
	return &models.RunReport{
		ID:      uuid.New(),
		Source:  "Nextdoor",
		Status:  models.StatusSucceeded,
		Matches: []scraper.Match{scraper.NewMatch("Nextdoor", "My leaky pipe", "leaky pipe", at)},
	}
}

func TestHealth(t *testing.T) {
	w := get(t, New(&mockRunner{}), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRunScraper_Success(t *testing.T) {
	w := get(t, New(&mockRunner{report: sampleReport()}), "/run-scraper")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Message string          `json:"message"`
		Matches []scraper.Match `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Scraper ran successfully!", body.Message)
	assert.Equal(t, []scraper.Match{{
		Source:    "Nextdoor",
		Post:      "My leaky pipe",
		Keyword:   "leaky pipe",
		Timestamp: "2026-10-16T09:31:02.345Z",
	}}, body.Matches)
}

func TestRunScraper_NoMatchesIsEmptyArray(t *testing.T) {
	report := sampleReport()
	report.Matches = []scraper.Match{}
	w := get(t, New(&mockRunner{report: report}), "/run-scraper")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Scraper ran successfully!","matches":[]}`, w.Body.String())
}

func TestRunScraper_Failure(t *testing.T) {
	runner := &mockRunner{
		report: &models.RunReport{Status: models.StatusFailed},
		err:    fmt.Errorf("%w: login: %w", scraper.ErrLoginTimeout, errors.New("timeout")),
	}
	w := get(t, New(runner), "/run-scraper")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Scraper failed to run."}`, w.Body.String())
}

func TestRunScraper_InProgress(t *testing.T) {
	w := get(t, New(&mockRunner{err: scraper.ErrRunInProgress}), "/run-scraper")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already running")
}

func TestRunScraper_ClientHangupDoesNotCancelRun(t *testing.T) {
	runner := &mockRunner{report: sampleReport()}
	s := New(runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/run-scraper", nil).WithContext(ctx)
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.NoError(t, runner.ctxErr)
}

func TestStatus(t *testing.T) {
	w := get(t, New(&mockRunner{}, WithStatus(func() string { return "extracting" })), "/status")
	assert.JSONEq(t, `{"state":"extracting"}`, w.Body.String())

	w = get(t, New(&mockRunner{}), "/status")
	assert.JSONEq(t, `{"state":"unknown"}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	m.RunFinished(metrics.RunSuccess, time.Second)

	w := get(t, New(&mockRunner{}, WithRegistry(m.Registry)), "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `leads_runs_total{outcome="success"} 1`)
}

func TestMetrics_NotMountedWithoutRegistry(t *testing.T) {
	w := get(t, New(&mockRunner{}), "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRuns(t *testing.T) {
	history := &mockHistory{runs: []models.RunReport{*sampleReport()}}
	s := New(&mockRunner{}, WithHistory(history))

	w := get(t, s, "/runs?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, history.limit)
	assert.True(t, strings.Contains(w.Body.String(), `"keyword":"leaky pipe"`))

	w = get(t, s, "/runs?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	history.err = errors.New("db down")
	w = get(t, s, "/runs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 10, history.limit)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := New(&mockRunner{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

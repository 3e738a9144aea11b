// Copyright (c) 2026 John Earle
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/export"
	"github.com/bcem/mailsift/internal/models"
)

type mockStore struct {
	mu       sync.Mutex
	reports  map[string]*models.Report
	accounts []string
	limits   []int
	err      error
}

func (m *mockStore) Report(_ context.Context, account string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append(m.accounts, account)
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.reports[account]; ok {
		return r, nil
	}
	return &models.Report{Account: account}, nil
}

func (m *mockStore) ListByCategory(_ context.Context, account string, c models.Category, limit int) ([]models.AnalyzedEmail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append(m.accounts, account)
	m.limits = append(m.limits, limit)
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.reports[account]
	if !ok {
		return nil, nil
	}
	return r.Bucket(c), nil
}

func testStore() *mockStore {
	r := &models.Report{Account: "me@example.com", RunID: "run-1"}
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "1", Sender: "help@walmart.com", Subject: "Welcome to Walmart+"},
		Classification: models.ClassificationResult{Category: models.CategoryMembership},
		Membership:     &models.MembershipRecord{Name: "Walmart+", FromSender: "help@walmart.com"},
	})
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "2", Sender: "shop@orbitgear.com", Subject: "Spring sale"},
		Classification: models.ClassificationResult{Category: models.CategoryCoupon},
		Coupon:         &models.CouponRecord{StoreName: "Orbitgear", Description: "25% off", Source: models.SourceFooter},
	})
	return &mockStore{reports: map[string]*models.Report{"me@example.com": r}}
}

func newTestServer(t *testing.T, store *mockStore, run RunFunc) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHandler(ctx, Config{Store: store, Run: run, DefaultAccount: "me@example.com"})
	srv := httptest.NewServer(h.Router([]string{"https://dash.example"}))
	t.Cleanup(srv.Close)
	return srv
}

// runStatus polls a run without failing the test, for use inside
// Eventually.
func runStatus(url string) (RunStatus, bool) {
	resp, err := http.Get(url)
	if err != nil {
		return RunStatus{}, false
	}
	defer resp.Body.Close()
	var s RunStatus
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return RunStatus{}, false
	}
	return s, true
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// TestHealth verifies the health endpoint with and without a failing check.
func TestHealth(t *testing.T) {
	srv := newTestServer(t, testStore(), nil)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])

	h := NewHandler(context.Background(), Config{Health: func(context.Context) error { return errors.New("redis down") }})
	rec := httptest.NewRecorder()
	h.Router(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")
}

// TestResults verifies the export view is served for the default and an
// explicit account.
func TestResults(t *testing.T) {
	store := testStore()
	srv := newTestServer(t, store, nil)

	resp, err := http.Get(srv.URL + "/api/results")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var view map[string]export.AccountView
	decode(t, resp, &view)
	require.Contains(t, view, "me@example.com")
	assert.Contains(t, view["me@example.com"].Membership, "Walmart+")
	assert.Len(t, view["me@example.com"].Coupon["Orbitgear"], 1)
	assert.Equal(t, 1, view["me@example.com"].Summary["total_coupon"])

	resp, err = http.Get(srv.URL + "/api/results?account=other@example.com")
	require.NoError(t, err)
	decode(t, resp, &view)
	assert.Contains(t, view, "other@example.com")
	assert.Equal(t, []string{"me@example.com", "other@example.com"}, store.accounts)
}

// TestResultsStoreError verifies store failures map to 500.
func TestResultsStoreError(t *testing.T) {
	store := testStore()
	store.err = errors.New("db down")
	srv := newTestServer(t, store, nil)

	resp, err := http.Get(srv.URL + "/api/results")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

// TestCategory verifies category parsing, limits and listings.
func TestCategory(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCount  int
		wantLimit  int
	}{
		{name: "membership", path: "/api/results/membership", wantStatus: http.StatusOK, wantCount: 1, wantLimit: 100},
		{name: "gift card alias", path: "/api/results/gift_card", wantStatus: http.StatusOK, wantCount: 0, wantLimit: 100},
		{name: "limit capped", path: "/api/results/Coupon?limit=5000", wantStatus: http.StatusOK, wantCount: 1, wantLimit: 1000},
		{name: "unknown category", path: "/api/results/spam", wantStatus: http.StatusBadRequest},
		{name: "bad limit", path: "/api/results/coupon?limit=-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testStore()
			srv := newTestServer(t, store, nil)

			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				resp.Body.Close()
				return
			}

			var body struct {
				Count   int                    `json:"count"`
				Results []models.AnalyzedEmail `json:"results"`
			}
			decode(t, resp, &body)
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Results, tt.wantCount)
			assert.Equal(t, []int{tt.wantLimit}, store.limits)
		})
	}
}

// TestAnalyze verifies the trigger returns 202 with a run ID and the run
// completes in the background.
func TestAnalyze(t *testing.T) {
	got := make(chan AnalyzeRequest, 1)
	release := make(chan struct{})
	run := func(_ context.Context, req AnalyzeRequest) (*backfill.Result, error) {
		got <- req
		<-release
		report := &models.Report{RunID: req.RunID}
		report.Add(models.AnalyzedEmail{Classification: models.ClassificationResult{Category: models.CategoryCoupon}})
		return &backfill.Result{RunID: req.RunID, Fetched: 1, Report: report}, nil
	}
	srv := newTestServer(t, testStore(), run)

	resp, err := http.Post(srv.URL+"/api/analyze", "application/json",
		strings.NewReader(`{"max_results": 20, "days": 7, "strict_mode": true}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	var accepted RunStatus
	decode(t, resp, &accepted)
	assert.NotEmpty(t, accepted.RunID)
	assert.Equal(t, StateRunning, accepted.State)

	req := <-got
	assert.Equal(t, accepted.RunID, req.RunID)
	assert.Equal(t, "me@example.com", req.Account)
	assert.Equal(t, 20, req.MaxResults)
	assert.Equal(t, 7, req.Days)
	assert.True(t, req.StrictMode)

	resp, err = http.Get(srv.URL + "/api/runs/" + accepted.RunID)
	require.NoError(t, err)
	var status RunStatus
	decode(t, resp, &status)
	assert.Equal(t, StateRunning, status.State)

	close(release)
	require.Eventually(t, func() bool {
		s, ok := runStatus(srv.URL + "/api/runs/" + accepted.RunID)
		return ok && s.State == StateCompleted
	}, 2*time.Second, 10*time.Millisecond)

	status, _ = runStatus(srv.URL + "/api/runs/" + accepted.RunID)
	assert.Equal(t, 1, status.Fetched)
	assert.Equal(t, 1, status.Counts[models.CategoryCoupon])
	assert.NotNil(t, status.FinishedAt)
}

// TestAnalyzeValidation verifies defaults and rejected bodies.
func TestAnalyzeValidation(t *testing.T) {
	got := make(chan AnalyzeRequest, 1)
	run := func(_ context.Context, req AnalyzeRequest) (*backfill.Result, error) {
		got <- req
		return nil, errors.New("gmail unavailable")
	}
	srv := newTestServer(t, testStore(), run)

	for _, body := range []string{`{"max_results": 501}`, `{"days": -1}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	resp, err := http.Post(srv.URL+"/api/analyze", "application/json", nil)
	require.NoError(t, err)
	var accepted RunStatus
	decode(t, resp, &accepted)
	req := <-got
	assert.Equal(t, 50, req.MaxResults)

	require.Eventually(t, func() bool {
		s, ok := runStatus(srv.URL + "/api/runs/" + accepted.RunID)
		return ok && s.State == StateFailed && s.Error == "gmail unavailable"
	}, 2*time.Second, 10*time.Millisecond)

	resp, err = http.Get(srv.URL + "/api/runs/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestCORS verifies preflight requests from a configured origin.
func TestCORS(t *testing.T) {
	srv := newTestServer(t, testStore(), nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/results", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://dash.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

// TestRunTrackerEvicts verifies finished runs are evicted first.
func TestRunTrackerEvicts(t *testing.T) {
	tr := newRunTracker()
	tr.start(AnalyzeRequest{RunID: "keep"})
	for i := 0; i < maxTrackedRuns+5; i++ {
		id := fmt.Sprintf("done-%d", i)
		tr.start(AnalyzeRequest{RunID: id})
		tr.finish(id, nil, nil)
	}
	_, ok := tr.get("keep")
	assert.True(t, ok, "running entries survive eviction")
	assert.LessOrEqual(t, len(tr.runs), maxTrackedRuns)
}

// TestPushMount verifies the push handler is mounted only when configured.
func TestPushMount(t *testing.T) {
	var hits int
	push := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusAccepted)
	})

	h := NewHandler(context.Background(), Config{Store: testStore(), Push: push})
	rec := httptest.NewRecorder()
	h.Router(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook/gmail", strings.NewReader("{}")))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, hits)

	h = NewHandler(context.Background(), Config{Store: testStore()})
	rec = httptest.NewRecorder()
	h.Router(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook/gmail", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

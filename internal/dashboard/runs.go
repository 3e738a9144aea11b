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
	"sync"
	"time"

	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/models"
)

// Run states reported by GET /api/runs/{id}.
const (
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// maxTrackedRuns bounds memory; the oldest finished runs are evicted first.
const maxTrackedRuns = 100

// RunStatus describes a run started through the API.
type RunStatus struct {
	RunID      string                  `json:"run_id"`
	Account    string                  `json:"account"`
	State      string                  `json:"status"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt *time.Time              `json:"finished_at,omitempty"`
	Fetched    int                     `json:"fetched"`
	Skipped    int                     `json:"skipped"`
	Errors     int                     `json:"errors"`
	Counts     map[models.Category]int `json:"counts,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type runTracker struct {
	mu    sync.Mutex
	runs  map[string]*RunStatus
	order []string
	now   func() time.Time
}

func newRunTracker() *runTracker {
	return &runTracker{runs: make(map[string]*RunStatus), now: time.Now}
}

func (t *runTracker) start(req AnalyzeRequest) RunStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &RunStatus{
		RunID:     req.RunID,
		Account:   req.Account,
		State:     StateRunning,
		StartedAt: t.now().UTC(),
	}
	t.runs[s.RunID] = s
	t.order = append(t.order, s.RunID)
	t.evict()
	return *s
}

func (t *runTracker) finish(runID string, res *backfill.Result, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.runs[runID]
	if !ok || s.State != StateRunning {
		return
	}
	finished := t.now().UTC()
	s.FinishedAt = &finished
	if res != nil {
		s.Fetched = res.Fetched
		s.Skipped = res.Skipped
		s.Errors = res.Errors
		if res.Report != nil {
			s.Counts = res.Report.Counts()
		}
	}
	if err != nil {
		s.State = StateFailed
		s.Error = err.Error()
		return
	}
	s.State = StateCompleted
}

func (t *runTracker) get(runID string) (RunStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.runs[runID]
	if !ok {
		return RunStatus{}, false
	}
	return *s, true
}

// evict drops finished runs, oldest first, while over the limit. Running
// entries are never dropped. Callers hold mu.
func (t *runTracker) evict() {
	for i := 0; len(t.runs) > maxTrackedRuns && i < len(t.order); {
		id := t.order[i]
		if t.runs[id].State == StateRunning {
			i++
			continue
		}
		delete(t.runs, id)
		t.order = append(t.order[:i], t.order[i+1:]...)
	}
}

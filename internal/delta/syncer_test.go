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


package delta

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/models"
	"github.com/bcem/mailsift/internal/store"
)

// --- Mocks ---

type mockHistory struct {
	mu       sync.Mutex
	current  uint64
	added    map[uint64][]string
	latest   uint64
	expired  bool
	requests []uint64
}

func (m *mockHistory) Profile(context.Context) (string, uint64, error) {
	return "me@example.com", m.current, nil
}

func (m *mockHistory) MessagesAddedSince(_ context.Context, start uint64) ([]string, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, start)
	if m.expired {
		return nil, start, gmail.ErrHistoryExpired
	}
	return m.added[start], m.latest, nil
}

type mockCursors struct {
	mu      sync.Mutex
	cursors map[string]uint64
}

func (m *mockCursors) GetCursor(_ context.Context, account string) (*store.Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hid, ok := m.cursors[account]
	if !ok {
		return nil, nil
	}
	return &store.Cursor{Account: account, HistoryID: hid}, nil
}

func (m *mockCursors) SaveCursor(_ context.Context, account string, historyID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[account] = historyID
	return nil
}

func (m *mockCursors) get(account string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursors[account]
}

type mockProcessor struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (m *mockProcessor) Process(_ context.Context, account string, ids []string) (*backfill.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ids)
	if m.err != nil {
		return nil, m.err
	}
	return &backfill.Result{Account: account, Listed: len(ids), Fetched: len(ids)}, nil
}

func newTestSyncer(h *mockHistory, c *mockCursors, p *mockProcessor) *Syncer {
	return NewSyncer(SyncerConfig{Source: h, Cursors: c, Processor: p, SyncInterval: time.Hour})
}

// TestSyncer_InitialSync verifies the first sync only records the
// current history ID.
func TestSyncer_InitialSync(t *testing.T) {
	h := &mockHistory{current: 500}
	c := &mockCursors{cursors: map[string]uint64{}}
	p := &mockProcessor{}

	res, err := newTestSyncer(h, c, p).SyncMailbox(context.Background(), "me")
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, uint64(500), c.get("me"))
	assert.Empty(t, h.requests)
	assert.Empty(t, p.calls)
}

// TestSyncer_IncrementalSync verifies added messages are processed and
// the cursor advances.
func TestSyncer_IncrementalSync(t *testing.T) {
	h := &mockHistory{added: map[uint64][]string{100: {"a", "b"}}, latest: 140}
	c := &mockCursors{cursors: map[string]uint64{"me": 100}}
	p := &mockProcessor{}

	res, err := newTestSyncer(h, c, p).SyncMailbox(context.Background(), "me")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, [][]string{{"a", "b"}}, p.calls)
	assert.Equal(t, uint64(140), c.get("me"))
}

// TestSyncer_ExpiredCursor verifies an expired cursor is reset to the
// mailbox's current history ID.
func TestSyncer_ExpiredCursor(t *testing.T) {
	h := &mockHistory{current: 900, expired: true}
	c := &mockCursors{cursors: map[string]uint64{"me": 3}}
	p := &mockProcessor{}

	_, err := newTestSyncer(h, c, p).SyncMailbox(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, uint64(900), c.get("me"))
	assert.Empty(t, p.calls)
}

// TestSyncer_ProcessErrorKeepsCursor verifies a failed batch is retried
// from the same cursor next time.
func TestSyncer_ProcessErrorKeepsCursor(t *testing.T) {
	h := &mockHistory{added: map[uint64][]string{100: {"a"}}, latest: 120}
	c := &mockCursors{cursors: map[string]uint64{"me": 100}}
	p := &mockProcessor{err: errors.New("analyzer down")}

	_, err := newTestSyncer(h, c, p).SyncMailbox(context.Background(), "me")
	require.Error(t, err)
	assert.Equal(t, uint64(100), c.get("me"))
}

// flakySource fails to fetch until recovered is set.
type flakySource struct {
	mu        sync.Mutex
	recovered bool
	fetched   []string
}

func (f *flakySource) ListMessageIDs(context.Context, int, int) ([]string, error) {
	return nil, nil
}

func (f *flakySource) FetchMessage(_ context.Context, id string) (*models.Email, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.recovered {
		return nil, errors.New("transient 503")
	}
	f.fetched = append(f.fetched, id)
	return &models.Email{ID: id, Sender: "user@example.com", Subject: "Hi"}, nil
}

// memDedup is an in-memory claim set.
type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (m *memDedup) IsNew(_ context.Context, account, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[account+":"+id] {
		return false, nil
	}
	m.seen[account+":"+id] = true
	return true, nil
}

func (m *memDedup) Forget(_ context.Context, account, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, account+":"+id)
	return nil
}

// TestSyncer_FailedFetchRetried verifies a message that fails to fetch is
// picked up by the next sync instead of being skipped past.
func TestSyncer_FailedFetchRetried(t *testing.T) {
	h := &mockHistory{added: map[uint64][]string{100: {"m1", "m2"}}, latest: 200}
	c := &mockCursors{cursors: map[string]uint64{"me": 100}}
	source := &flakySource{}
	runner := backfill.NewRunner(backfill.RunnerConfig{
		Source:   source,
		Analyzer: analyzer.New(nil, analyzer.Options{}),
		Dedup:    &memDedup{seen: map[string]bool{}},
	})
	s := NewSyncer(SyncerConfig{Source: h, Cursors: c, Processor: runner, SyncInterval: time.Hour})

	res, err := s.SyncMailbox(context.Background(), "me")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Errors)
	assert.Equal(t, uint64(100), c.get("me"), "cursor held back")

	source.mu.Lock()
	source.recovered = true
	source.mu.Unlock()

	res, err = s.SyncMailbox(context.Background(), "me")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, []string{"m1", "m2"}, source.fetched)
	assert.Equal(t, uint64(200), c.get("me"))
	assert.Equal(t, []uint64{100, 100}, h.requests)
}

// TestSyncer_Stop verifies graceful shutdown.
func TestSyncer_Stop(t *testing.T) {
	s := newTestSyncer(&mockHistory{}, &mockCursors{cursors: map[string]uint64{}}, &mockProcessor{})
	s.StartPeriodicSync(context.Background(), []string{"me"})

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return within 2 seconds")
	}
}

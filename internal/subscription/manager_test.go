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


package subscription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWatcher records watch calls and hands out fixed expiries.
type mockWatcher struct {
	mu      sync.Mutex
	calls   []string
	expires time.Time
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, topic string) (uint64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, topic)
	if m.err != nil {
		return 0, time.Time{}, m.err
	}
	return uint64(len(m.calls)), m.expires, nil
}

func (m *mockWatcher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// TestStart verifies the initial watch is registered and recorded.
func TestStart(t *testing.T) {
	expires := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	w := &mockWatcher{expires: expires}
	m := NewManager(ManagerConfig{Watcher: w, Account: "me@example.com", Topic: "projects/p/topics/t"})

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.Equal(t, []string{"projects/p/topics/t"}, w.calls)
	assert.Equal(t, expires, m.Expires())
}

// TestStartFails verifies an initial watch failure is returned.
func TestStartFails(t *testing.T) {
	w := &mockWatcher{err: errors.New("topic not found")}
	m := NewManager(ManagerConfig{Watcher: w, Account: "me@example.com", Topic: "t"})

	err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic not found")
	m.Stop()
}

// TestRenewIfExpiring verifies renewal happens only inside the buffer.
func TestRenewIfExpiring(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	w := &mockWatcher{expires: now.Add(7 * 24 * time.Hour)}
	m := NewManager(ManagerConfig{Watcher: w, Topic: "t", RenewBuffer: 24 * time.Hour})
	m.now = func() time.Time { return now }

	require.NoError(t, m.renew(context.Background()))
	assert.Equal(t, 1, w.count())

	m.renewIfExpiring(context.Background())
	assert.Equal(t, 1, w.count(), "a week out is not expiring")

	m.now = func() time.Time { return now.Add(6*24*time.Hour + time.Hour) }
	w.expires = now.Add(14 * 24 * time.Hour)
	m.renewIfExpiring(context.Background())
	assert.Equal(t, 2, w.count())
	assert.Equal(t, now.Add(14*24*time.Hour), m.Expires())

	w.err = errors.New("quota")
	m.now = func() time.Time { return now.Add(14 * 24 * time.Hour) }
	m.renewIfExpiring(context.Background())
	assert.Equal(t, 3, w.count())
	assert.Equal(t, now.Add(14*24*time.Hour), m.Expires(), "failed renewal keeps the old expiry")
}

// TestDefaults verifies the renew buffer and loop interval defaults.
func TestDefaults(t *testing.T) {
	m := NewManager(ManagerConfig{})
	assert.Equal(t, DefaultRenewBuffer, m.renewBuffer)
	assert.Equal(t, 12*time.Hour, m.interval())

	m = NewManager(ManagerConfig{RenewBuffer: time.Second})
	assert.Equal(t, time.Minute, m.interval())
}

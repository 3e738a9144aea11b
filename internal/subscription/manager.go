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


// Package subscription keeps a Gmail push watch alive. Gmail stops
// publishing mailbox changes to Pub/Sub about a week after users.watch is
// called, so the manager registers the watch at startup and renews it
// before it lapses.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultRenewBuffer is how long before expiry a watch is renewed.
const DefaultRenewBuffer = 24 * time.Hour

// Watcher registers a push watch. Implemented by gmail.Client.
type Watcher interface {
	Watch(ctx context.Context, topic string) (historyID uint64, expires time.Time, err error)
}

// ManagerConfig holds the configuration for the manager.
type ManagerConfig struct {
	Watcher     Watcher
	Account     string
	Topic       string
	RenewBuffer time.Duration
}

// Manager owns the lifecycle of one mailbox watch.
type Manager struct {
	watcher     Watcher
	account     string
	topic       string
	renewBuffer time.Duration

	mu      sync.Mutex
	expires time.Time

	now    func() time.Time
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a watch manager.
func NewManager(cfg ManagerConfig) *Manager {
	buffer := cfg.RenewBuffer
	if buffer <= 0 {
		buffer = DefaultRenewBuffer
	}
	return &Manager{
		watcher:     cfg.Watcher,
		account:     cfg.Account,
		topic:       cfg.Topic,
		renewBuffer: buffer,
		now:         time.Now,
	}
}

// Start registers the watch and starts the renewal loop. It fails if the
// initial registration fails.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.renew(ctx); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	go m.renewalLoop(loopCtx)

	slog.Info("gmail watch manager started",
		"account", m.account,
		"topic", m.topic,
		"renewal_interval", m.interval(),
	)
	return nil
}

// Stop shuts down the renewal loop.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	slog.Info("gmail watch manager stopped")
}

// Expires reports when the current watch lapses.
func (m *Manager) Expires() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expires
}

func (m *Manager) interval() time.Duration {
	return max(m.renewBuffer/2, time.Minute)
}

func (m *Manager) renewalLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.renewIfExpiring(ctx)
		}
	}
}

// renewIfExpiring renews the watch once it is within the renew buffer of
// expiry. A failure is logged and retried on the next tick.
func (m *Manager) renewIfExpiring(ctx context.Context) {
	if m.now().Add(m.renewBuffer).Before(m.Expires()) {
		return
	}
	if err := m.renew(ctx); err != nil {
		slog.Error("gmail watch renewal failed",
			"account", m.account,
			"expires", m.Expires(),
			"error", err,
		)
	}
}

func (m *Manager) renew(ctx context.Context) error {
	historyID, expires, err := m.watcher.Watch(ctx, m.topic)
	if err != nil {
		return fmt.Errorf("watch %s: %w", m.account, err)
	}

	m.mu.Lock()
	m.expires = expires
	m.mu.Unlock()

	slog.Info("gmail watch registered",
		"account", m.account,
		"history_id", historyID,
		"expires", expires,
	)
	return nil
}

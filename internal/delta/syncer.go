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


// Package delta keeps a mailbox's analysis current by replaying Gmail
// history since the last synced history ID and processing the messages
// added in between.
package delta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/store"
)

// HistorySource reads mailbox history. Implemented by gmail.Client.
type HistorySource interface {
	Profile(ctx context.Context) (address string, historyID uint64, err error)
	MessagesAddedSince(ctx context.Context, startID uint64) ([]string, uint64, error)
}

// CursorStore persists the last synced history ID. Implemented by
// store.Store.
type CursorStore interface {
	GetCursor(ctx context.Context, account string) (*store.Cursor, error)
	SaveCursor(ctx context.Context, account string, historyID uint64) error
}

// Processor analyzes a batch of message IDs. Implemented by
// backfill.Runner.
type Processor interface {
	Process(ctx context.Context, account string, ids []string) (*backfill.Result, error)
}

// Syncer provides incremental synchronisation via Gmail history.
type Syncer struct {
	source    HistorySource
	cursors   CursorStore
	processor Processor

	// syncMu serialises SyncMailbox; ticks and push notifications can
	// overlap.
	syncMu sync.Mutex

	syncInterval time.Duration
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// SyncerConfig holds the configuration for the syncer.
type SyncerConfig struct {
	Source       HistorySource
	Cursors      CursorStore
	Processor    Processor
	SyncInterval time.Duration
}

// NewSyncer creates a history syncer.
func NewSyncer(cfg SyncerConfig) *Syncer {
	interval := cfg.SyncInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Syncer{
		source:       cfg.Source,
		cursors:      cfg.Cursors,
		processor:    cfg.Processor,
		syncInterval: interval,
	}
}

// SyncMailbox processes everything added since the stored cursor. The
// first sync only records the current history ID; historical mail is the
// job of a backfill run. An expired cursor is reset the same way.
func (s *Syncer) SyncMailbox(ctx context.Context, account string) (*backfill.Result, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	c, err := s.cursors.GetCursor(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}
	if c == nil {
		return nil, s.resetCursor(ctx, account)
	}
	cursor := c.HistoryID

	ids, latest, err := s.source.MessagesAddedSince(ctx, cursor)
	if errors.Is(err, gmail.ErrHistoryExpired) {
		slog.Warn("history cursor expired, resetting",
			"account", account,
			"history_id", cursor,
		)
		return nil, s.resetCursor(ctx, account)
	}
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	slog.Info("incremental sync",
		"account", account,
		"from_history_id", cursor,
		"to_history_id", latest,
		"messages", len(ids),
	)

	var result *backfill.Result
	if len(ids) > 0 {
		result, err = s.processor.Process(ctx, account, ids)
		if err != nil {
			return result, fmt.Errorf("process messages: %w", err)
		}
		// Failed messages were released, so replaying this range retries
		// them while the ones that succeeded are skipped as seen.
		if result != nil && result.Errors > 0 {
			slog.Warn("sync had failures, keeping cursor",
				"account", account,
				"history_id", cursor,
				"errors", result.Errors,
			)
			return result, nil
		}
	}

	if latest != cursor {
		if err := s.cursors.SaveCursor(ctx, account, latest); err != nil {
			return result, fmt.Errorf("save cursor: %w", err)
		}
	}
	return result, nil
}

// resetCursor records the mailbox's current history ID without
// processing anything.
func (s *Syncer) resetCursor(ctx context.Context, account string) error {
	_, current, err := s.source.Profile(ctx)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if err := s.cursors.SaveCursor(ctx, account, current); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	slog.Info("history cursor initialised", "account", account, "history_id", current)
	return nil
}

// StartPeriodicSync syncs each account at the configured interval until
// Stop is called or ctx ends.
func (s *Syncer) StartPeriodicSync(ctx context.Context, accounts []string) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.syncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				for _, account := range accounts {
					if _, err := s.SyncMailbox(loopCtx, account); err != nil {
						slog.Error("periodic sync failed",
							"account", account,
							"error", err,
						)
					}
				}
			}
		}
	}()

	slog.Info("periodic sync started", "interval", s.syncInterval)
}

// Stop shuts down the periodic sync loop.
func (s *Syncer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

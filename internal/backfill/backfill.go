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


// Package backfill runs a batch over a mailbox: list messages, skip the
// ones already seen, fetch the rest, analyze them and hand each result to
// the store and the results queue.
package backfill

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/models"
)

// releaseTimeout bounds a claim release, which may run after the run's
// context is done.
const releaseTimeout = 5 * time.Second

// MailSource lists and fetches messages. Implemented by gmail.Client.
type MailSource interface {
	ListMessageIDs(ctx context.Context, limit, days int) ([]string, error)
	FetchMessage(ctx context.Context, id string) (*models.Email, error)
}

// Deduper claims message IDs. Implemented by dedup.Filter.
type Deduper interface {
	IsNew(ctx context.Context, account, messageID string) (bool, error)
	Forget(ctx context.Context, account, messageID string) error
}

// ResultStore persists analyzed emails. Implemented by store.Store.
type ResultStore interface {
	SaveResult(ctx context.Context, account, runID string, a models.AnalyzedEmail) error
}

// Publisher announces analyzed emails. Implemented by queue.Publisher.
type Publisher interface {
	Publish(ctx context.Context, account, runID string, a models.AnalyzedEmail) error
}

// Request defines the scope of a run.
type Request struct {
	RunID      string // optional; generated when empty
	Account    string
	MaxResults int
	Days       int // 0 means no age bound
}

// Result summarises a completed run.
type Result struct {
	RunID     string
	Account   string
	Listed    int
	Fetched   int
	Skipped   int
	Errors    int
	Saved     int
	Published int
	Report    *models.Report
	Elapsed   time.Duration
}

// Runner performs batch analysis runs.
type Runner struct {
	source    MailSource
	analyzer  *analyzer.Analyzer
	dedup     Deduper
	store     ResultStore
	publisher Publisher
}

// RunnerConfig holds dependencies for the runner. Dedup, Store and
// Publisher are optional.
type RunnerConfig struct {
	Source    MailSource
	Analyzer  *analyzer.Analyzer
	Dedup     Deduper
	Store     ResultStore
	Publisher Publisher
}

// NewRunner creates a runner.
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		source:    cfg.Source,
		analyzer:  cfg.Analyzer,
		dedup:     cfg.Dedup,
		store:     cfg.Store,
		publisher: cfg.Publisher,
	}
}

// Run lists up to req.MaxResults inbox messages and processes them.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	slog.Info("starting mailbox run",
		"account", req.Account,
		"max_results", req.MaxResults,
		"days", req.Days,
	)

	ids, err := r.source.ListMessageIDs(ctx, req.MaxResults, req.Days)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return r.process(ctx, req.RunID, req.Account, ids)
}

// Process fetches, analyzes and hands off the given message IDs. Failures
// on individual messages are counted and logged; the batch continues.
func (r *Runner) Process(ctx context.Context, account string, ids []string) (*Result, error) {
	return r.process(ctx, "", account, ids)
}

func (r *Runner) process(ctx context.Context, runID, account string, ids []string) (*Result, error) {
	start := time.Now()
	result := &Result{Account: account, Listed: len(ids)}

	emails := make([]models.Email, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			// Fetched messages were claimed but will not be analyzed.
			result.Fetched = len(emails)
			for _, e := range emails {
				r.release(ctx, account, e.ID)
			}
			slog.Warn("mailbox run cancelled",
				"account", account,
				"fetched", result.Fetched,
				"released", len(emails),
			)
			return result, err
		}

		if r.dedup != nil {
			isNew, err := r.dedup.IsNew(ctx, account, id)
			if err != nil {
				slog.Warn("dedup check failed", "message_id", id, "error", err)
			} else if !isNew {
				result.Skipped++
				continue
			}
		}

		email, err := r.source.FetchMessage(ctx, id)
		if err != nil {
			slog.Warn("fetch message failed", "message_id", id, "error", err)
			result.Errors++
			r.release(ctx, account, id)
			continue
		}
		if email == nil {
			result.Skipped++
			continue
		}
		emails = append(emails, *email)
	}
	result.Fetched = len(emails)

	report := r.analyzer.RunWithID(ctx, runID, account, emails)
	result.RunID = report.RunID
	result.Report = report

	for _, a := range report.All() {
		if r.store != nil {
			if err := r.store.SaveResult(ctx, account, report.RunID, a); err != nil {
				slog.Error("persist result failed", "message_id", a.Email.ID, "error", err)
				result.Errors++
				r.release(ctx, account, a.Email.ID)
				continue
			}
			result.Saved++
		}
		if r.publisher != nil {
			if err := r.publisher.Publish(ctx, account, report.RunID, a); err != nil {
				slog.Warn("publish result failed", "message_id", a.Email.ID, "error", err)
				result.Errors++
				continue
			}
			result.Published++
		}
	}

	result.Elapsed = time.Since(start)
	slog.Info("mailbox run complete",
		"account", account,
		"run_id", result.RunID,
		"listed", result.Listed,
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"errors", result.Errors,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// release un-claims a message that could not be processed so the next
// run retries it. It still runs when ctx has been cancelled.
func (r *Runner) release(ctx context.Context, account, id string) {
	if r.dedup == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := r.dedup.Forget(ctx, account, id); err != nil {
		slog.Warn("dedup release failed", "message_id", id, "error", err)
	}
}

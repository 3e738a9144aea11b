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


// Package store persists analysis results and per-mailbox sync cursors in
// Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bcem/mailsift/internal/models"
)

// Store reads and writes analysis results.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a store backed by the given Postgres pool. It ensures
// the tables exist on creation.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure store schema: %w", err)
	}
	slog.Info("result store initialised")
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_results (
			id                 BIGSERIAL PRIMARY KEY,
			account            TEXT NOT NULL,
			message_id         TEXT NOT NULL,
			run_id             TEXT NOT NULL,
			category           TEXT NOT NULL,
			sender             TEXT DEFAULT '',
			subject            TEXT DEFAULT '',
			received           TIMESTAMPTZ,
			is_shopping_domain BOOLEAN DEFAULT FALSE,
			record             JSONB NOT NULL,
			analyzed_at        TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(account, message_id)
		);
		CREATE INDEX IF NOT EXISTS idx_results_account_category ON analysis_results(account, category);

		CREATE TABLE IF NOT EXISTS mailbox_cursors (
			account    TEXT PRIMARY KEY,
			history_id BIGINT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	return err
}

// SaveResult inserts or replaces the analysis of one message, keyed on
// (account, message_id).
func (s *Store) SaveResult(ctx context.Context, account, runID string, a models.AnalyzedEmail) error {
	record, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO analysis_results
			(account, message_id, run_id, category, sender, subject, received, is_shopping_domain, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account, message_id) DO UPDATE SET
			run_id             = EXCLUDED.run_id,
			category           = EXCLUDED.category,
			sender             = EXCLUDED.sender,
			subject            = EXCLUDED.subject,
			received           = EXCLUDED.received,
			is_shopping_domain = EXCLUDED.is_shopping_domain,
			record             = EXCLUDED.record,
			analyzed_at        = NOW()
	`, account, a.Email.ID, runID, string(a.Category()), a.Email.Sender, a.Email.Subject,
		receivedAt(a.Email.Date), a.Classification.IsShoppingDomain, record)
	if err != nil {
		return fmt.Errorf("upsert result %s: %w", a.Email.ID, err)
	}
	return nil
}

// ListByCategory returns an account's stored results for one category,
// newest first. A non-positive limit returns everything.
func (s *Store) ListByCategory(ctx context.Context, account string, category models.Category, limit int) ([]models.AnalyzedEmail, error) {
	query := `
		SELECT record FROM analysis_results
		WHERE account = $1 AND category = $2
		ORDER BY received DESC NULLS LAST, analyzed_at DESC`
	args := []any{account, string(category)}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()
	return collectResults(rows)
}

// Report rebuilds a report from everything stored for an account.
func (s *Store) Report(ctx context.Context, account string) (*models.Report, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT record FROM analysis_results
		WHERE account = $1
		ORDER BY received DESC NULLS LAST, analyzed_at DESC
	`, account)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	results, err := collectResults(rows)
	if err != nil {
		return nil, err
	}
	report := &models.Report{Account: account, GeneratedAt: time.Now().UTC()}
	for _, r := range results {
		report.Add(r)
	}
	return report, nil
}

// CountByCategory returns how many results an account has per category.
func (s *Store) CountByCategory(ctx context.Context, account string) (map[models.Category]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category, COUNT(*) FROM analysis_results
		WHERE account = $1
		GROUP BY category
	`, account)
	if err != nil {
		return nil, fmt.Errorf("count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Category]int, len(models.Categories))
	for _, c := range models.Categories {
		counts[c] = 0
	}
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[models.Category(category)] = n
	}
	return counts, rows.Err()
}

// collectResults decodes the record column of each row.
func collectResults(rows pgx.Rows) ([]models.AnalyzedEmail, error) {
	var out []models.AnalyzedEmail
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		a, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func decodeRecord(raw []byte) (models.AnalyzedEmail, error) {
	var a models.AnalyzedEmail
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, fmt.Errorf("decode stored result: %w", err)
	}
	return a, nil
}

// receivedAt parses an RFC 5322 Date header. Unparseable dates are stored
// as NULL.
func receivedAt(date string) *time.Time {
	if date == "" {
		return nil
	}
	t, err := mail.ParseDate(date)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// Cursor is the last Gmail history ID synced for a mailbox.
type Cursor struct {
	Account   string
	HistoryID uint64
	UpdatedAt time.Time
}

// GetCursor returns the account's cursor, or nil when it has never synced.
func (s *Store) GetCursor(ctx context.Context, account string) (*Cursor, error) {
	var c Cursor
	var hid int64
	err := s.pool.QueryRow(ctx, `
		SELECT account, history_id, updated_at FROM mailbox_cursors WHERE account = $1
	`, account).Scan(&c.Account, &hid, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cursor: %w", err)
	}
	c.HistoryID = uint64(hid)
	return &c, nil
}

// SaveCursor records the history ID an account has been synced to.
func (s *Store) SaveCursor(ctx context.Context, account string, historyID uint64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mailbox_cursors (account, history_id)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET
			history_id = EXCLUDED.history_id,
			updated_at = NOW()
	`, account, int64(historyID))
	if err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

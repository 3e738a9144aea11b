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


// Package webhook receives Gmail push notifications. Gmail publishes a
// mailbox change to a Cloud Pub/Sub topic, and a push subscription POSTs
// it here; each notification triggers a history sync for the mailbox it
// names.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/bcem/mailsift/internal/backfill"
)

const maxBodyBytes = 1 << 20

// PushEnvelope is the body Pub/Sub push delivers.
type PushEnvelope struct {
	Message struct {
		Data        string `json:"data"`
		MessageID   string `json:"messageId"`
		PublishTime string `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// Notification is the decoded Gmail payload inside a push message.
type Notification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// Syncer replays mailbox history. Implemented by delta.Syncer.
type Syncer interface {
	SyncMailbox(ctx context.Context, account string) (*backfill.Result, error)
}

// Handler processes Gmail push notifications.
type Handler struct {
	syncer   Syncer
	token    string
	accounts map[string]bool

	// baseCtx bounds background syncs.
	baseCtx context.Context

	mu      sync.Mutex
	running map[string]bool
	pending map[string]bool
	wg      sync.WaitGroup
}

// NewHandler creates a push handler. When token is non-empty, requests
// must carry it as the token query parameter. Only notifications for the
// given accounts are acted on.
func NewHandler(ctx context.Context, syncer Syncer, token string, accounts ...string) *Handler {
	allowed := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		allowed[strings.ToLower(a)] = true
	}
	return &Handler{
		syncer:   syncer,
		token:    token,
		accounts: allowed,
		baseCtx:  ctx,
		running:  make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// ServePush handles a Pub/Sub push request.
//
// Pub/Sub redelivers anything not acknowledged with a 2xx, so malformed
// payloads are acknowledged and dropped; only an auth failure is refused.
func (h *Handler) ServePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.token != "" && subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("token")), []byte(h.token)) != 1 {
		slog.Warn("push token mismatch, possible spoofed notification", "remote", r.RemoteAddr)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		slog.Error("failed to read push body", "error", err)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	n, err := parseNotification(body)
	if err != nil {
		slog.Info("ignoring malformed push notification", "error", err, "body_len", len(body))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	// Respond immediately; Pub/Sub expects a fast acknowledgement
	w.WriteHeader(http.StatusAccepted)

	account := strings.ToLower(n.EmailAddress)
	if len(h.accounts) > 0 && !h.accounts[account] {
		slog.Warn("push notification for unknown mailbox", "account", n.EmailAddress)
		return
	}
	slog.Debug("push notification received", "account", account, "history_id", n.HistoryID)
	h.trigger(account)
}

// trigger syncs account in the background. Notifications that arrive
// while a sync is running collapse into one follow-up sync.
func (h *Handler) trigger(account string) {
	h.mu.Lock()
	if h.running[account] {
		h.pending[account] = true
		h.mu.Unlock()
		return
	}
	h.running[account] = true
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			if _, err := h.syncer.SyncMailbox(h.baseCtx, account); err != nil {
				slog.Error("push-triggered sync failed", "account", account, "error", err)
			}

			h.mu.Lock()
			if !h.pending[account] || h.baseCtx.Err() != nil {
				delete(h.running, account)
				delete(h.pending, account)
				h.mu.Unlock()
				return
			}
			delete(h.pending, account)
			h.mu.Unlock()
		}
	}()
}

// Wait blocks until background syncs finish.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// parseNotification decodes the base64 Gmail payload from a push body.
func parseNotification(body []byte) (Notification, error) {
	var env PushEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Notification{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Message.Data == "" {
		return Notification{}, fmt.Errorf("push message %q has no data", env.Message.MessageID)
	}
	data, err := base64.StdEncoding.DecodeString(env.Message.Data)
	if err != nil {
		if data, err = base64.URLEncoding.DecodeString(env.Message.Data); err != nil {
			return Notification{}, fmt.Errorf("decode data: %w", err)
		}
	}

	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	if n.EmailAddress == "" {
		return Notification{}, fmt.Errorf("notification has no emailAddress")
	}
	return n, nil
}

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


// Package gmail reads a mailbox through the Gmail API and turns messages
// into models.Email values for the analyzer.
package gmail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/bcem/mailsift/internal/models"
)

// ErrHistoryExpired means the stored history ID is too old for the
// mailbox to replay; the caller must start over from the current ID.
var ErrHistoryExpired = errors.New("gmail history id expired")

const pageSize = 100

// Client lists and fetches messages for one mailbox.
type Client struct {
	svc    *gmail.Service
	userID string
}

// NewClient creates a Gmail client for userID ("me" for the authorized
// account). Pass option.WithHTTPClient with an OAuth client in production.
func NewClient(ctx context.Context, userID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	if userID == "" {
		userID = "me"
	}
	return &Client{svc: svc, userID: userID}, nil
}

// Query builds the inbox search, bounded to the last days when positive.
func Query(days int) string {
	q := "in:inbox"
	if days > 0 {
		q += fmt.Sprintf(" newer_than:%dd", days)
	}
	return q
}

// ListMessageIDs returns up to limit inbox message IDs, newest first.
func (c *Client) ListMessageIDs(ctx context.Context, limit, days int) ([]string, error) {
	var ids []string
	call := c.svc.Users.Messages.List(c.userID).Q(Query(days))
	for pageToken := ""; ; {
		n := min(pageSize, limit-len(ids))
		if n <= 0 {
			break
		}
		call.MaxResults(int64(n)).PageToken(pageToken)
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return ids, fmt.Errorf("list messages: %w", err)
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" || len(resp.Messages) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}
	return ids, nil
}

// FetchMessage retrieves one message in full. A message deleted since it
// was listed returns nil, nil.
func (c *Client) FetchMessage(ctx context.Context, id string) (*models.Email, error) {
	msg, err := c.svc.Users.Messages.Get(c.userID, id).Format("full").Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			slog.Warn("message not found (may have been deleted)", "message_id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}
	email, err := parseMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("parse message %s: %w", id, err)
	}
	return email, nil
}

// FetchRecent lists and fetches up to limit inbox messages. Messages that
// fail to fetch are logged and skipped.
func (c *Client) FetchRecent(ctx context.Context, limit, days int) ([]models.Email, error) {
	ids, err := c.ListMessageIDs(ctx, limit, days)
	if err != nil {
		return nil, err
	}
	emails := make([]models.Email, 0, len(ids))
	for _, id := range ids {
		email, err := c.FetchMessage(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return emails, ctx.Err()
			}
			slog.Warn("fetch message failed", "message_id", id, "error", err)
			continue
		}
		if email != nil {
			emails = append(emails, *email)
		}
	}
	slog.Info("messages fetched", "listed", len(ids), "fetched", len(emails))
	return emails, nil
}

// Profile returns the mailbox address and its current history ID.
func (c *Client) Profile(ctx context.Context) (address string, historyID uint64, err error) {
	p, err := c.svc.Users.GetProfile(c.userID).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("get profile: %w", err)
	}
	return p.EmailAddress, p.HistoryId, nil
}

// MessagesAddedSince returns the IDs of messages added after startID and
// the newest history ID seen. An expired startID returns ErrHistoryExpired.
func (c *Client) MessagesAddedSince(ctx context.Context, startID uint64) ([]string, uint64, error) {
	var ids []string
	latest := startID
	seen := make(map[string]bool)

	call := c.svc.Users.History.List(c.userID).StartHistoryId(startID).HistoryTypes("messageAdded")
	for pageToken := ""; ; {
		resp, err := call.PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			if isNotFound(err) {
				return nil, startID, ErrHistoryExpired
			}
			return nil, startID, fmt.Errorf("list history: %w", err)
		}
		for _, h := range resp.History {
			for _, added := range h.MessagesAdded {
				if added.Message == nil || seen[added.Message.Id] {
					continue
				}
				seen[added.Message.Id] = true
				ids = append(ids, added.Message.Id)
			}
		}
		latest = max(latest, resp.HistoryId)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return ids, latest, nil
}

// Watch asks Gmail to publish inbox changes to a Cloud Pub/Sub topic
// ("projects/<project>/topics/<name>"). A watch lapses after about a week
// and must be renewed.
func (c *Client) Watch(ctx context.Context, topic string) (historyID uint64, expires time.Time, err error) {
	resp, err := c.svc.Users.Watch(c.userID, &gmail.WatchRequest{
		TopicName:         topic,
		LabelIds:          []string{"INBOX"},
		LabelFilterAction: "include",
	}).Context(ctx).Do()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("watch mailbox: %w", err)
	}
	return resp.HistoryId, time.UnixMilli(resp.Expiration).UTC(), nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

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


// Package queue publishes analysis results to a Redis list so downstream
// consumers (notifiers, a wallet sync) can react to new coupons and
// memberships without polling the database.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bcem/mailsift/internal/models"
)

// EnvelopeType identifies the payload of an envelope.
const EnvelopeType = "email.analyzed"

// Publisher pushes analyzed emails onto a Redis list.
type Publisher struct {
	rdb       *redis.Client
	queueName string
}

// NewPublisher creates a new Redis publisher targeting the specified queue.
func NewPublisher(rdb *redis.Client, queueName string) *Publisher {
	return &Publisher{
		rdb:       rdb,
		queueName: queueName,
	}
}

// Envelope is the JSON document pushed for every analyzed email.
type Envelope struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Account     string               `json:"account"`
	RunID       string               `json:"run_id"`
	PublishedAt time.Time            `json:"published_at"`
	Payload     models.AnalyzedEmail `json:"payload"`
}

// Publish wraps an analyzed email in an envelope and LPUSHes it, so
// consumers BRPOP in arrival order.
func (p *Publisher) Publish(ctx context.Context, account, runID string, email models.AnalyzedEmail) error {
	env := Envelope{
		ID:          uuid.NewString(),
		Type:        EnvelopeType,
		Account:     account,
		RunID:       runID,
		PublishedAt: time.Now().UTC(),
		Payload:     email,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	if err := p.rdb.LPush(ctx, p.queueName, data).Err(); err != nil {
		return fmt.Errorf("redis LPUSH: %w", err)
	}

	slog.Debug("published analysis result",
		"envelope_id", env.ID,
		"message_id", email.Email.ID,
		"category", email.Category(),
		"queue", p.queueName,
	)
	return nil
}

// Ping checks the Redis connection.
func (p *Publisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.rdb.Ping(ctx).Err()
}

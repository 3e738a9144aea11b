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


package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/models"
)

// TestPublish verifies the envelope shape and LPUSH ordering.
func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	p := NewPublisher(rdb, "mailsift:results")
	ctx := context.Background()
	require.NoError(t, p.Ping(ctx))

	first := models.AnalyzedEmail{
		Email:          models.Email{ID: "m1", Sender: "Orbitgear <deals@orbitgear.com>", Subject: "25% off"},
		Classification: models.ClassificationResult{Category: models.CategoryCoupon, Rule: "coupon-verified"},
		Coupon:         &models.CouponRecord{StoreName: "Orbitgear", CouponCodes: []string{"SPRING25"}, Source: models.SourceFooter},
	}
	second := models.AnalyzedEmail{
		Email:          models.Email{ID: "m2"},
		Classification: models.ClassificationResult{Category: models.CategoryNormal, Rule: "default"},
	}
	require.NoError(t, p.Publish(ctx, "me@example.com", "run-1", first))
	require.NoError(t, p.Publish(ctx, "me@example.com", "run-1", second))

	items, err := mr.List("mailsift:results")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// LPUSH puts the newest at the head.
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(items[1]), &env))
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, EnvelopeType, env.Type)
	assert.Equal(t, "me@example.com", env.Account)
	assert.Equal(t, "run-1", env.RunID)
	assert.False(t, env.PublishedAt.IsZero())
	assert.Equal(t, "m1", env.Payload.Email.ID)
	assert.Equal(t, models.CategoryCoupon, env.Payload.Category())
	require.NotNil(t, env.Payload.Coupon)
	assert.Equal(t, []string{"SPRING25"}, env.Payload.Coupon.CouponCodes)
}

// TestPublishRedisDown verifies Redis errors are returned.
func TestPublishRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	err := NewPublisher(rdb, "q").Publish(context.Background(), "me", "run", models.AnalyzedEmail{})
	assert.Error(t, err)
}

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


package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/models"
)

// TestReceivedAt verifies Date headers parse to UTC and bad ones to nil.
func TestReceivedAt(t *testing.T) {
	got := receivedAt("Mon, 2 Mar 2026 10:00:00 -0500")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, receivedAt(""))
	assert.Nil(t, receivedAt("yesterday"))
}

// TestDecodeRecord verifies a stored record decodes back into the
// analyzed email, typed records included.
func TestDecodeRecord(t *testing.T) {
	a := models.AnalyzedEmail{
		Email:          models.Email{ID: "m1", Sender: "Walmart <help@walmart.com>", Body: "not stored"},
		Classification: models.ClassificationResult{Category: models.CategoryMembership, Rule: "membership"},
		Membership:     &models.MembershipRecord{Name: "Walmart+", StartDate: "2026-03-02"},
	}
	raw, err := json.Marshal(a)
	require.NoError(t, err)

	got, err := decodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryMembership, got.Category())
	require.NotNil(t, got.Membership)
	assert.Equal(t, "Walmart+", got.Membership.Name)
	assert.Empty(t, got.Email.Body)

	_, err = decodeRecord([]byte(`{"classification":{"category":"Bogus"}}`))
	assert.Error(t, err)
}

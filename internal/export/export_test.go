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


package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/models"
)

func sampleReport() *models.Report {
	r := &models.Report{
		RunID:       "run-1",
		Account:     "me@example.com",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "1", Sender: "Walmart <help@walmart.com>", Subject: "Welcome to Walmart+", Date: "Mon, 2 Mar 2026"},
		Classification: models.ClassificationResult{Category: models.CategoryMembership, MatchedTerms: []string{"walmart+"}, Rule: "membership-subject"},
		Membership:     &models.MembershipRecord{Name: "Walmart+", StartDate: "2026-03-02", FromSender: "help@walmart.com"},
	})
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "2", Sender: "offers@bank.example", Subject: "Your card rewards"},
		Classification: models.ClassificationResult{Category: models.CategoryOffer},
		Card:           &models.CardRecord{Name: "Sapphire Preferred", FromSender: "offers@bank.example", Date: "Tue, 3 Mar 2026"},
	})
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "3", Sender: "shop@orbitgear.com", Subject: "Spring sale"},
		Classification: models.ClassificationResult{Category: models.CategoryCoupon, IsShoppingDomain: true},
		Coupon: &models.CouponRecord{
			StoreName:       "Orbitgear",
			Description:     "25% off everything",
			DiscountDetails: []string{"25% OFF"},
			CouponCodes:     []string{"SPRING25"},
			ExpiryDate:      "4/30/26",
			FreeShipping:    true,
			Source:          models.SourceFooter,
		},
	})
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "4", Sender: "cards@acme.com", Subject: "You received a gift card"},
		Classification: models.ClassificationResult{Category: models.CategoryGiftCard},
		GiftCard:       &models.GiftCardRecord{CardNumber: "1234", Value: "$50", StoreName: "Acme"},
	})
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "5", Sender: "friend@gmail.com", Subject: "Hi"},
		Classification: models.ClassificationResult{Category: models.CategoryNormal},
	})
	return r
}

// TestWriteJSON verifies the account-keyed view and its groupings.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got map[string]AccountView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Contains(t, got, "me@example.com")
	v := got["me@example.com"]

	assert.Equal(t, "run-1", v.RunID)
	assert.Equal(t, 1, v.Summary["total_membership"])
	assert.Equal(t, 1, v.Summary["total_coupon"])
	assert.Equal(t, 0, v.Summary["total_excluded"])
	assert.Equal(t, 1, v.Summary["total_normal"])

	assert.Equal(t, MembershipEntry{From: "help@walmart.com", StartDate: "2026-03-02", Status: "Active"}, v.Membership["Walmart+"])
	assert.Equal(t, "Active", v.Offer["Sapphire Preferred"].Status)
	require.Len(t, v.GiftCard, 1)
	assert.Equal(t, "Acme", v.GiftCard[0].StoreName)

	require.Len(t, v.Coupon["Orbitgear"], 1)
	c := v.Coupon["Orbitgear"][0]
	assert.Equal(t, "25% off everything", c.Coupon)
	assert.Equal(t, []string{"SPRING25"}, c.CouponCodes)
	assert.Equal(t, "4/30/26", c.Validity)
	assert.Equal(t, "footer", c.Source)
	assert.True(t, c.FreeShipping)
}

// TestBuildViewEmpty verifies an empty report still has every section.
func TestBuildViewEmpty(t *testing.T) {
	v := BuildView(&models.Report{Account: "a@b.c"})["a@b.c"]
	assert.NotNil(t, v.Membership)
	assert.NotNil(t, v.Offer)
	assert.NotNil(t, v.GiftCard)
	assert.NotNil(t, v.Coupon)
	assert.Len(t, v.Summary, len(models.Categories))
}

// TestWriteCSV verifies the header and one row per email.
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"Membership", "Mon, 2 Mar 2026", "Walmart <help@walmart.com>", "Welcome to Walmart+", "Walmart+", "start: 2026-03-02"}, rows[1])
	assert.Equal(t, "GiftCard", rows[3][0])
	assert.Equal(t, "card: 1234; value: $50", rows[3][5])
	assert.Equal(t, "Coupon", rows[4][0])
	assert.Equal(t, "offer: 25% OFF; codes: SPRING25; expires: 4/30/26; free shipping", rows[4][5])
	assert.Equal(t, "", rows[5][4])
}

// TestPrintReport verifies counts, listings, verbose terms and stats.
func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(), ConsoleOptions{})
	out := buf.String()

	assert.Contains(t, out, "Total emails analyzed: 5")
	assert.Contains(t, out, "Membership: Walmart+")
	assert.Contains(t, out, "Card: Sapphire Preferred")
	assert.Contains(t, out, "[shop] Spring sale")
	assert.Contains(t, out, "Promo Codes: SPRING25")
	assert.Contains(t, out, "Free shipping available")
	assert.Contains(t, out, "Value: $50")
	assert.NotContains(t, out, "Matched:")
	assert.NotContains(t, out, "SUBSCRIPTION SENDERS")

	buf.Reset()
	PrintReport(&buf, sampleReport(), ConsoleOptions{Verbose: true, Stats: true})
	out = buf.String()
	assert.Contains(t, out, "Matched: walmart+")
	assert.Contains(t, out, "Rule: membership-subject")
	assert.Contains(t, out, "SUBSCRIPTION SENDERS")
	assert.Contains(t, out, "Total:      2")
}

// TestPrintReportTruncates verifies long Normal listings are capped.
func TestPrintReportTruncates(t *testing.T) {
	r := &models.Report{Account: "a@b.c"}
	for i := 0; i < 8; i++ {
		r.Add(models.AnalyzedEmail{Classification: models.ClassificationResult{Category: models.CategoryNormal}})
	}
	var buf bytes.Buffer
	PrintReport(&buf, r, ConsoleOptions{})
	assert.Contains(t, buf.String(), "... and 3 more")
}

type fakePutter struct {
	mu     sync.Mutex
	calls  []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.calls = append(f.calls, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

// TestUploader verifies keys, content types and error wrapping.
func TestUploader(t *testing.T) {
	fake := &fakePutter{}
	u := NewUploader(fake, "reports", "/mailsift/")

	key, err := u.Upload(context.Background(), "me@example.com", "run-1", ".json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "mailsift/me@example.com/run-1.json", key)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "reports", aws.ToString(fake.calls[0].Bucket))
	assert.Equal(t, "application/json", aws.ToString(fake.calls[0].ContentType))
	assert.Equal(t, []byte(`{}`), fake.bodies[0])

	assert.Equal(t, "me@example.com/r.csv", NewUploader(fake, "reports", "").Key("me@example.com", "r", "csv"))

	fake.err = errors.New("access denied")
	_, err = u.Upload(context.Background(), "me@example.com", "run-2", "csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://reports/mailsift/me@example.com/run-2.csv")
}

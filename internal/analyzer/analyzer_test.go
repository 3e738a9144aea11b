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


package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/classify"
	"github.com/bcem/mailsift/internal/extract"
	"github.com/bcem/mailsift/internal/models"
)

// --- Mock image scanner ---

type mockScanner struct {
	mu    sync.Mutex
	scan  *models.ImageScan
	err   error
	panic bool
	calls int
}

func (m *mockScanner) Scan(_ context.Context, _ string) (*models.ImageScan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.panic {
		panic("decoder blew up")
	}
	return m.scan, m.err
}

func (m *mockScanner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

const promoHTML = `<html><body><img src="https://cdn.example/promo.png" alt="Spring"></body></html>`

func email(sender, subject, body string) models.Email {
	return models.Email{ID: "m1", Sender: sender, Subject: subject, Body: body, Date: "2026-03-02", HTML: promoHTML}
}

func promoScan() *models.ImageScan {
	return &models.ImageScan{
		Offers: []models.ImageOffer{
			{Discount: "25%", PromoCode: "SPRING25", ExpiryDate: "4/30/26", RawText: "25% OFF"},
			{Discount: "25%", Keywords: []string{"sale"}},
		},
		StoreNames: []string{"Orbitgear"},
	}
}

// TestAnalyzeExcluded verifies excluded mail gets no records and no scan.
func TestAnalyzeExcluded(t *testing.T) {
	scanner := &mockScanner{scan: promoScan()}
	a := New(scanner, Options{OCR: true})

	got := a.Analyze(context.Background(), email("noreply@reddit.com", "50% off today", "Use code SAVE50"))
	assert.Equal(t, models.CategoryExcluded, got.Category())
	assert.Nil(t, got.Coupon)
	assert.Nil(t, got.Membership)
	assert.Empty(t, got.ImageOffers)
	assert.Equal(t, 0, scanner.callCount())
}

// TestAnalyzeRecords verifies each category gets its own record and only
// that one.
func TestAnalyzeRecords(t *testing.T) {
	a := New(nil, Options{})
	ctx := context.Background()

	t.Run("membership", func(t *testing.T) {
		e := email("Walmart <help@walmart.com>", "Welcome to Walmart+!", "")
		got := a.Analyze(ctx, e)
		require.Equal(t, models.CategoryMembership, got.Category())
		require.NotNil(t, got.Membership)
		assert.Equal(t, extract.MembershipName(e.Subject, e.Body).Value, got.Membership.Name)
		assert.Equal(t, "2026-03-02", got.Membership.StartDate, "email date is the start fallback")
		assert.Equal(t, e.Sender, got.Membership.FromSender)
		assert.Nil(t, got.Card)
		assert.Nil(t, got.Coupon)
		assert.Nil(t, got.GiftCard)
	})

	t.Run("offer", func(t *testing.T) {
		e := email("Issuer <alerts@example-bank.com>", "Your Card Benefits Are Now Active", "")
		got := a.Analyze(ctx, e)
		require.Equal(t, models.CategoryOffer, got.Category())
		require.NotNil(t, got.Card)
		assert.Equal(t, extract.CardName(e.Subject, e.Body).Value, got.Card.Name)
		assert.Equal(t, "2026-03-02", got.Card.Date)
		assert.Nil(t, got.Membership)
	})

	t.Run("gift card", func(t *testing.T) {
		got := a.Analyze(ctx, email("Acme <hello@acme.com>", "You received a gift card!", "Card Number: 1234567890123456"))
		require.Equal(t, models.CategoryGiftCard, got.Category())
		require.NotNil(t, got.GiftCard)
		assert.Equal(t, "Acme", got.GiftCard.StoreName)
		assert.Nil(t, got.Coupon)
	})

	t.Run("normal", func(t *testing.T) {
		got := a.Analyze(ctx, email("user@example.com", "Hi", ""))
		assert.Equal(t, models.CategoryNormal, got.Category())
		assert.Equal(t, classify.RuleDefault, got.Classification.Rule)
		assert.Nil(t, got.Membership)
		assert.Nil(t, got.Card)
		assert.Nil(t, got.GiftCard)
		assert.Nil(t, got.Coupon)
	})
}

// TestAnalyzeImageRecategorization verifies a plain email with a
// promotional image becomes a coupon built from the image data.
func TestAnalyzeImageRecategorization(t *testing.T) {
	scanner := &mockScanner{scan: promoScan()}
	a := New(scanner, Options{OCR: true})

	got := a.Analyze(context.Background(), email("user@example.com", "Hi", ""))
	require.Equal(t, models.CategoryCoupon, got.Category())
	assert.Equal(t, RuleImageOffer, got.Classification.Rule)
	assert.Equal(t, []string{ImageMatchTerm}, got.Classification.MatchedTerms)
	assert.Len(t, got.ImageOffers, 2)
	assert.Equal(t, 1, scanner.callCount())

	require.NotNil(t, got.Coupon)
	assert.Equal(t, "Orbitgear", got.Coupon.StoreName)
	assert.Equal(t, []string{"25%"}, got.Coupon.DiscountDetails)
	assert.Equal(t, []string{"SPRING25"}, got.Coupon.CouponCodes)
	assert.Equal(t, "4/30/26", got.Coupon.ExpiryDate)
	assert.Equal(t, models.SourceOCR, got.Coupon.Source)
}

// TestAnalyzeImageNeverOverridesOrder verifies an order receipt stays
// Normal whatever its images say.
func TestAnalyzeImageNeverOverridesOrder(t *testing.T) {
	scanner := &mockScanner{scan: promoScan()}
	a := New(scanner, Options{OCR: true})

	got := a.Analyze(context.Background(), email("Shop <orders@acme.com>", "Your order has shipped - $49.99 charged", ""))
	assert.Equal(t, models.CategoryNormal, got.Category())
	assert.Equal(t, classify.RuleOrder, got.Classification.Rule)
	assert.Nil(t, got.Coupon)
}

// TestAnalyzeImageConditions verifies when the scanner is consulted.
func TestAnalyzeImageConditions(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		opts      Options
		email     models.Email
		wantCalls int
	}{
		{
			name:      "disabled",
			opts:      Options{},
			email:     email("user@example.com", "Hi", ""),
			wantCalls: 0,
		},
		{
			name: "no html",
			opts: Options{OCR: true},
			email: func() models.Email {
				e := email("user@example.com", "Hi", "")
				e.HTML = ""
				return e
			}(),
			wantCalls: 0,
		},
		{
			name:      "membership never scans",
			opts:      Options{OCR: true},
			email:     email("Walmart <help@walmart.com>", "Welcome to Walmart+!", ""),
			wantCalls: 0,
		},
		{
			name:      "incomplete normal email scans",
			opts:      Options{OCR: true},
			email:     email("user@example.com", "Hi", ""),
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := &mockScanner{scan: &models.ImageScan{}}
			New(scanner, tt.opts).Analyze(ctx, tt.email)
			assert.Equal(t, tt.wantCalls, scanner.callCount())
		})
	}
}

// TestAnalyzeImageFailureIsolated verifies scanner errors and panics are
// recorded on the email without changing its category.
func TestAnalyzeImageFailureIsolated(t *testing.T) {
	ctx := context.Background()

	failing := New(&mockScanner{err: errors.New("vision quota exceeded")}, Options{OCR: true})
	got := failing.Analyze(ctx, email("user@example.com", "Hi", ""))
	assert.Equal(t, models.CategoryNormal, got.Category())
	assert.Contains(t, got.ImageError, "vision quota exceeded")
	assert.Empty(t, got.ImageOffers)

	panicking := New(&mockScanner{panic: true}, Options{OCR: true})
	got = panicking.Analyze(ctx, email("user@example.com", "Hi", ""))
	assert.Equal(t, models.CategoryNormal, got.Category())
	assert.Contains(t, got.ImageError, "panic")
}

// TestAnalyzeStrictMode verifies non-commercial senders are demoted.
func TestAnalyzeStrictMode(t *testing.T) {
	ctx := context.Background()
	e := email("Pal <pal@gmail.com>", "Welcome to Walmart+!", "")

	lenient := New(nil, Options{}).Analyze(ctx, e)
	require.Equal(t, models.CategoryMembership, lenient.Category())
	assert.False(t, lenient.Classification.IsShoppingDomain)

	strict := New(nil, Options{StrictMode: true}).Analyze(ctx, e)
	assert.Equal(t, models.CategoryNormal, strict.Category())
	assert.Equal(t, RuleStrictMode, strict.Classification.Rule)
	assert.Nil(t, strict.Membership)
}

// TestRun verifies emails land in their buckets under one run ID.
func TestRun(t *testing.T) {
	a := New(nil, Options{})
	report := a.Run(context.Background(), "me@example.com", []models.Email{
		email("noreply@reddit.com", "50% off today", ""),
		email("Walmart <help@walmart.com>", "Welcome to Walmart+!", ""),
		email("user@example.com", "Hi", ""),
	})

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "me@example.com", report.Account)
	assert.Equal(t, 3, report.Total())
	assert.Len(t, report.Excluded, 1)
	assert.Len(t, report.Membership, 1)
	assert.Len(t, report.Normal, 1)
}

// TestSubscriptions verifies senders are counted once, case-insensitively.
func TestSubscriptions(t *testing.T) {
	analyzed := func(sender string) models.AnalyzedEmail {
		return models.AnalyzedEmail{Email: models.Email{Sender: sender}}
	}
	report := &models.Report{
		Membership: []models.AnalyzedEmail{
			analyzed("Walmart <help@walmart.com>"),
			analyzed("Walmart <HELP@walmart.com>"),
			analyzed("Costco <member@costco.com>"),
		},
		Offer: []models.AnalyzedEmail{
			analyzed("Chase <alerts@chase.com>"),
			analyzed("member@costco.com"),
		},
	}

	stats := Subscriptions(report)
	assert.Equal(t, 2, stats.UniqueMembership)
	assert.Equal(t, 2, stats.UniqueOffer)
	assert.Equal(t, 3, stats.UniqueTotal)
	assert.Equal(t, []string{"help@walmart.com", "member@costco.com"}, stats.MembershipSenders)
}

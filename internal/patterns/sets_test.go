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

package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetsMatch checks representative surface forms for each family.
func TestSetsMatch(t *testing.T) {
	tests := []struct {
		name string
		set  *Set
		text string
		want bool
	}{
		{"tier colon", Membership, "Beauty Insider: your points are waiting", true},
		{"membership word", Membership, "Your membership renews soon", true},
		{"welcome", Membership, "Welcome to Walmart+!", true},
		{"membership plain", Membership, "Your package is late", false},

		{"card benefits", Offer, "Your Card Benefits Are Now Active", true},
		{"rewards points", Offer, "Earn Rewards Points on Every Purchase", true},
		{"offer plain", Offer, "Lunch on Friday?", false},

		{"percent off", Coupon, "Take 25% off everything", true},
		{"dollar off", Coupon, "$10 off your next order", true},
		{"bogo", Coupon, "BOGO on all tees", true},
		{"coupon plain", Coupon, "Meeting notes attached", false},

		{"gift card", GiftCard, "You received a gift card", true},
		{"egift", GiftCard, "Your eGift card is ready", true},
		{"gift plain", GiftCard, "Quarterly report", false},

		{"shipped", Order, "Your order has shipped", true},
		{"tracking", Order, "Tracking number: 1Z999", true},
		{"order plain", Order, "Spring collection is here", false},

		{"empty", Coupon, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Match(tt.text))
		})
	}
}

// TestSetFindLimit verifies Find respects the limit and dedupes fragments.
func TestSetFindLimit(t *testing.T) {
	text := "10% off, 20% off, 30% off, 40% off, 50% off, 60% off, 10% off"
	got := Coupon.Find(text, 5)
	assert.Len(t, got, 5)
	assert.Equal(t, "10% off", got[0])

	assert.Empty(t, Coupon.Find("", 5))
	assert.Equal(t, "coupon", Coupon.Name())
	assert.Greater(t, Coupon.Len(), 50)
}

// TestPromotionalSale verifies the sale heuristic used to veto gift cards.
func TestPromotionalSale(t *testing.T) {
	assert.True(t, IsPromotionalSale("Nordstrom Half-Yearly Sale - up to 60% off"))
	assert.True(t, IsPromotionalSale("Half Yearly event starts now"))
	assert.True(t, IsPromotionalSale("Clearance on boots"))
	assert.False(t, IsPromotionalSale("Your gift card has arrived"))
	assert.False(t, IsPromotionalSale(""))
}

// TestGiftCardPurchase verifies purchase phrasing is recognised.
func TestGiftCardPurchase(t *testing.T) {
	assert.True(t, MentionsGiftCardPurchase("Not sure what to get? Buy a gift card."))
	assert.True(t, MentionsGiftCardPurchase("send gift cards instantly"))
	assert.False(t, MentionsGiftCardPurchase("Your gift card balance is $25"))
}

// TestCouponCodes verifies code phrasing and the case-sensitive capture.
func TestCouponCodes(t *testing.T) {
	assert.Equal(t, []string{"SAVE20"}, CouponCodes("Use code SAVE20 at checkout"))
	assert.True(t, HasCouponCode("Promo Code: FALL2025"))
	assert.True(t, HasCouponCode("Enter WELCOME15 in your bag"))
	assert.False(t, HasCouponCode("Use your points on every purchase"))
	assert.False(t, HasCouponCode(""))
}

// TestPromoTokens verifies short tokens are ignored.
func TestPromoTokens(t *testing.T) {
	assert.Equal(t, []string{"SAVE20", "25OFF"}, PromoTokens("Try SAVE20 or 25OFF on a 4K TV"))
	assert.Empty(t, PromoTokens("Members earn points on every purchase."))
}

// TestExplicitDiscounts verifies percent and dollar discounts.
func TestExplicitDiscounts(t *testing.T) {
	assert.Equal(t, []string{"25% off", "$10 off"}, ExplicitDiscounts("Get 25% off or $10 off today"))
	assert.Empty(t, ExplicitDiscounts("Order total $49.99"))
}

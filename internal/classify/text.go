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

package classify

import (
	"strings"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/patterns"
)

// MaxMatchedTerms caps the diagnostic fragments kept per family.
const MaxMatchedTerms = 5

// TextSignals is the per-family outcome of running the pattern libraries
// over subject and body. Several families may fire at once; precedence is
// left to the resolver.
type TextSignals struct {
	Membership bool
	Offer      bool
	Coupon     bool
	GiftCard   bool
	Order      bool

	// GiftCardFromBody is set when only the body mentioned gift cards.
	GiftCardFromBody bool

	// PromotionalSale marks sale phrasing anywhere in the email, or a body
	// gift card mention that offers gift cards for purchase.
	PromotionalSale bool

	// MembershipAdjacent is set when membership language fired or the
	// subject talks about rewards or points.
	MembershipAdjacent bool

	// CouponCodeInBody is set when the body introduces an actual code.
	CouponCodeInBody bool

	// PromoContent lists promo-code tokens and explicit discounts in the body.
	PromoContent []string

	Terms map[string][]string
}

// EvaluateText runs every family against subject and, where allowed, body.
//
// Offer and coupon language is read from the subject only. Membership and
// gift card language falls back to the body when the subject is silent.
// Order language is checked in both.
func EvaluateText(subject, body string) TextSignals {
	s := TextSignals{Terms: make(map[string][]string)}
	hasBody := strings.TrimSpace(body) != ""

	s.Offer = patterns.Offer.Match(subject)
	s.Coupon = patterns.Coupon.Match(subject)

	s.Membership = patterns.Membership.Match(subject)
	membershipText := subject
	if !s.Membership && hasBody && patterns.Membership.Match(body) {
		s.Membership = true
		membershipText = body
	}

	s.GiftCard = patterns.GiftCard.Match(subject)
	giftCardText := subject
	if !s.GiftCard && hasBody && patterns.GiftCard.Match(body) {
		s.GiftCard, s.GiftCardFromBody = true, true
		giftCardText = body
	}

	s.PromotionalSale = patterns.IsPromotionalSale(subject) || patterns.IsPromotionalSale(body)
	if s.GiftCardFromBody && patterns.MentionsGiftCardPurchase(body) {
		s.PromotionalSale = true
	}

	s.Order = patterns.Order.Match(subject)
	orderText := subject
	if !s.Order && hasBody && patterns.Order.Match(body) {
		s.Order = true
		orderText = body
	}

	lowerSubject := strings.ToLower(subject)
	s.MembershipAdjacent = s.Membership ||
		strings.Contains(lowerSubject, "rewards") ||
		strings.Contains(lowerSubject, "points")

	if hasBody {
		s.CouponCodeInBody = patterns.HasCouponCode(body)
		s.PromoContent = lo.Uniq(append(patterns.PromoTokens(body), patterns.ExplicitDiscounts(body)...))
	}

	record := func(set *patterns.Set, fired bool, text string) {
		if fired {
			s.Terms[set.Name()] = set.Find(text, MaxMatchedTerms)
		}
	}
	record(patterns.Membership, s.Membership, membershipText)
	record(patterns.Offer, s.Offer, subject)
	record(patterns.Coupon, s.Coupon, subject)
	record(patterns.GiftCard, s.GiftCard, giftCardText)
	record(patterns.Order, s.Order, orderText)
	return s
}

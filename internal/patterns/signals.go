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
	"regexp"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Auxiliary expressions used by the resolver to confirm or veto a family
// match. The code expressions keep the captured code case-sensitive so
// ordinary words after "use" or "enter" are not mistaken for codes.
var (
	saleRe = regexp.MustCompile(`(?i)\b(sale|clearance|promotion|promotional|flash\s*sale|half[-\s]*yearly|end\s*of\s*season|seasonal\s*sale|warehouse\s*sale|up\s*to\s+\d+%\s*off|\d+%\s*off|\d+%[-\s]*\d+%\s*off)\b`)

	giftCardPurchaseRe = regexp.MustCompile(`(?i)\b(buy|purchase|shop\s+for|give|send)\s+(?:a\s+)?gift\s*cards?`)

	couponCodeRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:coupon\s*code|promo\s*code|discount\s*code|offer\s*code|use\s*code|code)\s*[:\s]+["']?([A-Z0-9]{4,20})\b`),
		regexp.MustCompile(`\b(?i:apply|enter|use)\s+(?i:code\s+)?["']?([A-Z0-9]{4,20})\b`),
	}

	promoTokenRe = regexp.MustCompile(`\b([A-Z]+[0-9]+[A-Z0-9]*|[0-9]+[A-Z]+[A-Z0-9]*)\b`)

	explicitDiscountRe = regexp.MustCompile(`(?i)\b\d{1,2}%\s+off|\$\d+\s+off`)
)

// minPromoTokenLen keeps short tokens such as "4K" or "2X" out of the
// promo code signal.
const minPromoTokenLen = 4

// IsPromotionalSale reports whether text reads as a sale announcement.
func IsPromotionalSale(text string) bool {
	return text != "" && saleRe.MatchString(text)
}

// SaleTerms returns the sale phrases found in text.
func SaleTerms(text string, limit int) []string {
	return saleRe.FindAllString(text, limit)
}

// MentionsGiftCardPurchase reports phrases offering gift cards for sale,
// such as "buy a gift card", as opposed to delivering one.
func MentionsGiftCardPurchase(text string) bool {
	return text != "" && giftCardPurchaseRe.MatchString(text)
}

// CouponCodes returns the distinct codes introduced by "code:", "use code",
// "apply", "enter" and similar phrasing.
func CouponCodes(text string) []string {
	var out []string
	for _, re := range couponCodeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
		}
	}
	return lo.Uniq(out)
}

// HasCouponCode reports whether CouponCodes finds anything.
func HasCouponCode(text string) bool {
	for _, re := range couponCodeRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// PromoTokens returns upper-case alphanumeric tokens mixing letters and
// digits, such as "SAVE20" or "25OFF".
func PromoTokens(text string) []string {
	var out []string
	for _, tok := range promoTokenRe.FindAllString(text, -1) {
		if utf8.RuneCountInString(tok) >= minPromoTokenLen {
			out = append(out, tok)
		}
	}
	return out
}

// ExplicitDiscounts returns "N% off" and "$N off" phrases.
func ExplicitDiscounts(text string) []string {
	return explicitDiscountRe.FindAllString(text, -1)
}

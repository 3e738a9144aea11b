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
	"github.com/bcem/mailsift/internal/models"
)

// Evidence is everything the resolver may look at for one email.
type Evidence struct {
	Domain DomainVerdict
	Text   TextSignals
}

// Rule is one step of the precedence chain. Rules are evaluated in order
// and the first whose Applies returns true decides the category.
type Rule struct {
	Name     string
	Category models.Category
	Applies  func(Evidence) bool
	// Terms returns the fragments reported for the decision.
	Terms func(Evidence) []string
}

// Rule names, stable across releases; they are persisted with results.
const (
	RuleExcluded         = "excluded-sender"
	RuleOrder            = "order-override"
	RuleGiftCardProvider = "giftcard-provider"
	RuleGiftCardContent  = "giftcard-content"
	RuleCouponVerified   = "coupon-verified"
	RuleCouponPattern    = "coupon-pattern"
	RuleMembership       = "membership"
	RuleOffer            = "offer"
	RuleDefault          = "default"
)

// DefaultRules is the precedence order. Sender-only evidence comes first,
// then order receipts, gift cards, verified coupons, unverified coupons,
// membership and offers. Reordering changes classification outcomes.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     RuleExcluded,
			Category: models.CategoryExcluded,
			Applies:  func(e Evidence) bool { return e.Domain.Excluded },
			Terms:    func(e Evidence) []string { return []string{e.Domain.ExcludedBy} },
		},
		{
			Name:     RuleOrder,
			Category: models.CategoryNormal,
			Applies:  func(e Evidence) bool { return e.Text.Order },
			Terms:    familyTerms("order"),
		},
		{
			Name:     RuleGiftCardProvider,
			Category: models.CategoryGiftCard,
			Applies:  func(e Evidence) bool { return e.Domain.GiftCardProvider },
			Terms:    func(e Evidence) []string { return []string{e.Domain.Sender.Domain} },
		},
		{
			Name:     RuleGiftCardContent,
			Category: models.CategoryGiftCard,
			Applies:  func(e Evidence) bool { return e.Text.GiftCard && !e.Text.PromotionalSale },
			Terms:    familyTerms("giftcard"),
		},
		{
			Name:     RuleCouponVerified,
			Category: models.CategoryCoupon,
			Applies:  func(e Evidence) bool { return len(e.Text.PromoContent) > 0 },
			Terms: func(e Evidence) []string {
				return capTerms(append(append([]string{}, e.Text.PromoContent...), e.Text.Terms["coupon"]...))
			},
		},
		{
			// A coupon keyword next to rewards or points vocabulary is a
			// membership benefit unless the body carries a real code.
			Name:     RuleCouponPattern,
			Category: models.CategoryCoupon,
			Applies: func(e Evidence) bool {
				if !e.Text.Coupon {
					return false
				}
				return !e.Text.MembershipAdjacent || e.Text.CouponCodeInBody
			},
			Terms: familyTerms("coupon"),
		},
		{
			Name:     RuleMembership,
			Category: models.CategoryMembership,
			Applies:  func(e Evidence) bool { return e.Domain.Hint == HintMembership || e.Text.Membership },
			Terms:    hintOrFamily(HintMembership, "membership"),
		},
		{
			Name:     RuleOffer,
			Category: models.CategoryOffer,
			Applies:  func(e Evidence) bool { return e.Domain.Hint == HintOffer || e.Text.Offer },
			Terms:    hintOrFamily(HintOffer, "offer"),
		},
		{
			Name:     RuleDefault,
			Category: models.CategoryNormal,
			Applies:  func(Evidence) bool { return true },
			Terms:    func(Evidence) []string { return nil },
		},
	}
}

func familyTerms(family string) func(Evidence) []string {
	return func(e Evidence) []string { return e.Text.Terms[family] }
}

func hintOrFamily(h Hint, family string) func(Evidence) []string {
	return func(e Evidence) []string {
		if terms := e.Text.Terms[family]; len(terms) > 0 {
			return terms
		}
		if e.Domain.Hint == h {
			return []string{"sender:" + e.Domain.HintKeyword}
		}
		return nil
	}
}

func capTerms(terms []string) []string {
	if len(terms) > MaxMatchedTerms {
		return terms[:MaxMatchedTerms]
	}
	return terms
}

// Resolver applies an ordered rule list.
type Resolver struct {
	rules []Rule
}

// NewResolver returns a resolver over rules. The last rule must always
// apply; DefaultRules ends with such a catch-all.
func NewResolver(rules []Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Rules returns the rule chain in evaluation order.
func (r *Resolver) Rules() []Rule {
	return r.rules
}

// Resolve returns the decision of the first applicable rule. If no rule
// applies the email is Normal.
func (r *Resolver) Resolve(e Evidence) models.ClassificationResult {
	for _, rule := range r.rules {
		if !rule.Applies(e) {
			continue
		}
		var terms []string
		if rule.Terms != nil {
			terms = capTerms(rule.Terms(e))
		}
		return models.ClassificationResult{
			Category:         rule.Category,
			MatchedTerms:     terms,
			IsShoppingDomain: e.Domain.Commercial,
			Rule:             rule.Name,
		}
	}
	return models.ClassificationResult{
		Category:         models.CategoryNormal,
		IsShoppingDomain: e.Domain.Commercial,
		Rule:             RuleDefault,
	}
}

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

	"github.com/bcem/mailsift/internal/lexicon"
	"github.com/bcem/mailsift/internal/textnorm"
)

// Hint is a category suggestion derived from the sender alone.
type Hint string

const (
	HintUnknown    Hint = "unknown"
	HintMembership Hint = "membership"
	HintOffer      Hint = "offer"
	HintCoupon     Hint = "coupon"
)

// DomainVerdict is what the sender address reveals without reading any
// message content.
type DomainVerdict struct {
	Sender textnorm.Sender

	// Excluded is authoritative: the email is finalised as Excluded.
	Excluded   bool
	ExcludedBy string

	// Commercial is true for shopping and retail senders. It is independent
	// of the category and only drives strict mode.
	Commercial bool

	// GiftCardProvider marks gift card and rewards aggregators.
	GiftCardProvider bool

	Hint        Hint
	HintKeyword string
}

// ClassifyDomain judges a raw From header.
func ClassifyDomain(from string) DomainVerdict {
	sender := textnorm.ParseSender(from)
	v := DomainVerdict{Sender: sender, Hint: HintUnknown}

	domain := sender.Domain
	if domain != "" {
		if d, ok := lexicon.ExcludedPlatforms.Match(domain); ok {
			v.Excluded, v.ExcludedBy = true, d
		} else if ind, ok := lexicon.NewsletterIndicators.Match(domain); ok {
			v.Excluded, v.ExcludedBy = true, ind
		}
		v.GiftCardProvider = lexicon.GiftCardProviders.Contains(domain)
	}
	v.Commercial = isCommercial(domain)
	v.Hint, v.HintKeyword = senderHint(domain, strings.ToLower(sender.Name))
	return v
}

// isCommercial applies the shopping-domain test: personal webmail and
// excluded platforms are never commercial; the curated allowlist always
// is; otherwise a retail fragment plus a commerce TLD, a store TLD, or a
// gift card provider qualifies.
func isCommercial(domain string) bool {
	if domain == "" {
		return false
	}
	if lexicon.PersonalDomains.Contains(lexicon.BaseDomain(domain)) {
		return false
	}
	if domain == lexicon.ForwardingDomain || strings.HasSuffix(domain, "."+lexicon.ForwardingDomain) {
		return false
	}
	if lexicon.ExcludedPlatforms.Contains(domain) {
		return false
	}
	if lexicon.ShoppingDomains.Contains(domain) {
		return true
	}
	if _, ok := lexicon.ShoppingIndicators.Match(domain); ok && lexicon.HasSuffix(domain, lexicon.CommerceTLDs) {
		return true
	}
	if lexicon.HasSuffix(domain, lexicon.StoreTLDs) {
		return true
	}
	return lexicon.GiftCardProviders.Contains(domain)
}

// senderHint checks the keyword families, card vocabulary first, against
// the domain and the display name.
func senderHint(domain, name string) (Hint, string) {
	families := []struct {
		hint     Hint
		keywords []string
	}{
		{HintOffer, lexicon.CardHintKeywords},
		{HintMembership, lexicon.MembershipHintKeywords},
		{HintCoupon, lexicon.RetailHintKeywords},
	}
	for _, f := range families {
		for _, kw := range f.keywords {
			if strings.Contains(domain, kw) || strings.Contains(name, kw) {
				return f.hint, kw
			}
		}
	}
	return HintUnknown, ""
}

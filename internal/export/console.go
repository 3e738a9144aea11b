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
	"fmt"
	"io"
	"strings"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/models"
)

// maxListed caps the Excluded and Normal listings.
const maxListed = 5

// ConsoleOptions controls PrintReport.
type ConsoleOptions struct {
	// Verbose adds the matched terms behind each decision.
	Verbose bool
	// Stats appends unique subscription sender counts.
	Stats bool
}

var sectionTitles = map[models.Category]string{
	models.CategoryMembership: "MEMBERSHIP (service subscriptions)",
	models.CategoryOffer:      "OFFER (credit card benefits and rewards)",
	models.CategoryGiftCard:   "GIFT CARDS",
	models.CategoryCoupon:     "COUPON (discounts and promo codes)",
	models.CategoryExcluded:   "EXCLUDED (social, forums, newsletters)",
	models.CategoryNormal:     "NORMAL",
}

// PrintReport writes a human-readable listing of r to w.
func PrintReport(w io.Writer, r *models.Report, opts ConsoleOptions) {
	p := &printer{w: w}
	rule := strings.Repeat("=", 60)

	p.line(rule)
	p.line("EMAIL ANALYSIS RESULTS for %s", r.Account)
	p.line(rule)
	p.line("")
	p.line("Total emails analyzed: %d", r.Total())
	counts := r.Counts()
	for _, c := range models.Categories {
		p.line("  %-12s %d", string(c)+":", counts[c])
	}

	for _, c := range models.Categories {
		bucket := r.Bucket(c)
		if len(bucket) == 0 {
			continue
		}
		p.line("")
		p.line(strings.Repeat("-", 60))
		p.line(sectionTitles[c])
		p.line(strings.Repeat("-", 60))

		shown := bucket
		if (c == models.CategoryExcluded || c == models.CategoryNormal) && len(shown) > maxListed {
			shown = shown[:maxListed]
		}
		for i, a := range shown {
			p.email(i+1, a, opts.Verbose)
		}
		if len(shown) < len(bucket) {
			p.line("")
			p.line("  ... and %d more", len(bucket)-len(shown))
		}
	}

	if opts.Stats {
		s := analyzer.Subscriptions(r)
		p.line("")
		p.line(rule)
		p.line("SUBSCRIPTION SENDERS")
		p.line(rule)
		p.line("  Membership: %d", s.UniqueMembership)
		p.line("  Offer:      %d", s.UniqueOffer)
		p.line("  Total:      %d", s.UniqueTotal)
	}
}

type printer struct {
	w io.Writer
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(label string, value string) {
	if value != "" {
		p.line("     %s: %s", label, value)
	}
}

func (p *printer) list(label string, values []string) {
	if len(values) > 0 {
		p.field(label, strings.Join(values, ", "))
	}
}

func (p *printer) email(n int, a models.AnalyzedEmail, verbose bool) {
	badge := ""
	if a.Classification.IsShoppingDomain {
		badge = "[shop] "
	}
	p.line("")
	p.line("  %d. %s%s", n, badge, a.Email.Subject)

	switch {
	case a.Membership != nil:
		p.field("Membership", a.Membership.Name)
	case a.Card != nil:
		p.field("Card", a.Card.Name)
	case a.GiftCard != nil:
		p.field("Store", a.GiftCard.StoreName)
	case a.Coupon != nil:
		p.field("Store", a.Coupon.StoreName)
	}
	p.field("From", a.Email.Sender)
	p.field("Date", a.Email.Date)

	switch {
	case a.Membership != nil:
		p.field("Started", a.Membership.StartDate)
		p.field("Expires", a.Membership.ExpiryDate)
		p.list("Benefits", a.Membership.Benefits)
	case a.GiftCard != nil:
		g := a.GiftCard
		p.field("Card Number", g.CardNumber)
		p.field("PIN", g.PIN)
		p.field("Value", g.Value)
		p.field("Redeem", g.RedemptionURL)
	case a.Coupon != nil:
		c := a.Coupon
		p.list("Offer", c.DiscountDetails)
		p.list("Promo Codes", c.CouponCodes)
		if c.FreeShipping {
			p.line("     Free shipping available")
		}
		p.field("Expires", c.ExpiryDate)
		p.list("Rewards", c.PointsRewards)
		if len(a.ImageOffers) > 0 {
			p.line("     Image offers (%d):", len(a.ImageOffers))
			for _, o := range a.ImageOffers {
				p.line("        - %s", imageSummary(o))
			}
		}
	}

	if verbose && len(a.Classification.MatchedTerms) > 0 {
		terms := a.Classification.MatchedTerms
		if len(terms) > 5 {
			terms = terms[:5]
		}
		p.list("Matched", terms)
		p.field("Rule", a.Classification.Rule)
	}
}

func imageSummary(o models.ImageOffer) string {
	var parts []string
	if o.Discount != "" {
		parts = append(parts, o.Discount)
	}
	if o.PromoCode != "" {
		parts = append(parts, "code "+o.PromoCode)
	}
	if o.ExpiryDate != "" {
		parts = append(parts, "expires "+o.ExpiryDate)
	}
	if len(parts) == 0 {
		text := strings.Join(strings.Fields(o.RawText), " ")
		if len(text) > 60 {
			text = text[:60] + "..."
		}
		return text
	}
	return strings.Join(parts, ", ")
}

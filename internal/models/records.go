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

package models

import "time"

// ClassificationResult is the decision for one email.
type ClassificationResult struct {
	Category Category `json:"category"`
	// MatchedTerms holds the literal fragments behind the decision, for
	// verbose display only.
	MatchedTerms     []string `json:"matched_terms,omitempty"`
	IsShoppingDomain bool     `json:"is_shopping_domain"`
	// Rule names the resolver rule that fired.
	Rule string `json:"rule"`
}

// Default names returned when an extractor resolves nothing.
const (
	DefaultMembershipName = "Membership"
	DefaultCardName       = "Credit Card"
	DefaultStoreName      = "Store/Website"
	UnknownStoreName      = "Unknown Store"
)

// MembershipRecord is extracted from Membership emails.
type MembershipRecord struct {
	Name       string   `json:"name"`
	StartDate  string   `json:"start_date,omitempty"`
	ExpiryDate string   `json:"expiry_date,omitempty"`
	Benefits   []string `json:"benefits,omitempty"`
	FromSender string   `json:"from_sender"`
}

// CardRecord is extracted from Offer emails.
type CardRecord struct {
	Name       string `json:"name"`
	FromSender string `json:"from_sender"`
	Date       string `json:"date,omitempty"`
}

// GiftCardRecord holds whatever gift-card details were found. Every field
// is optional.
type GiftCardRecord struct {
	CardNumber    string `json:"card_number,omitempty"`
	PIN           string `json:"pin,omitempty"`
	Value         string `json:"value,omitempty"`
	RedemptionURL string `json:"redemption_url,omitempty"`
	StoreName     string `json:"store_name,omitempty"`
}

// Empty reports whether no detail was extracted.
func (g GiftCardRecord) Empty() bool {
	return g.CardNumber == "" && g.PIN == "" && g.Value == "" && g.RedemptionURL == ""
}

// Source tags where a coupon record's data came from.
type Source string

const (
	SourceFooter Source = "footer"
	SourceOCR    Source = "ocr"
	SourceBody   Source = "body"
)

// CouponRecord is extracted from Coupon emails.
type CouponRecord struct {
	StoreName       string   `json:"store_name"`
	Description     string   `json:"description"`
	DiscountDetails []string `json:"discount_details,omitempty"`
	CouponCodes     []string `json:"coupon_codes,omitempty"`
	ExpiryDate      string   `json:"expiry_date,omitempty"`
	ValidityTerms   []string `json:"validity_terms,omitempty"`
	PointsRewards   []string `json:"points_rewards,omitempty"`
	FreeShipping    bool     `json:"free_shipping,omitempty"`
	Source          Source   `json:"source"`
}

// ImageOffer is promotional data recovered from one embedded image.
type ImageOffer struct {
	Discount   string   `json:"discount,omitempty"`
	PromoCode  string   `json:"promo_code,omitempty"`
	ExpiryDate string   `json:"expiry_date,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	RawText    string   `json:"raw_text,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
}

// HasPromotion reports whether the offer carries a discount, a code, or one
// of the given keywords.
func (o ImageOffer) HasPromotion(keywords ...string) bool {
	if o.Discount != "" || o.PromoCode != "" {
		return true
	}
	for _, k := range o.Keywords {
		for _, want := range keywords {
			if k == want {
				return true
			}
		}
	}
	return false
}

// ImageScan is the output of the image scanner for one email.
type ImageScan struct {
	Offers     []ImageOffer `json:"offers,omitempty"`
	StoreNames []string     `json:"store_names,omitempty"`
}

// AnalyzedEmail is one email with its decision and the record for its
// category. At most one of Membership, Card, GiftCard and Coupon is set.
type AnalyzedEmail struct {
	Email          Email                `json:"email"`
	Classification ClassificationResult `json:"classification"`
	Membership     *MembershipRecord    `json:"membership,omitempty"`
	Card           *CardRecord          `json:"card,omitempty"`
	GiftCard       *GiftCardRecord      `json:"gift_card,omitempty"`
	Coupon         *CouponRecord        `json:"coupon,omitempty"`
	ImageOffers    []ImageOffer         `json:"image_offers,omitempty"`
	ImageError     string               `json:"image_error,omitempty"`
}

// Category is a shorthand for a.Classification.Category.
func (a AnalyzedEmail) Category() Category {
	return a.Classification.Category
}

// Report holds one analysis run, bucketed by category in fetch order.
type Report struct {
	RunID       string    `json:"run_id"`
	Account     string    `json:"account"`
	GeneratedAt time.Time `json:"generated_at"`

	Membership []AnalyzedEmail `json:"membership"`
	Offer      []AnalyzedEmail `json:"offer"`
	GiftCard   []AnalyzedEmail `json:"giftcard"`
	Coupon     []AnalyzedEmail `json:"coupon"`
	Excluded   []AnalyzedEmail `json:"excluded"`
	Normal     []AnalyzedEmail `json:"normal"`
}

// Add appends a to the bucket for its category.
func (r *Report) Add(a AnalyzedEmail) {
	switch a.Category() {
	case CategoryMembership:
		r.Membership = append(r.Membership, a)
	case CategoryOffer:
		r.Offer = append(r.Offer, a)
	case CategoryGiftCard:
		r.GiftCard = append(r.GiftCard, a)
	case CategoryCoupon:
		r.Coupon = append(r.Coupon, a)
	case CategoryExcluded:
		r.Excluded = append(r.Excluded, a)
	default:
		r.Normal = append(r.Normal, a)
	}
}

// Bucket returns the emails assigned to c.
func (r *Report) Bucket(c Category) []AnalyzedEmail {
	switch c {
	case CategoryMembership:
		return r.Membership
	case CategoryOffer:
		return r.Offer
	case CategoryGiftCard:
		return r.GiftCard
	case CategoryCoupon:
		return r.Coupon
	case CategoryExcluded:
		return r.Excluded
	case CategoryNormal:
		return r.Normal
	}
	return nil
}

// Counts returns the bucket sizes keyed by category.
func (r *Report) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = len(r.Bucket(c))
	}
	return counts
}

// Total is the number of emails in the report.
func (r *Report) Total() int {
	n := 0
	for _, c := range Categories {
		n += len(r.Bucket(c))
	}
	return n
}

// All returns every email, bucket by bucket in Categories order.
func (r *Report) All() []AnalyzedEmail {
	all := make([]AnalyzedEmail, 0, r.Total())
	for _, c := range Categories {
		all = append(all, r.Bucket(c)...)
	}
	return all
}

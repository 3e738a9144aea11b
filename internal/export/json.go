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


// Package export renders an analysis report for people and other
// programs: a console listing, CSV rows, a structured JSON document and
// uploads of those files to S3.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bcem/mailsift/internal/models"
)

// MembershipEntry is one membership program in the JSON view.
type MembershipEntry struct {
	From       string   `json:"from"`
	StartDate  string   `json:"start_date"`
	ExpiryDate string   `json:"expiry_date"`
	Benefits   []string `json:"benefits,omitempty"`
	Status     string   `json:"status"`
}

// CardEntry is one credit card in the JSON view.
type CardEntry struct {
	From   string `json:"from"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// CouponEntry is one coupon under its store in the JSON view.
type CouponEntry struct {
	Coupon       string   `json:"coupon"`
	Discounts    []string `json:"discounts,omitempty"`
	CouponCodes  []string `json:"coupon_codes,omitempty"`
	Validity     string   `json:"validity,omitempty"`
	Terms        []string `json:"terms,omitempty"`
	FreeShipping bool     `json:"free_shipping,omitempty"`
	Source       string   `json:"source"`
}

// AccountView is the JSON document for one mailbox.
type AccountView struct {
	FetchedAt  time.Time                  `json:"fetched_at"`
	RunID      string                     `json:"run_id,omitempty"`
	Summary    map[string]int             `json:"summary"`
	Membership map[string]MembershipEntry `json:"membership"`
	Offer      map[string]CardEntry       `json:"offer"`
	GiftCard   []models.GiftCardRecord    `json:"giftcard"`
	Coupon     map[string][]CouponEntry   `json:"coupon"`
}

const activeStatus = "Active"

// BuildView groups a report the way people browse it: memberships by
// program, cards by product, coupons by store. The result is keyed by
// account. A later email for the same program or card replaces an
// earlier one.
func BuildView(r *models.Report) map[string]AccountView {
	v := AccountView{
		FetchedAt:  r.GeneratedAt,
		RunID:      r.RunID,
		Summary:    make(map[string]int, len(models.Categories)),
		Membership: map[string]MembershipEntry{},
		Offer:      map[string]CardEntry{},
		GiftCard:   []models.GiftCardRecord{},
		Coupon:     map[string][]CouponEntry{},
	}
	for c, n := range r.Counts() {
		v.Summary["total_"+strings.ToLower(string(c))] = n
	}

	for _, a := range r.Membership {
		if m := a.Membership; m != nil {
			v.Membership[m.Name] = MembershipEntry{
				From:       m.FromSender,
				StartDate:  m.StartDate,
				ExpiryDate: m.ExpiryDate,
				Benefits:   m.Benefits,
				Status:     activeStatus,
			}
		}
	}
	for _, a := range r.Offer {
		if c := a.Card; c != nil {
			v.Offer[c.Name] = CardEntry{From: c.FromSender, Date: c.Date, Status: activeStatus}
		}
	}
	for _, a := range r.GiftCard {
		if g := a.GiftCard; g != nil {
			v.GiftCard = append(v.GiftCard, *g)
		}
	}
	for _, a := range r.Coupon {
		c := a.Coupon
		if c == nil {
			continue
		}
		v.Coupon[c.StoreName] = append(v.Coupon[c.StoreName], CouponEntry{
			Coupon:       c.Description,
			Discounts:    c.DiscountDetails,
			CouponCodes:  c.CouponCodes,
			Validity:     c.ExpiryDate,
			Terms:        c.ValidityTerms,
			FreeShipping: c.FreeShipping,
			Source:       string(c.Source),
		})
	}
	return map[string]AccountView{r.Account: v}
}

// WriteJSON writes the indented JSON view of r.
func WriteJSON(w io.Writer, r *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(BuildView(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

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
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bcem/mailsift/internal/models"
)

var csvHeader = []string{"category", "date", "sender", "subject", "name", "details"}

// WriteCSV writes one row per email, bucket by bucket.
func WriteCSV(w io.Writer, r *models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range r.All() {
		name, details := Describe(a)
		row := []string{string(a.Category()), a.Email.Date, a.Email.Sender, a.Email.Subject, name, details}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", a.Email.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Describe returns the display name of an email's record (program, card,
// store) and a one-line summary of its details.
func Describe(a models.AnalyzedEmail) (name, details string) {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}

	switch {
	case a.Membership != nil:
		name = a.Membership.Name
		add("start", a.Membership.StartDate)
		add("expires", a.Membership.ExpiryDate)
	case a.Card != nil:
		name = a.Card.Name
	case a.GiftCard != nil:
		g := a.GiftCard
		name = g.StoreName
		add("card", g.CardNumber)
		add("pin", g.PIN)
		add("value", g.Value)
		add("redeem", g.RedemptionURL)
	case a.Coupon != nil:
		c := a.Coupon
		name = c.StoreName
		add("offer", strings.Join(c.DiscountDetails, ", "))
		add("codes", strings.Join(c.CouponCodes, ", "))
		add("expires", c.ExpiryDate)
		if c.FreeShipping {
			parts = append(parts, "free shipping")
		}
	}
	return name, strings.Join(parts, "; ")
}

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

// Package models defines the data structures shared across mailsift.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Email is a fetched message as handed to the analysis pipeline.
//
// Body is plain text with HTML already stripped. HTML keeps the raw HTML
// part, if any, and is only consumed by the image scanner. Neither is
// serialised: persisted and published records carry headers only.
type Email struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id,omitempty"`
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Date     string `json:"date,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Body     string `json:"-"`
	HTML     string `json:"-"`
}

// Category is the single label assigned to every analyzed email.
type Category string

const (
	CategoryMembership Category = "Membership"
	CategoryOffer      Category = "Offer"
	CategoryGiftCard   Category = "GiftCard"
	CategoryCoupon     Category = "Coupon"
	CategoryExcluded   Category = "Excluded"
	CategoryNormal     Category = "Normal"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMembership,
	CategoryOffer,
	CategoryGiftCard,
	CategoryCoupon,
	CategoryExcluded,
	CategoryNormal,
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively. "gift_card"
// and "giftcard" are both accepted for GiftCard.
func ParseCategory(s string) (Category, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "")
	for _, c := range Categories {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// UnmarshalJSON rejects labels outside the known set.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

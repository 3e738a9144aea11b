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

package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContainsToken verifies the boundary rules used by every lookup.
func TestContainsToken(t *testing.T) {
	tests := []struct {
		text string
		key  string
		want bool
	}{
		{"hbo max is here", "max", true},
		{"up to the maximum", "max", false},
		{"clearance event", "clear", false},
		{"deals@amazon.com", "amazon", true},
		{"singapore deals", "gap", false},
		{"welcome to walmart+ today", "walmart+", true},
		{"walmart+member", "walmart+", true},
		{"max max", "max", true},
		{"maxmax max", "max", true},
		{"", "max", false},
		{"max", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsToken(tt.text, tt.key))
		})
	}
}

// TestTableLongestFirst verifies that longer keys win over shorter keys
// that also occur in the text.
func TestTableLongestFirst(t *testing.T) {
	table := NewTable([]Entry{
		{"sam's club", "Sam's Club Membership"},
		{"sam's club plus", "Sam's Club Plus"},
	})

	got, ok := table.Lookup("Your Sam's Club Plus renewal")
	assert.True(t, ok)
	assert.Equal(t, "Sam's Club Plus", got)

	got, ok = table.Lookup("Your Sam's Club renewal")
	assert.True(t, ok)
	assert.Equal(t, "Sam's Club Membership", got)

	_, ok = table.Lookup("nothing to see")
	assert.False(t, ok)
}

// TestTableDeterministicTies verifies equal-length keys keep declaration order.
func TestTableDeterministicTies(t *testing.T) {
	table := NewTable([]Entry{{"abc", "first"}, {"xyz", "second"}})
	for i := 0; i < 10; i++ {
		got, _ := table.Lookup("xyz abc")
		assert.Equal(t, "first", got)
	}
}

// TestNewTableDropsDuplicates verifies repeated keys keep the first value.
func TestNewTableDropsDuplicates(t *testing.T) {
	table := NewOrderedTable([]Entry{{"Key", "a"}, {"key", "b"}, {" ", "c"}})
	assert.Equal(t, 1, table.Len())
	got, ok := table.Exact("KEY")
	assert.True(t, ok)
	assert.Equal(t, "a", got)
}

// TestMembershipLexicon verifies canonical names for overlapping programs.
func TestMembershipLexicon(t *testing.T) {
	tests := map[string]string{
		"welcome to sephora beauty insider!":      "Sephora Beauty Insider",
		"your beauty insider points":              "Sephora Beauty Insider",
		"ultamate rewards update":                 "Ulta Beauty Ultamate Rewards",
		"kroger boost+ members save":              "Kroger Boost+",
		"your hbo max plan":                       "HBO Max",
		"bank of america preferred rewards gold":  "Bank of America Preferred Rewards Gold",
		"renew your aaa membership":               "AAA Membership",
	}
	for text, want := range tests {
		got, ok := Memberships.Lookup(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}

	_, ok := Memberships.Lookup("maximum savings at the clearance event")
	assert.False(t, ok)
}

// TestCardIssuers verifies the most specific issuer phrase wins.
func TestCardIssuers(t *testing.T) {
	got, ok := CardIssuers.Lookup("your chase sapphire reserve statement")
	assert.True(t, ok)
	assert.Equal(t, "Chase Sapphire Reserve", got)

	got, ok = CardIssuers.Lookup("capital one venture x perks")
	assert.True(t, ok)
	assert.Equal(t, "Capital One Venture X", got)
}

// TestDomainList verifies exact and subdomain matching.
func TestDomainList(t *testing.T) {
	assert.True(t, ShoppingDomains.Contains("amazon.com"))
	assert.True(t, ShoppingDomains.Contains("marketing.amazon.com"))
	assert.False(t, ShoppingDomains.Contains("notamazon.com"))
	assert.True(t, ExcludedPlatforms.Contains("em.reddit.com"))
	assert.False(t, ExcludedPlatforms.Contains("fedex.com"))
	assert.True(t, GiftCardProviders.Contains("mail.swagbucks.com"))
}

// TestLabelIndicators verifies indicator fragments are found inside labels.
func TestLabelIndicators(t *testing.T) {
	ind, ok := NewsletterIndicators.Match("noreply.github.com")
	assert.True(t, ok)
	assert.Equal(t, "noreply", ind)

	_, ok = NewsletterIndicators.Match("amazon.com")
	assert.False(t, ok)

	_, ok = ShoppingIndicators.Match("bestdeals.biz")
	assert.True(t, ok)
}

// TestDomainHelpers verifies base domain and brand label extraction.
func TestDomainHelpers(t *testing.T) {
	assert.Equal(t, "nordstrom.com", BaseDomain("eml.nordstrom.com"))
	assert.Equal(t, "gmail.com", BaseDomain("gmail.com"))
	assert.Equal(t, "nordstrom", BrandLabel("eml.nordstrom.com"))
	assert.Equal(t, "example", BrandLabel("example.com"))
	assert.Equal(t, "localhost", BrandLabel("localhost"))
	assert.True(t, HasSuffix("shoes.store", StoreTLDs))
}

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

package footer

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/lexicon"
	"github.com/bcem/mailsift/internal/textnorm"
)

// Offers is everything promotional found in a piece of text.
type Offers struct {
	// Discounts are bare amounts such as "25%" or "$15".
	Discounts []string
	// DiscountDetails qualify an amount with what it applies to, such as
	// "$15 OFF Nike" or "25% OFF orders over $100".
	DiscountDetails []string
	PromoCodes      []string
	FreeShipping    bool
	// ExpiryDate is the first date found by the expiry patterns. For a
	// range it is the end of the range.
	ExpiryDate    string
	ValidityTerms []string
	PointsRewards []string
}

// discountRe is an amount pattern. Patterns with item set capture a
// product or brand in group 2, the rest capture a minimum spend.
type discountRe struct {
	re   *regexp.Regexp
	item bool
}

const itemSuffix = `(?:\s+(?:items?|products?|gear|shoes|apparel|clothing|collection))?`

var dollarRes = []discountRe{
	{re: regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s+off\s+([a-z][a-z/\s&]+?)` + itemSuffix + `\s*(?:\n|$|\.)`), item: true},
	{re: regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s+off\s+(?:your\s+)?(?:order|purchase)s?\s+(?:of|over|when you spend)\s+\$(\d+)`)},
	{re: regexp.MustCompile(`(?i)(?:save|get|enjoy|take)\s+\$(\d+(?:\.\d{2})?)\s+off\s+(?:orders?|purchases?)\s+(?:of|over)\s+\$(\d+)`)},
	{re: regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s+off\s+\$(\d+)\+`)},
	{re: regexp.MustCompile(`(?i)(?:save|get)\s+\$(\d+)\s+(?:with|on)\s+\$(\d+)`)},
}

var percentRes = []discountRe{
	{re: regexp.MustCompile(`(?i)(\d{1,2})%\s+off\s+(?:select\s+)?([a-z][a-z/\s&,]{2,30}?)(?:\s+(?:items?|products?|gear|shoes|apparel|clothing|collection|styles?))?\s*(?:\n|$|\.|\||—)`), item: true},
	{re: regexp.MustCompile(`(?i)(\d{1,2})%\s+off\s+(?:orders?|purchases?)\s+(?:of|over)\s+\$(\d+)`)},
	{re: regexp.MustCompile(`(?i)(?:save|get|take|enjoy|receive)\s+(\d{1,2})%\s+off\s+(?:when you spend|on orders over|orders over|purchases over)\s+\$(\d+)`)},
	{re: regexp.MustCompile(`(?i)(\d{1,2})%\s+off.{0,50}orders?\s+\$(\d+)\+`)},
	{re: regexp.MustCompile(`(?i)(?:get|take|enjoy)\s+up\s+to\s+(\d{1,2})%\s+off.{0,50}minimum.{0,30}\$(\d+)`)},
	{re: regexp.MustCompile(`(?i)(?:receive|get|take)\s+(\d{1,2})%\s+off\s+when\s+you\s+purchase.{0,150}(?:with|on)\s+orders?\s+\$(\d+)`)},
}

var (
	trailingJoinerRe = regexp.MustCompile(`(?i)\s+(?:and|or|with|from)\s*$`)
	minSpendRe       = regexp.MustCompile(`(?i)(?:with|on|minimum(?:\s+purchase)?|orders?(?:\s+of)?)\s+\$(\d+)\+`)
	percentOffRe     = regexp.MustCompile(`(?i)(?:up\s+to\s+)?(\d{1,2})%\s+off`)
	percentOffWordRe = regexp.MustCompile(`(?i)\b(\d{1,2})%\s+off`)

	simplePercentRes = compileAll(
		`(?i)(?:up\s+to\s+)?(\d{1,2})%\s*(?:off|discount|savings)`,
		`(?i)(?:save|get|enjoy|take)\s+(?:up\s+to\s+)?(\d{1,2})%`,
	)
	simpleDollarRes = compileAll(
		`(?i)\$(\d+)\s*(?:off|discount)`,
		`(?i)(?:save|get|enjoy|take)\s+\$(\d+)`,
	)

	shoeBrandRe = regexp.MustCompile(`(?i)(\b(?:` + shoeBrands + `)[/\s&,]+(?:` + shoeBrands + `)?)`)
	categoryRe  = regexp.MustCompile(`(?i)\b(shoes|sneakers|footwear|apparel|clothing|gear|sportswear|activewear)\b`)

	freeShippingRe = regexp.MustCompile(`(?i)\bfree\s+shipping\b`)
)

const shoeBrands = `nike|puma|adidas|reebok|under armour|new balance|converse|vans|jordan|skechers`

// itemGenericWords make an item capture too vague to report.
var itemGenericWords = []string{"any", "all", "our", "the", "your", "when", "you", "purchase"}

const month = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

// expiryRes are tried in order. The first carries a date range and
// reports its second date.
var expiryRes = compileAll(
	`(?i)(?:valid|expires?)\s+(?:online\s+only\s+)?(?:in-store\s+(?:and|&)\s+online\s+)?(?:from\s+)?(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s*[-–—]\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
	`(?i)(?:offer|sale|deal|promotion|discount)\s+(?:ends?|expires?|valid)\s+(?:at\s+)?(?:[\d:]+\s*[ap]\.?m\.?\s*)?(?:pt|et|ct|mt)?\s*(?:on\s+)?(`+month+`\s+\d{1,2},?\s+\d{4})`,
	`(?i)(?:expires?|valid|ends?|through|thru|until|till)[\s:]+(`+month+`\s+\d{1,2},?\s+\d{4})`,
	`(?i)(?:by|before)[\s:]+(`+month+`\s+\d{1,2},?\s+\d{4})`,
	`(?i)(?:expires?|valid|ends?|through|thru|until|till)[\s:]+(\d{1,2}/\d{1,2}/\d{2,4})`,
	`(?i)through\s+(`+month+`\s+\d{1,2},?\s+\d{4})`,
	`(?i)(?:valid|ends?|expires?)\s+(?:until|on|through)?\s*(`+month+`\s+\d{1,2}(?:,?\s+\d{4})?)`,
	`(?i)(?:offer|promotion|sale|discount).*?(`+month+`\s+\d{1,2},?\s+\d{4})`,
)

// ExtractOffers reads discounts, codes, free shipping, the expiry date and
// the fine print from text. Qualified discounts ("$15 OFF Nike") are
// preferred; bare amounts are only collected when none were found.
func ExtractOffers(text string) Offers {
	var o Offers
	if text == "" {
		return o
	}

	for _, d := range dollarRes {
		for _, m := range d.re.FindAllStringSubmatch(text, -1) {
			amount := "$" + m[1]
			detail := amount + " OFF YOUR ORDER OVER $" + m[2]
			if d.item {
				detail = amount + " OFF " + textnorm.Squash(m[2])
			}
			o.addDetail(detail, amount)
		}
	}

	for _, d := range percentRes {
		for _, m := range d.re.FindAllStringSubmatch(text, -1) {
			percent := m[1] + "%"
			if !d.item {
				o.addDetail(percent+" OFF orders over $"+m[2], percent)
				continue
			}
			item := trailingJoinerRe.ReplaceAllString(textnorm.Squash(m[2]), "")
			if width(item) > 30 || containsAnyToken(item, itemGenericWords) {
				continue
			}
			o.addDetail(percent+" OFF "+item, percent)
		}
	}

	if len(o.DiscountDetails) == 0 {
		if loc := minSpendRe.FindStringSubmatchIndex(text); loc != nil {
			minimum := text[loc[2]:loc[3]]
			if m := percentOffRe.FindStringSubmatch(Tail(text[:loc[0]], 300)); m != nil {
				o.addDetail(m[1]+"% OFF orders $"+minimum+"+", m[1]+"%")
			}
		}
	}

	if len(o.Discounts) == 0 {
		for _, re := range simplePercentRes {
			for _, percent := range submatches(re, text, 1) {
				if detail := percentContext(text, percent); detail != "" && !lo.Contains(o.DiscountDetails, detail) {
					o.DiscountDetails = append(o.DiscountDetails, detail)
				}
				o.Discounts = append(o.Discounts, percent+"%")
			}
		}
	}

	if len(o.Discounts) == 0 {
		for _, re := range simpleDollarRes {
			for _, amount := range submatches(re, text, 1) {
				o.Discounts = append(o.Discounts, "$"+amount)
			}
		}
	}

	o.FreeShipping = freeShippingRe.MatchString(text)
	o.PromoCodes = PromoCodes(text)
	o.ValidityTerms = ValidityTerms(text)
	o.PointsRewards = PointsRewards(text)
	o.ExpiryDate = ExpiryDate(text)
	o.Discounts = lo.Uniq(o.Discounts)
	return o
}

func (o *Offers) addDetail(detail, amount string) {
	if lo.Contains(o.DiscountDetails, detail) {
		return
	}
	o.DiscountDetails = append(o.DiscountDetails, detail)
	o.Discounts = append(o.Discounts, amount)
}

// ExpiryDate returns the first date an expiry pattern finds, or "".
func ExpiryDate(text string) string {
	for _, re := range expiryRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 2 && m[2] != "" {
			return m[2]
		}
		return m[1]
	}
	return ""
}

// percentContext describes a bare percentage from the words on its line:
// a shoe brand, a product category or a label such as "(sitewide)". It
// returns "" when the line says nothing useful.
func percentContext(text, percent string) string {
	var line string
	for _, loc := range percentOffWordRe.FindAllStringSubmatchIndex(text, -1) {
		if text[loc[2]:loc[3]] == percent {
			line = lineAround(text, loc[0], loc[1], 75)
			break
		}
	}
	if line == "" {
		return ""
	}

	head := percent + "% OFF "
	if m := shoeBrandRe.FindStringSubmatch(line); m != nil {
		return head + strings.TrimSpace(m[1])
	}
	if m := categoryRe.FindStringSubmatch(line); m != nil {
		return head + m[1]
	}

	lower := strings.ToLower(line)
	switch {
	case lexicon.ContainsToken(lower, "new") && strings.Contains(lower, "deal"):
		return head + "(on new deals)"
	case lexicon.ContainsToken(lower, "new"):
		return head + "(on new items)"
	case lexicon.ContainsToken(lower, "select") || lexicon.ContainsToken(lower, "selected"):
		return head + "(on select items)"
	case containsAnyToken(lower, []string{"everything", "sitewide", "storewide"}):
		return head + "(sitewide)"
	case lexicon.ContainsToken(lower, "clearance"):
		return head + "(clearance items)"
	}
	return ""
}

// lineAround returns text[start:end] widened by up to n characters on each
// side without crossing a line break.
func lineAround(text string, start, end, n int) string {
	left := text[:start]
	if i := strings.LastIndexByte(left, '\n'); i >= 0 {
		left = left[i+1:]
	}
	right := text[end:]
	if i := strings.IndexByte(right, '\n'); i >= 0 {
		right = right[:i]
	}
	return strings.TrimSpace(Tail(left, n) + text[start:end] + headRunes(right, n))
}

// containsAnyToken reports whether any word appears in s as a whole token.
func containsAnyToken(s string, words []string) bool {
	lower := strings.ToLower(s)
	return lo.SomeBy(words, func(w string) bool { return lexicon.ContainsToken(lower, w) })
}

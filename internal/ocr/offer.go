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

package ocr

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/lexicon"
	"github.com/bcem/mailsift/internal/models"
)

var (
	percentRes = compileAll(
		`(?i)(\d{1,2})%\s*(?:off|discount)`,
		`(?i)save\s+(\d{1,2})%`,
		`(?i)up to\s+(\d{1,2})%`,
	)
	dollarRes = compileAll(
		`(?i)\$(\d+)\s*off`,
		`(?i)save\s+\$(\d+)`,
	)
	// Codes are upper case in images, so these patterns are case-sensitive
	// apart from the lead word.
	codeRes = compileAll(
		`(?:code|CODE|Code)[:\s]+([A-Z0-9]{4,15})\b`,
		`(?:use|USE|Use)[:\s]+([A-Z0-9]{4,15})\b`,
	)
	checkoutCodeRe = regexp.MustCompile(`\b([A-Z]{4,15}\d{0,4})\b\s*(?:at checkout|to save)`)

	expiryRes = compileAll(
		`(?i)(?:expires?|valid|ends?)[:\s]+([a-z]+\s+\d{1,2},?\s+\d{4})`,
		`(?i)(?:through|thru|until|till)[:\s]+([a-z]+\s+\d{1,2},?\s+\d{4})`,
		`(?i)(?:expires?|valid|ends?)[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
	)
)

// PromotionKeywords are the phrases recorded on an ImageOffer.
var PromotionKeywords = []string{
	"free shipping", "bogo", "buy one get one", "clearance", "sale",
	"limited time", "today only", "flash sale", "exclusive", "member",
}

// ParseOffer reads a discount, promo code, expiry date and promotion
// keywords from recognized image text. A dollar discount wins over a
// percentage when both appear.
func ParseOffer(text string) models.ImageOffer {
	o := models.ImageOffer{RawText: text}

	if m, ok := firstMatch(percentRes, text); ok {
		o.Discount = m + "%"
	}
	if m, ok := firstMatch(dollarRes, text); ok {
		o.Discount = "$" + m + " OFF"
	}

	if m, ok := firstMatch(codeRes, text); ok {
		o.PromoCode = m
	} else if m := checkoutCodeRe.FindStringSubmatch(text); m != nil {
		o.PromoCode = m[1]
	}

	if m, ok := firstMatch(expiryRes, text); ok {
		o.ExpiryDate = m
	}

	lower := strings.ToLower(text)
	o.Keywords = lo.Filter(PromotionKeywords, func(k string, _ int) bool {
		return strings.Contains(lower, k)
	})
	return o
}

// useful reports whether ParseOffer found anything promotional.
func useful(o models.ImageOffer) bool {
	return o.ExpiryDate != "" || len(o.Keywords) > 0 || o.HasPromotion()
}

// StoreFromText names the store in recognized image text.
func StoreFromText(text string) (string, bool) {
	if len(text) <= 5 {
		return "", false
	}
	return lexicon.ImageBrands.Lookup(text)
}

// StoreFromAlt treats alt text as the store's name when it mentions a
// known brand.
func StoreFromAlt(alt string) (string, bool) {
	if len(alt) <= 3 {
		return "", false
	}
	lower := strings.ToLower(alt)
	if lo.SomeBy(lexicon.AltTextBrands, func(b string) bool { return strings.Contains(lower, b) }) {
		return alt, true
	}
	return "", false
}

func firstMatch(res []*regexp.Regexp, text string) (string, bool) {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

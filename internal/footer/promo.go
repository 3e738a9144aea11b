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
	"unicode"

	"github.com/samber/lo"
)

// mixedCode is a token with at least one letter and one digit.
const mixedCode = `([a-z]+\d+[a-z0-9]*|[0-9]+[a-z]+[a-z0-9]*)\b`

var footerPromoRes = compileAll(
	`(?i)(?:use|enter|apply|with)\s+(?:code|promo)[\s:]+`+mixedCode,
	`(?i)(?:discount|promo|coupon)\s+code[\s:]+`+mixedCode,
	`(?i)\b(?:code|promo)[\s:]+([a-z]+\d+[a-z0-9]{2,}|[0-9]+[a-z]+[a-z0-9]{2,})\b`,
)

var bodyPromoRes = append(append([]*regexp.Regexp{}, footerPromoRes...),
	regexp.MustCompile(`(?i)(?:save|get)\s+(?:\d+%?\s+)?(?:with|using)\s+code\s+`+mixedCode),
)

// promoFalsePositives are words that follow "code" in copy but are not
// codes.
var promoFalsePositives = []string{
	"CODE", "PROMO", "THIS", "THAT", "YOUR", "HERE", "ONLY", "SAVE", "CODES",
	"BELOW", "FIELD", "TEXT", "SHOP", "LINK", "EMAIL", "MAIL", "FROM", "NAME",
	"CHECKOUT", "ONLINE", "OFFER", "GIFT", "FREE", "NOW", "TODAY", "WHEN",
	"PHONE", "NUMBER", "SCAN", "ENTER", "WITH", "HAVE", "APPLY",
}

// PromoCodes returns the distinct upper-cased promo codes introduced
// anywhere in body. A code must be at least four characters and mix
// letters with digits, so "SAVE" or "HERE" never qualify.
func PromoCodes(body string) []string {
	return promoCodes(body, bodyPromoRes)
}

func promoCodes(text string, res []*regexp.Regexp) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, re := range res {
		for _, code := range submatches(re, text, 1) {
			code = strings.ToUpper(code)
			if len(code) < 4 || lo.Contains(promoFalsePositives, code) {
				continue
			}
			if strings.ContainsFunc(code, unicode.IsLetter) && strings.ContainsFunc(code, unicode.IsDigit) {
				out = append(out, code)
			}
		}
	}
	return lo.Uniq(out)
}

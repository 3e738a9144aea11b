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

package extract

import (
	"regexp"

	"github.com/bcem/mailsift/internal/models"
)

const amount = `([0-9][0-9,]*(?:\.[0-9]{2})?)`

var (
	giftCardNumberRes = compileAll(
		`(?i)(?:card|gift\s*card)\s*(?:number|#|no\.?)?\s*:?\s*([0-9]{4}[\s-]?[0-9]{4}[\s-]?[0-9]{4}[\s-]?[0-9]{4})`,
		`(?i)(?:card|gift\s*card)\s*(?:number|#|no\.?)?\s*:?\s*([0-9]{10,19})`,
		`(?i)card\s*code\s*:?\s*([a-z0-9]{10,20})`,
	)
	giftCardPINRes = compileAll(
		`(?i)\bpin\s*:?\s*(\d{4,8})`,
		`(?i)\bsecurity\s*code\s*:?\s*(\d{3,4})`,
		`(?i)\baccess\s*code\s*:?\s*(\d{4,8})`,
	)
	giftCardValueRes = compileAll(
		`(?i)(?:card\s*)?(?:value|amount|balance)\s*:?\s*\$?`+amount,
		`(?i)\$`+amount+`\s*(?:gift\s*card|card)`,
		`(?i)(?:worth|valued\s*at)\s*\$?`+amount,
	)
	giftCardURLRe = regexp.MustCompile(`(?i)(?:redeem\s*(?:at|here)|visit)\s*:?\s*(https?://[^\s<>"]+)`)
)

// GiftCardDetails extracts the card number, PIN, value and redemption URL
// from a gift card email. Each field is searched independently and left
// empty when absent. Values are reported with a leading "$". The store name
// is not set here.
func GiftCardDetails(subject, body string) models.GiftCardRecord {
	text := subject + " " + body
	var rec models.GiftCardRecord
	rec.CardNumber, _ = firstCapture(giftCardNumberRes, text)
	rec.PIN, _ = firstCapture(giftCardPINRes, text)
	if v, ok := firstCapture(giftCardValueRes, text); ok {
		rec.Value = "$" + v
	}
	if m := giftCardURLRe.FindStringSubmatch(text); m != nil {
		rec.RedemptionURL = m[1]
	}
	return rec
}

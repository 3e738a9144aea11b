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
	"strings"

	"github.com/bcem/mailsift/internal/textnorm"
)

// offerEnd stops an offer phrase at a dash separator or the end of the
// subject.
const offerEnd = `(?:\s*[—–-]\s*|$)`

var offerPhraseRes = compileAll(
	`(?i)(save \$?\d+%?.*?)`+offerEnd,
	`(?i)(up to \d+%\s*off.*?)`+offerEnd,
	`(?i)((?:\d+%|₹\d+|\$\d+)\s*(?:off|discount|cashback).*?)`+offerEnd,
	`(?i)(enjoy \d+%.*?)`+offerEnd,
	`(?i)(get \d+%.*?)`+offerEnd,
	`(?i)(free shipping.*?)`+offerEnd,
	`(?i)(buy \d+ get \d+.*?)`+offerEnd,
	`(?i)(bogo.*?)`+offerEnd,
	`(?i)(flat \d+%.*?)`+offerEnd,
)

var greetingRe = regexp.MustCompile(`(?i)^(?:welcome|hey|hi)\b[!,]?\s*`)

// CouponDescription summarises a coupon email from its subject: the offer
// phrase when one is present ("25% Off Sitewide"), otherwise the subject
// without emoji or a leading greeting.
func CouponDescription(subject string) string {
	subject = strings.TrimSpace(textnorm.StripEmoji(subject))
	if d, ok := firstCapture(offerPhraseRes, subject); ok && d != "" {
		return d
	}
	return strings.TrimSpace(greetingRe.ReplaceAllString(subject, ""))
}

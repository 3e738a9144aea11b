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

// membershipDate matches "January 20, 2026", "Jan 20 2026", "01/20/2026"
// and "2026-01-20".
const membershipDate = `((?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2},?\s+\d{4}` +
	`|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}` +
	`|\d{4}[/-]\d{1,2}[/-]\d{1,2})`

var (
	membershipStartRes = compileAll(
		`(?i)(?:start\s*date|membership\s*start|valid\s*from|starts?\s*on|effective\s*date|effective|begin(?:s|ning)?\s*date|member\s*since|joined\s*on)\s*[:\s]+`+membershipDate,
		`(?i)(?:started|activated)\s*(?:on)?\s*[:\s]+`+membershipDate,
	)
	membershipExpiryRes = compileAll(
		`(?i)(?:expiry\s*date|expiration\s*date|expires?\s*on|valid\s*(?:until|through|till)|end\s*date|ends\s*on|renewal\s*date|next\s*renewal|renews\s*on)\s*[:\s]+`+membershipDate,
		`(?i)(?:expires?|renews?)\s*[:\s]+`+membershipDate,
	)
)

// MembershipDates returns the start and expiry dates stated in a
// membership email body, exactly as written. Either may be empty; callers
// fall back to the email date for a missing start.
func MembershipDates(body string) (start, expiry string) {
	start, _ = firstCapture(membershipStartRes, body)
	expiry, _ = firstCapture(membershipExpiryRes, body)
	return start, expiry
}

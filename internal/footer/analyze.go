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

// Data is the combined result of reading one email's body and subject.
type Data struct {
	Footer             Content
	Offers             Offers
	StoreName          string
	MembershipBenefits []string
}

// Analyze reads the footer window, the offers in the whole body and the
// membership benefits. Subject offers fill in discounts only when the
// body has none, since the subject often carries the headline offer.
func Analyze(body, subject string, window int) Data {
	d := Data{
		Footer: ExtractContent(body, window),
		Offers: ExtractOffers(body),
	}
	if subject != "" {
		s := ExtractOffers(subject)
		if len(d.Offers.DiscountDetails) == 0 && len(s.DiscountDetails) > 0 {
			d.Offers.DiscountDetails = s.DiscountDetails
		}
		if len(d.Offers.Discounts) == 0 && len(s.Discounts) > 0 {
			d.Offers.Discounts = s.Discounts
		}
	}
	d.StoreName = storeName(body, d.Footer)
	d.MembershipBenefits = MembershipBenefits(body)
	return d
}

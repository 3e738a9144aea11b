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


package analyzer

import (
	"strings"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/models"
	"github.com/bcem/mailsift/internal/textnorm"
)

// SubscriptionStats counts the distinct senders behind subscription mail.
type SubscriptionStats struct {
	MembershipSenders []string `json:"membership_senders"`
	OfferSenders      []string `json:"offer_senders"`
	UniqueMembership  int      `json:"unique_membership_senders"`
	UniqueOffer       int      `json:"unique_offer_senders"`
	UniqueTotal       int      `json:"unique_subscription_senders"`
}

// Subscriptions counts unique sender addresses among a report's
// Membership and Offer emails. Addresses are compared case-insensitively.
func Subscriptions(r *models.Report) SubscriptionStats {
	membership := senderAddresses(r.Membership)
	offer := senderAddresses(r.Offer)
	return SubscriptionStats{
		MembershipSenders: membership,
		OfferSenders:      offer,
		UniqueMembership:  len(membership),
		UniqueOffer:       len(offer),
		UniqueTotal:       len(lo.Union(membership, offer)),
	}
}

func senderAddresses(emails []models.AnalyzedEmail) []string {
	return lo.Uniq(lo.Map(emails, func(a models.AnalyzedEmail, _ int) string {
		return strings.ToLower(textnorm.ParseSender(a.Email.Sender).Address)
	}))
}

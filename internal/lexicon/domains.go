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

import "strings"

// DomainList matches a sender domain against registrable domains. An entry
// matches itself and any of its subdomains: "amazon.com" matches
// "marketing.amazon.com" but not "notamazon.com".
type DomainList struct {
	domains []string
}

// NewDomainList builds a list from lower-cased domains.
func NewDomainList(domains ...string) DomainList {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		out = append(out, strings.ToLower(strings.TrimSpace(d)))
	}
	return DomainList{domains: out}
}

// Match returns the first entry that domain equals or is a subdomain of.
func (l DomainList) Match(domain string) (string, bool) {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	if domain == "" {
		return "", false
	}
	for _, d := range l.domains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return d, true
		}
	}
	return "", false
}

// Contains reports whether Match succeeds.
func (l DomainList) Contains(domain string) bool {
	_, ok := l.Match(domain)
	return ok
}

// LabelIndicators matches fragments that may appear anywhere inside a
// domain label, such as "newsletter" in "newsletter.shop.com" or
// "noreply" in "noreply-mail.example.org".
type LabelIndicators []string

// Match returns the first indicator found inside any label of domain.
func (li LabelIndicators) Match(domain string) (string, bool) {
	labels := strings.Split(strings.ToLower(domain), ".")
	for _, ind := range li {
		for _, label := range labels {
			if strings.Contains(label, ind) {
				return ind, true
			}
		}
	}
	return "", false
}

// BaseDomain returns the last two labels of domain.
func BaseDomain(domain string) string {
	labels := strings.Split(strings.Trim(strings.ToLower(domain), "."), ".")
	if len(labels) <= 2 {
		return strings.Join(labels, ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// BrandLabel returns the label left of the top-level domain, e.g.
// "nordstrom" for "eml.nordstrom.com".
func BrandLabel(domain string) string {
	labels := strings.Split(strings.Trim(strings.ToLower(domain), "."), ".")
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	return labels[len(labels)-2]
}

// PersonalDomains are free webmail providers, compared by base domain.
var PersonalDomains = NewDomainList(
	"gmail.com", "googlemail.com", "yahoo.com", "hotmail.com", "outlook.com",
	"aol.com", "icloud.com", "me.com", "mail.com", "protonmail.com", "proton.me",
	"live.com", "msn.com", "yandex.com", "zoho.com", "inbox.com", "gmx.com",
	"fastmail.com",
)

// WebmailLabels are brand labels never reported as a company name.
var WebmailLabels = []string{"gmail", "googlemail", "yahoo", "hotmail", "outlook", "mail", "email", "icloud", "aol"}

// ForwardingDomain relays shopping mail for testing; its sender carries no
// brand information.
const ForwardingDomain = "innovinlabs.com"

// ExcludedPlatforms are social, forum, developer-tool and learning
// platforms whose mail is never commercial.
var ExcludedPlatforms = NewDomainList(
	"reddit.com", "redditmail.com", "twitter.com", "x.com", "facebook.com",
	"facebookmail.com", "instagram.com", "linkedin.com", "quora.com", "medium.com",
	"substack.com", "mailchimp.com", "hubspot.com", "github.com", "gitlab.com",
	"bitbucket.org", "stackoverflow.com", "slack.com", "discord.com", "telegram.org",
	"whatsapp.com", "replit.com", "codepen.io", "jsfiddle.net", "codesandbox.io",
	"coursera.org", "udemy.com", "edx.org", "skillshare.com", "meetup.com",
	"eventbrite.com", "vercel.com", "netlify.com", "heroku.com", "digitalocean.com",
	"aws.amazon.com", "cloud.google.com", "azure.microsoft.com", "notion.so",
	"figma.com", "canva.com", "airtable.com", "trello.com", "asana.com",
	"monday.com", "atlassian.com", "jira.com", "confluence.com",
)

// NewsletterIndicators mark bulk or no-reply sending domains.
var NewsletterIndicators = LabelIndicators{
	"noreply", "no-reply", "donotreply", "do-not-reply", "newsletter", "digest",
}

// ShoppingDomains is the curated allowlist of retail and payment senders.
var ShoppingDomains = NewDomainList(
	"amazon.com", "ebay.com", "walmart.com", "target.com", "bestbuy.com",
	"costco.com", "macys.com", "nordstrom.com", "nordstromrack.com", "kohls.com",
	"jcpenney.com", "homedepot.com", "lowes.com", "wayfair.com", "overstock.com",
	"etsy.com", "zappos.com", "sephora.com", "ulta.com", "nike.com", "adidas.com",
	"gap.com", "oldnavy.com", "bananarepublic.com", "athleta.com",
	"victoriassecret.com", "bathandbodyworks.com", "bedbathandbeyond.com",
	"crateandbarrel.com", "potterybarn.com", "westelm.com", "ikea.com",
	"staples.com", "officedepot.com", "petco.com", "petsmart.com", "chewy.com",
	"wholefoodsmarket.com", "kroger.com", "safeway.com", "albertsons.com",
	"ralphs.com", "instacart.com", "shipt.com", "shopify.com", "square.com",
	"stripe.com", "paypal.com", "rei.com", "dickssportinggoods.com",
	"samsclub.com", "bjs.com", "traderjoes.com", "aldi.us", "lidl.com",
	"tjmaxx.com", "marshalls.com", "homegoods.com", "ross.com", "burlington.com",
	"dsw.com", "footlocker.com", "fanatics.com", "nfl.com", "nba.com", "mlb.com",
	"underarmour.com", "lululemon.com", "patagonia.com", "northface.com",
	"columbia.com", "anthropologie.com", "urbanoutfitters.com", "freepeople.com",
	"forever21.com", "hm.com", "zara.com", "uniqlo.com", "guess.com",
	"ralphlauren.com", "calvinklein.com", "tommy.com", "express.com", "ae.com",
	"abercrombie.com", "hollisterco.com", "aeropostale.com", "williams-sonoma.com",
	"surlatable.com", "chefswarehouse.com", "autozone.com", "advanceautoparts.com",
	"oreilly.com", "pepboys.com", "gamestop.com", "barnesandnoble.com",
	"michaels.com", "joann.com", "hobbylobby.com", "acmoore.com", "partycity.com",
	"spirithalloween.com", "build.com", "houzz.com", "roomstogo.com",
	"ashleyfurniture.com", "bobs.com", "valuecityfurniture.com",
	"americansignaturefurniture.com", "pier1.com", "kirklands.com",
	"worldmarket.com", "atgstores.com", "jcrew.com", "ultabeauty.com",
)

// ShoppingIndicators are retail fragments that mark a long-tail store
// domain when paired with a CommerceTLD.
var ShoppingIndicators = LabelIndicators{
	"shop", "store", "retail", "market", "mall", "outlet", "ecom", "commerce",
	"cart", "deals", "sale",
}

// CommerceTLDs are top-level domains plausible for a store.
var CommerceTLDs = []string{".com", ".shop", ".store", ".biz"}

// StoreTLDs are top-level domains that are commercial on their own.
var StoreTLDs = []string{".shop", ".store"}

// GiftCardProviders send gift cards, survey rewards and cash-back payouts.
// Mail from them is GiftCard regardless of content.
var GiftCardProviders = NewDomainList(
	"freecash.com", "yougov.com", "surveyjunkie.com", "swagbucks.com",
	"inboxdollars.com", "prolific.com", "pineconeresearch.com", "surveynetwork.com",
	"mypoints.com", "usertesting.com", "fetch.com", "ibotta.com", "receipthog.com",
	"receiptpal.com", "coinout.com", "getmiles.com", "upside.com", "aarp.org",
	"aaa.com", "raise.com", "cardcash.com", "prizerebel.com", "grabpoints.com",
	"giftcardgranny.com", "cardpool.com", "giftcards.com", "egifter.com", "gyft.com",
)

// HasSuffix reports whether domain ends with any of suffixes.
func HasSuffix(domain string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(domain, s) {
			return true
		}
	}
	return false
}

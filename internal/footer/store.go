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

// headWindow is how much of the body's opening is searched for a brand.
const headWindow = 800

var (
	storeVariantRe = regexp.MustCompile(`\b([A-Z]\.?\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(Factory|Outlet|Plus|Express|Direct)\b`)
	initialDotRe   = regexp.MustCompile(`([A-Z])\.\s+`)

	storeGreetingRes = compileAll(
		`Hi[,!]\s+[A-Z]+[!,]\s+You're\s+(?:at\s+)?([A-Z][a-z]+(?:'\s*[A-Za-z]+)?)`,
		`Hi\s+from\s+([A-Z][a-z]+(?:'\s*[A-Za-z]+)?)`,
		`Welcome\s+(?:to\s+)?([A-Z][a-z]+(?:'\s*[A-Za-z]+)?)`,
	)

	storeMentionRes = compileAll(
		`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:Rewards?|Prime|Plus\+?|Club\+?|Passport)\s+(?:members?|customers?)`,
		`\b([A-Z][a-z]+\+?)\s+(?:members?|customers?)\b`,
		`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:Insider|Perks|Benefits)\b`,
		`\b([A-Z][a-z]+\+?)\s+(?:Customer|Support|Service)\b`,
	)

	bodyMailboxRe = regexp.MustCompile(`\b([a-zA-Z0-9._-]+)@(?:mail|email|news|promo)\.([a-zA-Z0-9.-]+)\b`)
	bodyURLRe     = regexp.MustCompile(`https?://(?:www\.)?([a-zA-Z0-9-]+)\.com`)
)

var (
	greetingSkipWords = []string{"you", "your", "tim", "john", "jane", "welcome", "hello", "hi"}
	mentionSkipWords  = []string{
		"the", "your", "our", "welcome", "thank", "hello", "rewards", "reward", "buy",
		"prime", "plus", "club", "customer", "xtra", "gear", "order", "shop", "store", "offer",
	}
	mailboxSkipPrefixes = []string{
		"noreply", "no-reply", "info", "support", "hello", "contact", "newsletter",
		"eteam", "team", "emarketing", "marketing",
	}
	mailboxGenericNames = []string{"team", "email", "mail", "news", "shop"}
	urlSkipLabels       = []string{
		"google", "facebook", "twitter", "instagram", "youtube", "unsubscribe",
		"privacy", "terms", "cdn", "images",
	}
	marketingSubdomains = []string{"eml", "mail", "email", "mkt", "marketing", "e", "em", "news", "promo"}
	contactSkipLabels   = []string{"mail", "email", "noreply", "info", "newsletter"}
)

// StoreFromBody looks for the store in the body itself: a "Factory" or
// "Outlet" variant in the opening, a greeting such as "Hi from Acme", a
// mention such as "Acme members", a brand mailbox address, and finally a
// linked .com domain. It returns "" when nothing qualifies.
func StoreFromBody(body string) string {
	head := headRunes(body, headWindow)

	if m := storeVariantRe.FindString(head); m != "" {
		return initialDotRe.ReplaceAllString(strings.TrimSpace(m), "$1.")
	}

	for _, re := range storeGreetingRes {
		m := re.FindStringSubmatch(head)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if !lo.Contains(greetingSkipWords, strings.ToLower(name)) && width(name) >= 3 {
			return name
		}
	}

	for _, re := range storeMentionRes {
		m := re.FindStringSubmatch(head)
		if m == nil {
			continue
		}
		name := initialDotRe.ReplaceAllString(strings.TrimSpace(m[1]), "$1.")
		if validMention(name) {
			return name
		}
	}

	for _, m := range bodyMailboxRe.FindAllStringSubmatch(body, -1) {
		prefix := m[1]
		if prefix == "" || lo.Contains(mailboxSkipPrefixes, strings.ToLower(prefix)) {
			continue
		}
		name := brandFromLabel(prefix)
		if !strings.Contains(name, " ") && lo.Contains(mailboxGenericNames, strings.ToLower(name)) {
			continue
		}
		if width(name) >= 3 {
			return name
		}
	}

	for _, label := range submatches(bodyURLRe, body, 1) {
		if lo.Contains(urlSkipLabels, strings.ToLower(label)) {
			continue
		}
		if name := brandFromLabel(label); width(name) >= 3 {
			return name
		}
	}
	return ""
}

// validMention accepts one to four words of 3..40 characters whose last
// word is not a generic retail term.
func validMention(name string) bool {
	words := strings.Fields(name)
	if len(words) < 1 || len(words) > 4 {
		return false
	}
	if n := width(name); n < 3 || n > 40 {
		return false
	}
	last := strings.ToLower(words[len(words)-1])
	return !lo.Contains(mentionSkipWords, strings.ToLower(name)) && !lo.Contains(mentionSkipWords, last)
}

// StoreName resolves the store from the body alone: StoreFromBody, then
// the footer boilerplate, then the footer contact address, then the
// footer website. It returns "" when every stage fails.
func StoreName(body string, window int) string {
	return storeName(body, ExtractContent(body, window))
}

func storeName(body string, c Content) string {
	if name := StoreFromBody(body); name != "" {
		return name
	}
	if c.StoreName != "" {
		return c.StoreName
	}
	if name := storeFromContact(c.ContactEmail); name != "" {
		return name
	}
	if c.Website != "" {
		label := c.Website
		if i := strings.LastIndex(label, "."); i > 0 {
			label = label[:i]
		}
		return brandFromLabel(label)
	}
	return ""
}

// storeFromContact names the store after a contact address domain,
// skipping a leading marketing subdomain such as "eml.".
func storeFromContact(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return ""
	}
	labels := strings.Split(addr[at+1:], ".")
	label := labels[0]
	if len(labels) >= 3 && lo.Contains(marketingSubdomains, strings.ToLower(label)) {
		label = labels[1]
	}
	if label == "" || lo.Contains(contactSkipLabels, strings.ToLower(label)) {
		return ""
	}
	return brandFromLabel(label)
}

// brandFromLabel turns a mailbox or domain label into a display name:
// known compounds through MultiWordBrands ("bestbuy" to "Best Buy"),
// "Factory" and "Outlet" split off, otherwise title case.
func brandFromLabel(label string) string {
	name := strings.NewReplacer("_", " ", "-", " ").Replace(label)
	compact := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if v, ok := lexicon.MultiWordBrands.Exact(compact); ok {
		return v
	}
	lower := strings.ToLower(name)
	for _, suffix := range []string{"factory", "outlet"} {
		if strings.Contains(lower, suffix) {
			rest := strings.TrimSpace(strings.ReplaceAll(lower, suffix, ""))
			if v, ok := lexicon.MultiWordBrands.Exact(strings.ReplaceAll(rest, " ", "")); ok {
				return v + " " + textnorm.Capitalize(suffix)
			}
			return textnorm.Title(rest + " " + suffix)
		}
	}
	return textnorm.Title(name)
}

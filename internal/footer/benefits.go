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
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/textnorm"
)

const (
	// MaxBenefits caps the list returned by MembershipBenefits.
	MaxBenefits = 15

	benefitListWindow = 2500
)

var benefitKeywords = []string{
	"delivery", "pickup", "shipping", "savings", "rewards", "cash back",
	"discount", "access", "free", "member", "exclusive", "gas", "fuel",
	"services", "warranty", "roadside", "travel", "streaming", "unlimited",
	"tire", "optical", "pharmacy", "curbside", "express", "instant",
}

var membershipKeywords = []string{
	"member", "membership", "benefit", "perk", "free", "discount",
	"shipping", "delivery", "access", "exclusive", "save", "reward",
	"points", "cashback", "upgrade", "priority", "complimentary",
	"unlimited", "premium", "plus", "service", "assistance",
}

var (
	benefitColonRe  = regexp.MustCompile(`(?i)\b([a-z][a-z\s]{5,40}):\s+([^.]{20,300}(?:\.[^.]{0,200})?)`)
	benefitBulletRe = regexp.MustCompile(`[•\-]\s*([A-Z][^\n•\-]{15,250})`)
	benefitPipeRe   = regexp.MustCompile(`([A-Z][A-Za-z\s]{5,35})\s*[|•]`)
	sentenceEndRe   = regexp.MustCompile(`^[^.]*\.`)

	benefitContextRes = compileAll(
		`(?i)((?:plus|premium|gold|members?)\s+(?:members?|get)\s+(?:free|exclusive|unlimited)\s+[^.]{20,200})`,
		`(?i)(free\s+[a-z]+(?:\s+[a-z]+){0,3}\s+(?:for\s+)?(?:members?|plus)\s+[^.]{10,150})`,
		`(?i)(members?\s+(?:save|get|receive)\s+\d+%[^.]{10,150})`,
		`(?i)(earn\s+(?:\d+%?|bonus)\s+(?:points|rewards|cash\s+back)[^.]{10,150})`,
	)
)

// benefitMarkers are tried longest first. An empty prefix drops the
// marker from the output.
var benefitMarkers = []struct {
	re     *regexp.Regexp
	prefix string
	single bool
}{
	{re: regexp.MustCompile(`\*{3}\s*([^‡*†§¶]{20,350})`), prefix: "*** "},
	{re: regexp.MustCompile(`\*{2}\s*([^‡*†§¶]{20,350})`), prefix: "** "},
	{re: regexp.MustCompile(`‡{2}\s*([^‡*†§¶]{20,350})`), prefix: "‡‡ "},
	{re: regexp.MustCompile(`†{2}\s*([^‡*†§¶]{20,350})`), prefix: "†† "},
	{re: regexp.MustCompile(`§{2}\s*([^‡*†§¶]{20,350})`), prefix: "§§ "},
	{re: regexp.MustCompile(`\*\s*([^‡*†§¶]{20,350})`), prefix: "* ", single: true},
	{re: regexp.MustCompile(`‡\s*([^‡*†§¶]{20,350})`), prefix: "‡ ", single: true},
	{re: regexp.MustCompile(`†\s*([^‡*†§¶]{20,350})`), prefix: "† ", single: true},
	{re: regexp.MustCompile(`§\s*([^‡*†§¶]{20,350})`), prefix: "§ ", single: true},
	{re: regexp.MustCompile(`¶\s*([^‡*†§¶]{20,350})`), prefix: "¶ ", single: true},
	{re: regexp.MustCompile(`[¹²³⁴⁵⁶⁷⁸⁹]+\s*([^‡*†§¶¹²³⁴⁵⁶⁷⁸⁹]{20,350})`)},
}

// MembershipBenefits returns up to MaxBenefits benefit descriptions with
// their conditions, such as "Delivery from Club: Plus members get free
// delivery on orders of $50 or more." Benefits are gathered from
// "Name: description" lines, bullet lists, pipe-separated footer menus,
// member phrasing and footnotes, in that order.
func MembershipBenefits(body string) []string {
	if body == "" {
		return nil
	}
	b := &benefitList{}

	for _, m := range benefitColonRe.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[1])
		if !hasAnyFold(name, benefitKeywords) {
			continue
		}
		full := name + ": " + firstSentences(textnorm.Squash(m[2]), 3)
		if width(full) <= 400 {
			b.addUnique(full)
		}
	}

	for _, m := range benefitBulletRe.FindAllStringSubmatch(body, -1) {
		item := strings.TrimRight(textnorm.Squash(m[1]), ".,;:")
		if width(item) >= 15 && hasAnyFold(item, benefitKeywords) && !b.covers(item) {
			b.addUnique(item)
		}
	}

	b.fromMenu(body)

	for _, re := range benefitContextRes {
		for _, loc := range re.FindAllStringSubmatchIndex(body, -1) {
			text := textnorm.Squash(body[loc[2]:loc[3]])
			if !strings.HasSuffix(text, ".") {
				if end := sentenceEndRe.FindString(headRunes(body[loc[3]:], 150)); end != "" {
					text = textnorm.Squash(text + end)
				} else {
					text += "."
				}
			}
			if n := width(text); n >= 20 && n <= 400 && !b.overlaps(text) {
				b.items = append(b.items, text)
			}
		}
	}

	for _, mk := range benefitMarkers {
		for _, loc := range mk.re.FindAllStringSubmatchIndex(body, -1) {
			if mk.single {
				if r, _ := utf8.DecodeLastRuneInString(body[:loc[0]]); strings.ContainsRune(footnoteGlyphs, r) {
					continue
				}
			}
			text := strings.TrimSpace(body[loc[2]:loc[3]])
			if !hasAnyFold(text, membershipKeywords) {
				continue
			}
			text = footnoteText(textnorm.Squash(text))
			full := mk.prefix + text
			if width(full) >= 25 && !b.overlapsPrefix(text, 30) {
				b.items = append(b.items, full)
			}
		}
	}

	return dedupeByPrefix(b.items, 50, MaxBenefits)
}

// fromMenu reads benefit names from a "A | B | C" menu near the end of the
// body and looks each one up elsewhere for a description.
func (b *benefitList) fromMenu(body string) {
	tail := Tail(body, benefitListWindow)
	for _, name := range submatches(benefitPipeRe, tail, 1) {
		name = strings.TrimSpace(name)
		if !hasAnyFold(name, benefitKeywords) {
			continue
		}
		lowerName := strings.ToLower(name)
		if lo.SomeBy(b.items, func(s string) bool {
			return strings.Contains(s, ":") && strings.Contains(strings.ToLower(s), lowerName)
		}) {
			continue
		}
		if b.covers(name) {
			continue
		}

		detailRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `[:\s]{0,5}([^.\n]{30,300}(?:\.[^.\n]{0,150})?)`)
		if err != nil {
			continue
		}
		if m := detailRe.FindStringSubmatch(body); m != nil {
			full := name + ": " + firstSentences(textnorm.Squash(m[1]), 2)
			if width(full) <= 400 {
				b.items = append(b.items, full)
			}
		} else if width(name) >= 8 {
			b.addUnique(name)
		}
	}
}

type benefitList struct {
	items []string
}

func (b *benefitList) addUnique(s string) {
	b.items = appendUnique(b.items, s)
}

// covers reports whether s already appears inside a collected benefit.
func (b *benefitList) covers(s string) bool {
	lower := strings.ToLower(s)
	return lo.SomeBy(b.items, func(e string) bool { return strings.Contains(strings.ToLower(e), lower) })
}

func (b *benefitList) overlaps(s string) bool {
	lower := strings.ToLower(s)
	return lo.SomeBy(b.items, func(e string) bool {
		el := strings.ToLower(e)
		return strings.Contains(el, lower) || strings.Contains(lower, el)
	})
}

// overlapsPrefix compares the first n characters of s and of each benefit
// against the other.
func (b *benefitList) overlapsPrefix(s string, n int) bool {
	lower := strings.ToLower(s)
	return lo.SomeBy(b.items, func(e string) bool {
		el := strings.ToLower(e)
		return strings.Contains(el, headRunes(lower, n)) || strings.Contains(lower, headRunes(el, n))
	})
}

// firstSentences keeps at most n sentences of s and ends it with a period.
func firstSentences(s string, n int) string {
	parts := strings.Split(s, ".")
	if len(parts) > n {
		return strings.Join(parts[:n], ". ") + "."
	}
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// footnoteText trims a footnote to three sentences or 350 characters.
func footnoteText(s string) string {
	parts := strings.Split(s, ".")
	switch {
	case len(parts) > 3:
		return strings.Join(parts[:3], ". ") + "."
	case width(s) > 350:
		cut := headRunes(s, 350)
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut + "..."
	case !strings.HasSuffix(s, "."):
		return strings.TrimRight(s, ".,;:") + "."
	}
	return s
}

// dedupeByPrefix drops entries whose first n lower-cased characters repeat
// an earlier entry, then caps the list at limit.
func dedupeByPrefix(items []string, n, limit int) []string {
	out := lo.UniqBy(items, func(s string) string { return headRunes(strings.ToLower(s), n) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func hasAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	return lo.SomeBy(keywords, func(k string) bool { return strings.Contains(lower, k) })
}

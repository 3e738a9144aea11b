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

const termKeywords = `(?:offer|discount|valid|minimum|purchase|exclusion|code|promo|expires?|through|online|store|while supplies)`

var (
	validSplitRe   = regexp.MustCompile(`\b[Vv]alid\s+`)
	validContentRe = regexp.MustCompile(`(?i)^([^.]+(?:\.[^.]{0,200}(?:checkout|barcode|number|supplies last|minimum|department)[^.\n]*)?\.?)`)
	termCutRe      = regexp.MustCompile(`\.\s*(?:Shop|Also available|Learn more|Click|View)`)
	alsoAvailRe    = regexp.MustCompile(`(?i)\s*also available:\s*$`)
	minPurchaseRe  = regexp.MustCompile(`(?i)\$\d+(?:\.\d{2})?\s+minimum\s+purchase`)
)

var validIndicators = []string{
	"/", "minimum", "$", "purchase", "store", "online", "department", "while supplies",
	"scan", "barcode", "phone", "offer", "discount", "code",
}

// footnoteRe pairs a footnote marker pattern with whether it is a single
// glyph. Longer markers are listed first.
type footnoteRe struct {
	re     *regexp.Regexp
	single bool
}

var footnoteRes = func() []footnoteRe {
	body := `\s*([^\n]{15,300}` + termKeywords + `[^\n]{0,200})`
	var out []footnoteRe
	for _, m := range []string{`\*\*\*`, `\*\*`, `‡‡`, `††`, `§§`} {
		out = append(out, footnoteRe{re: regexp.MustCompile(`(?i)(` + m + `)` + body)})
	}
	for _, m := range []string{`\*`, `‡`, `†`, `§`, `¶`} {
		out = append(out, footnoteRe{re: regexp.MustCompile(`(?i)(` + m + `)` + body), single: true})
	}
	out = append(out,
		footnoteRe{re: regexp.MustCompile(`(?i)([¹²³⁴⁵⁶⁷⁸⁹])` + body)},
		footnoteRe{re: regexp.MustCompile(`(?i)(\$)\s*(See\s+[^\n]{10,300}(?:offer|discount|valid|minimum|purchase|exclusion|code|promo|expires?|through|online|store)[^\n]{0,200})`)},
	)
	return out
}()

// codeContextRes tie a code to what it buys. codeFirst says which group
// holds the code.
var codeContextRes = []struct {
	re        *regexp.Regexp
	codeFirst bool
}{
	{regexp.MustCompile(`(?i)(?:use|enter|apply)\s+code\s+([a-z0-9]+)\s+(?:for|to get)\s+([^.]{10,100})`), true},
	{regexp.MustCompile(`(?i)([^.]{10,100})\s+with\s+code\s+([a-z0-9]+)`), false},
}

var pointsRes = compileAll(
	`(?i)you'?re\s+([\d,]+\s+points\s+from\s+(?:the\s+)?next\s+\$\d+)`,
	`(?i)you have\s+([\d,]+\s+points)`,
	`(?i)([\d,]+\s+points\s+available)`,
	`(?i)earn\s+([\d,]+\s+(?:bonus\s+)?points)`,
)

// ValidityTerms returns the fine print that says how an offer can be
// used: "Valid ..." sentences, footnotes behind markers such as "*" or
// "†" (kept with their marker), "Use code X - ..." instructions and bare
// minimum-purchase amounts.
func ValidityTerms(body string) []string {
	if body == "" {
		return nil
	}
	var terms []string

	for _, content := range validSplitRe.Split(body, -1)[1:] {
		m := validContentRe.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		term := strings.TrimRight(textnorm.Squash(m[1]), ".")
		if loc := termCutRe.FindStringIndex(term); loc != nil {
			term = term[:loc[0]]
		}
		term = strings.TrimRight(strings.TrimSpace(term), ".")
		term = alsoAvailRe.ReplaceAllString(term, "")

		lower := strings.ToLower(term)
		if !lo.SomeBy(validIndicators, func(s string) bool { return strings.Contains(lower, s) }) {
			continue
		}
		if width(term) >= 15 {
			terms = appendUnique(terms, term)
		}
	}

	seen := map[string]bool{}
	for _, f := range footnoteRes {
		for _, loc := range f.re.FindAllStringSubmatchIndex(body, -1) {
			marker := body[loc[2]:loc[3]]
			if f.single && !isLoneMarker(body, loc[2], loc[3]) {
				continue
			}
			text := strings.TrimRight(textnorm.Squash(body[loc[4]:loc[5]]), ".,;:")
			if cut := termCutRe.FindStringIndex(text); cut != nil {
				text = strings.TrimSpace(text[:cut[0]])
			}
			if width(text) < 15 || seen[text] {
				continue
			}
			seen[text] = true
			terms = appendUnique(terms, marker+" "+text)
		}
	}

	for _, c := range codeContextRes {
		for _, m := range c.re.FindAllStringSubmatch(body, -1) {
			code, desc := m[1], m[2]
			if !c.codeFirst {
				code, desc = m[2], m[1]
			}
			desc = strings.Trim(textnorm.Squash(desc), ".,;:")
			if width(desc) > 10 && len(code) >= 3 {
				terms = appendUnique(terms, "Use code "+code+" - "+desc)
			}
		}
	}

	if !lo.SomeBy(terms, func(t string) bool { return strings.Contains(strings.ToLower(t), "minimum purchase") }) {
		for _, m := range minPurchaseRe.FindAllString(body, -1) {
			terms = appendUnique(terms, m)
		}
	}
	return terms
}

// isLoneMarker reports whether the glyph at body[start:end] is not part of
// a longer marker such as "**" or "†‡".
func isLoneMarker(body string, start, end int) bool {
	if r, _ := utf8.DecodeLastRuneInString(body[:start]); strings.ContainsRune(footnoteGlyphs, r) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(body[end:]); strings.ContainsRune(footnoteGlyphs, r) {
		return false
	}
	return true
}

const footnoteGlyphs = "‡*†§¶"

// PointsRewards returns points balances and earn offers such as "You're
// 1,000 points from the next $2".
func PointsRewards(body string) []string {
	var out []string
	for _, re := range pointsRes {
		for _, m := range submatches(re, body, 1) {
			text := textnorm.Squash(m)
			if width(text) < 10 {
				continue
			}
			if strings.Contains(strings.ToLower(text), "from the next") {
				text = "You're " + text
			}
			out = appendUnique(out, text)
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if lo.Contains(list, s) {
		return list
	}
	return append(list, s)
}

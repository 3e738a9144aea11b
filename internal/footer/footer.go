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

// Package footer mines promotional detail from an email body: the store
// behind it, promo codes, discount terms, expiry dates, fine-print terms,
// points balances and membership benefits.
//
// Legal and brand boilerplate is read from the footer, the trailing window
// of the body. Offers are read from the whole body. Every function is
// total and returns empty values when nothing is found.
package footer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/textnorm"
)

// DefaultWindow is the footer length, in characters, when none is given.
const DefaultWindow = 2000

// Content is what the footer window reveals about the sender.
type Content struct {
	StoreName    string
	PromoCodes   []string
	Website      string
	ContactEmail string
	Address      string
}

var (
	websiteRe      = regexp.MustCompile(`(?i)https?://(?:www\.)?([a-z0-9-]+\.(?:com|net|org|co|shop|us|io))`)
	contactEmailRe = regexp.MustCompile(`\b([a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})\b`)
	addressRe      = regexp.MustCompile(`(?i)\b(\d+\s+[\w\s]+(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way|court|ct|circle|cir|crescent)[^,]*,\s*[a-z]{2}[,\s]+\d{5}(?:-\d{4})?)`)

	onlineSuffixRe = regexp.MustCompile(`(?i)\s+online$`)
	coSuffixRe     = regexp.MustCompile(`(?i)\s+co\.?$`)
)

// footerStoreRes find the legal entity in boilerplate. Copyright lines are
// the most reliable and come first; bare "X Inc." captures come last.
var footerStoreRes = compileAll(
	`(?i)©\s*\d{4}\s+([a-z][a-z0-9.]+(?:\s+[a-z]+)*?)(?:,?\s+(?:inc\.|llc|ltd\.|corp\.|corporation|co\.))?(?:\s+all\s+rights|\.|$)`,
	`(?i)copyright\s+(?:©\s*)?\d{4}\s+([a-z][a-z0-9.]+(?:\s+[a-z]+)*?)(?:,?\s+(?:inc\.|llc|ltd\.|corp\.|corporation))?`,
	`(?i)this email (?:was sent by|is from)[:\s]+([a-z][\w\s.&]+?)(?:,\s*(?:inc\.|llc|ltd\.|corp\.))?(?:[,.]|\s+\d)`,
	`(?i)([\w\s.&]+)\s+customer\s+(?:relations|service|support|care)`,
	`(?i)(?:^|\.\s+|\s{2,})([a-z][\w\s+.&]{3,40}?)\s+is\s+a\s+(?:registered\s+)?trademark`,
	`(?i)([a-z]+(?:\s+[a-z]+)?)\s+reserves\s+the\s+right`,
	`(?i)\(a division of\s+([a-z][\w\s&.]+?)(?:\s+corp\.?|\s+inc\.)?\)`,
	`(?i)a division of\s+([a-z][\w\s&.]+?)(?:\s+corp\.?|\s+inc\.?)?[,.]`,
	`(?i)([a-z][\w\s.&]+?)(?:,\s*(?:inc\.|llc|ltd\.|corp\.|corporation))(?:[,\s]|$)`,
	`(?i)([\w\s.&]+)\s+(?:inc\.|llc|ltd\.|corp\.|corporation)`,
	`(?i)(?:unsubscribe|contact|visit)\s+(?:at\s+)?https?://(?:www\.)?([a-z0-9-]+)\.(?:com|net)`,
)

var contactEmailSkips = []string{"unsubscribe", "list-", "bounce", "return"}

// Tail returns the last window characters of body, or all of it when it is
// shorter. A non-positive window means DefaultWindow.
func Tail(body string, window int) string {
	if window <= 0 {
		window = DefaultWindow
	}
	n := utf8.RuneCountInString(body)
	if n <= window {
		return body
	}
	skip := n - window
	for i := range body {
		if skip == 0 {
			return body[i:]
		}
		skip--
	}
	return ""
}

// ExtractContent reads the footer window of body.
func ExtractContent(body string, window int) Content {
	footer := Tail(body, window)
	c := Content{PromoCodes: promoCodes(footer, footerPromoRes)}

	if sites := lo.Uniq(submatches(websiteRe, footer, 1)); len(sites) > 0 {
		c.Website = sites[len(sites)-1]
	}

	for _, addr := range submatches(contactEmailRe, footer, 1) {
		lower := strings.ToLower(addr)
		if !lo.SomeBy(contactEmailSkips, func(s string) bool { return strings.Contains(lower, s) }) {
			c.ContactEmail = addr
			break
		}
	}

	c.StoreName = storeFromBoilerplate(footer)

	if m := addressRe.FindStringSubmatch(footer); m != nil {
		c.Address = strings.TrimSpace(m[1])
	}
	return c
}

// storeFromBoilerplate tries each legal-entity pattern in order. A capture
// shaped like a personal name, or outside 4..49 characters, defers to the
// next pattern.
func storeFromBoilerplate(footer string) string {
	if footer == "" {
		return ""
	}
	for _, re := range footerStoreRes {
		m := re.FindStringSubmatch(footer)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = onlineSuffixRe.ReplaceAllString(name, "")
		name = coSuffixRe.ReplaceAllString(name, "")
		if textnorm.LooksLikeFirstLast(name) {
			continue
		}
		if n := utf8.RuneCountInString(name); n > 3 && n < 50 {
			return name
		}
	}
	return ""
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// submatches returns group n of every match of re in text.
func submatches(re *regexp.Regexp, text string, n int) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[n])
	}
	return out
}

func width(s string) int { return utf8.RuneCountInString(s) }

// headRunes returns at most the first n characters of s.
func headRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

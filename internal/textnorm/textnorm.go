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

// Package textnorm canonicalises email text before any pattern matching and
// holds the small string helpers shared by the classifiers and extractors.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// symbolReplacer maps typographic quotes to ASCII and drops trademark
// glyphs. Copyright signs, footnote markers and dashes are kept: footer
// and terms patterns depend on them.
var symbolReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	"®", "", "™", "", "℠", "",
	"¬Æ", "", // mojibake for ®
	"\u00a0", " ", "\u2007", " ", "\u2009", " ", "\u202f", " ", "\u3000", " ",
	"\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "",
)

// Normalize returns s with quotes, trademark symbols and odd spaces
// canonicalised. It is idempotent.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return symbolReplacer.Replace(s)
}

// Squash collapses runs of whitespace into single spaces and trims.
func Squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Title capitalizes every space-separated word.
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// UpperFirst upper-cases only the first rune.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

var personNameRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z]\.)?(?:\s+[A-Z][a-z]+){1,2}$`)

// LooksLikePersonName reports whether s has the shape of a personal name:
// two or three capitalized words, optionally with a middle initial.
func LooksLikePersonName(s string) bool {
	return personNameRe.MatchString(strings.TrimSpace(s))
}

var firstLastRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z]\.)?\s+[A-Z][a-z]+$`)

// LooksLikeFirstLast is the narrower check for legal boilerplate: only
// "First Last" and "First M. Last". Three-word brands such as
// "Urban Decay Cosmetics" pass.
func LooksLikeFirstLast(s string) bool {
	return firstLastRe.MatchString(strings.TrimSpace(s))
}

// StripEmoji removes pictographs and their joiners.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r) && r > 0x2000:
			return -1
		case r >= 0xfe00 && r <= 0xfe0f, r == 0x200d:
			return -1
		case r >= 0x1f000:
			return -1
		}
		return r
	}, s)
}

// IsWordRune reports whether r is a letter or a digit.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Sender is a parsed From header.
type Sender struct {
	Name    string
	Address string
	Domain  string
}

// ParseSender splits "Display Name <addr@domain>" into its parts. A bare
// address has an empty Name. Domain is lower-cased and empty when the
// address has no "@".
func ParseSender(from string) Sender {
	from = strings.TrimSpace(from)
	var s Sender
	if i := strings.LastIndex(from, "<"); i >= 0 {
		s.Name = strings.Trim(strings.TrimSpace(from[:i]), `"' `)
		s.Address = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(from[i+1:]), ">"))
	} else {
		s.Address = from
	}
	if at := strings.LastIndex(s.Address, "@"); at >= 0 {
		s.Domain = strings.ToLower(strings.Trim(s.Address[at+1:], "> ."))
	}
	return s
}

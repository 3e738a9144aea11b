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

// Package lexicon holds the static phrase and domain tables used to
// canonicalise extracted names and to judge sender domains.
//
// Tables are pure data. Lookups are case-insensitive and token-bounded: a
// key only matches where it is not glued to a neighbouring letter or digit,
// so "max" does not match "maximum" and "clear" does not match "clearance".
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bcem/mailsift/internal/textnorm"
)

// Entry maps a lower-case key phrase to its canonical display value.
type Entry struct {
	Key   string
	Value string
}

// Table is an ordered phrase lexicon. Lookup returns the first entry, in
// table order, whose key occurs in the text.
type Table struct {
	entries []Entry
}

// NewTable builds a table checked longest-key-first. Keys of equal length
// keep their declaration order, so the result is deterministic.
func NewTable(entries []Entry) *Table {
	sorted := normalizeEntries(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Key) > utf8.RuneCountInString(sorted[j].Key)
	})
	return &Table{entries: sorted}
}

// NewOrderedTable builds a table checked in declaration order.
func NewOrderedTable(entries []Entry) *Table {
	return &Table{entries: normalizeEntries(entries)}
}

func normalizeEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Entry{Key: key, Value: e.Value})
	}
	return out
}

// Lookup returns the canonical value of the first key found in text.
func (t *Table) Lookup(text string) (string, bool) {
	e, ok := t.Find(text)
	return e.Value, ok
}

// Find is Lookup returning the whole matching entry.
func (t *Table) Find(text string) (Entry, bool) {
	if text == "" {
		return Entry{}, false
	}
	lower := strings.ToLower(text)
	for _, e := range t.entries {
		if ContainsToken(lower, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

// Exact returns the value whose key equals text, ignoring case.
func (t *Table) Exact(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	for _, e := range t.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in lookup order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ContainsToken reports whether key occurs in text with no letter or digit
// immediately before or after it. The boundary is only enforced on a side
// where the key itself starts or ends with a letter or digit, so "walmart+"
// matches "walmart+member". Both arguments must already share a case.
func ContainsToken(text, key string) bool {
	if key == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(key)
	last, _ := utf8.DecodeLastRuneInString(key)
	checkLeft := textnorm.IsWordRune(first)
	checkRight := textnorm.IsWordRune(last)

	for from := 0; from <= len(text)-len(key); {
		idx := strings.Index(text[from:], key)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(key)
		ok := true
		if checkLeft && start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			ok = !textnorm.IsWordRune(prev)
		}
		if ok && checkRight && end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			ok = !textnorm.IsWordRune(next)
		}
		if ok {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

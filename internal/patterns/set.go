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

// Package patterns holds the ordered regular-expression families that
// recognise membership, card offer, coupon, gift card and order language.
//
// Every expression is compiled case-insensitively at package init. Input is
// expected to be normalised by textnorm first, so the expressions only
// need to handle ASCII quotes.
package patterns

import (
	"regexp"
	"strings"
)

// Set is an ordered disjunction of expressions for one signal family.
type Set struct {
	name string
	res  []*regexp.Regexp
}

// NewSet compiles exprs case-insensitively. It panics on an invalid
// expression, which is a programming error in the tables.
func NewSet(name string, exprs ...string) *Set {
	s := &Set{name: name, res: make([]*regexp.Regexp, 0, len(exprs))}
	for _, e := range exprs {
		s.res = append(s.res, regexp.MustCompile(`(?i)`+e))
	}
	return s
}

// Name identifies the family in diagnostics.
func (s *Set) Name() string { return s.name }

// Len returns the number of expressions.
func (s *Set) Len() int { return len(s.res) }

// Match reports whether any expression matches text.
func (s *Set) Match(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, re := range s.res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Find returns up to limit distinct matched fragments, in expression order.
// A limit of zero or less means no limit.
func (s *Set) Find(text string, limit int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, re := range s.res {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if m == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

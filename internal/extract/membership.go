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

package extract

import (
	"regexp"
	"strings"

	"github.com/bcem/mailsift/internal/lexicon"
	"github.com/bcem/mailsift/internal/models"
	"github.com/bcem/mailsift/internal/textnorm"
)

// programName is the capture shape shared by the structured body phrases.
const programName = `([a-z][a-z0-9\s'+.&-]{3,50}?)`

var membershipBodyRes = compileAll(
	`(?i)(?:your|the)\s+`+programName+`\s+membership\s+is\s+(?:now\s+)?active`,
	`(?i)your\s+([a-z][a-z][a-z0-9\s'+.&-]{3,50}?)\s+(?:membership|rewards?|program)\s+(?:is|keeps|unlocks|provides)\b`,
	`(?i)program:\s+`+programName+`(?:\s*\n|\s*tier:)`,
	`(?i)membership plan:\s+`+programName+`\s+(?:\(|$)`,
	`(?i)enrolled in\s+`+programName+`(?:\s*\.\s*|\s*$)`,
	`(?i)thank you for joining\s+`+programName+`(?:\s*\.\s*|\s*$)`,
)

var membershipTierRe = regexp.MustCompile(`(?i)\b([\w\s'+]+)\s+(club\+|boost\+|plus|premium|pro|rewards?|insider|member|circle|perks?):\s`)

// MembershipName resolves the program name of a membership email.
//
// The chain is: structured body phrases ("Your X Membership is now active",
// "Program: X", "enrolled in X"), renamed through MembershipAliases; the
// Memberships lexicon over subject and body; a subject tier prefix such as
// "Kroger Boost+: "; and finally "Membership".
func MembershipName(subject, body string) Name {
	if name, ok := membershipFromBody(body); ok {
		if alias, ok := lexicon.MembershipAliases.Exact(name); ok {
			return named(alias, StageAlias)
		}
		return named(name, StageBody)
	}

	if v, ok := lexicon.Memberships.Lookup(subject + " " + body); ok {
		return named(v, StageLexicon)
	}

	if m := membershipTierRe.FindStringSubmatch(subject); m != nil {
		store := textnorm.Title(strings.TrimSpace(m[1]))
		return named(store+" "+textnorm.Capitalize(m[2]), StageSubject)
	}

	return named(models.DefaultMembershipName, StageDefault)
}

// membershipFromBody tries each body phrase in order. A capture must not be
// a generic phrase and must have two words or a "+" or apostrophe, which
// keeps single words like "Gold" from passing as a program.
func membershipFromBody(body string) (string, bool) {
	if body == "" {
		return "", false
	}
	for _, re := range membershipBodyRes {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		name := strings.Trim(clean(m[1]), ".,;:")
		if isOneOf(name, lexicon.InvalidMembershipCaptures) {
			continue
		}
		if len(strings.Fields(name)) >= 2 || strings.ContainsAny(name, "+'") {
			return name, true
		}
	}
	return "", false
}

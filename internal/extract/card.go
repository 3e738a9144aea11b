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
)

const cardSuffix = `\s*(?:credit\s+)?card`

var cardBodyRes = compileAll(
	`(?i)welcome to\s+([a-z][a-z0-9\s]+?)\s+(?:credit\s+)?card`,
	`(?i)congratulations on your\s+([a-z][a-z0-9\s]+?)\s+approval`,
	`(?i)your\s+([a-z][a-z0-9\s]+?)\s+(?:credit\s+)?card\s+(?:is|has been)\b`,
	`(?i)activate your\s+([a-z][a-z0-9\s]+?)\s+(?:credit\s+)?card`,
)

// cardFamilyRes are issuer product families. Within a family the most
// specific product comes first; the list order is significant.
var cardFamilyRes = compileAll(
	// american express
	`(?i)\b(american express\s*(?:blue cash everyday|blue cash preferred|gold|platinum|green|delta skymiles|hilton honors|marriott bonvoy)?)`+cardSuffix,
	`(?i)\b(amex\s*(?:blue cash everyday|blue cash preferred|gold|platinum|green)?)`+cardSuffix,

	// delta
	`(?i)\b(delta skymiles\s*(?:gold|platinum|reserve|blue)?\s*(?:business)?\s*(?:american express)?)`+cardSuffix,

	// chase
	`(?i)\b(chase\s*sapphire reserve)`+cardSuffix,
	`(?i)\b(chase\s*sapphire preferred)`+cardSuffix,
	`(?i)\b(chase\s*freedom unlimited)`+cardSuffix,
	`(?i)\b(chase\s*freedom flex)`+cardSuffix,
	`(?i)\b(chase\s*freedom)`+cardSuffix,
	`(?i)\b(chase\s*ink business)`+cardSuffix,

	// capital one
	`(?i)\b(capital one\s*venture x rewards?)`+cardSuffix,
	`(?i)\b(capital one\s*venture rewards?)`+cardSuffix,
	`(?i)\b(capital one\s*venture)`+cardSuffix,
	`(?i)\b(capital one\s*quicksilver)`+cardSuffix,
	`(?i)\b(capital one\s*savorone)`+cardSuffix,
	`(?i)\b(capital one\s*spark)`+cardSuffix,

	// citi
	`(?i)\b(citi\s*(?:double cash|premier|custom cash|diamond preferred)?)`+cardSuffix,

	// discover
	`(?i)\b(discover\s*it miles)`+cardSuffix,
	`(?i)\b(discover\s*it chrome)`+cardSuffix,
	`(?i)\b(discover\s*it)`+cardSuffix,

	// bank of america
	`(?i)\b(bank of america\s*premium rewards)`+cardSuffix,
	`(?i)\b(bank of america\s*cash rewards)`+cardSuffix,
	`(?i)\b(bank of america\s*travel rewards)`+cardSuffix,
	`(?i)\b(bank of america\s*customized cash)`+cardSuffix,

	// wells fargo
	`(?i)\b(wells fargo\s*(?:active cash|autograph|reflect)?)`+cardSuffix,

	// networks
	`(?i)\b((?:visa|mastercard|discover)\s*(?:signature|platinum|gold|rewards)?)`+cardSuffix,
)

var cardSubjectRe = regexp.MustCompile(`(?i)your\s+(.+?)\s+(?:benefits|is|has|are)\b`)

// minCardNameLen rejects bare issuer stubs such as "Amex" or "Citi".
const minCardNameLen = 6

// CardName resolves the credit card product named by an Offer email.
//
// The chain is: body phrases ("Welcome to X Card", "activate your X Card");
// issuer product families over subject and body, most specific first; a
// subject of the form "Your X Card Benefits Are Now Active"; the
// CardIssuers lexicon; and finally "Credit Card".
func CardName(subject, body string) Name {
	if body != "" {
		for _, re := range cardBodyRes {
			m := re.FindStringSubmatch(body)
			if m == nil {
				continue
			}
			name := clean(m[1])
			if len(name) >= minCardNameLen && !isOneOf(name, lexicon.CardGenericCaptures) {
				return named(name, StageBody)
			}
		}
	}

	text := subject + " " + body
	for _, re := range cardFamilyRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if name := clean(m[1]); len(name) >= minCardNameLen {
			return named(name, StagePattern)
		}
	}

	if m := cardSubjectRe.FindStringSubmatch(subject); m != nil {
		if name := strings.TrimSpace(m[1]); strings.Contains(strings.ToLower(name), "card") {
			return named(name, StageSubject)
		}
	}

	if v, ok := lexicon.CardIssuers.Lookup(text); ok {
		return named(v, StageLexicon)
	}
	return named(models.DefaultCardName, StageDefault)
}

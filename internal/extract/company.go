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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bcem/mailsift/internal/lexicon"
	"github.com/bcem/mailsift/internal/models"
	"github.com/bcem/mailsift/internal/textnorm"
)

// signatureName is the capture shape of a brand in a sign-off.
const signatureName = `([a-z][a-z0-9\s&'.]+?)`

// signatureRes recognise sign-offs such as "Happy shopping, FreshMart Team"
// or "Warm regards,\nThe Acme Team". General closings come first.
var signatureRes = compileAll(
	`(?im)[a-z\s]+[!,]\s*(?:the\s+)?`+signatureName+`\s+team\s`,
	`(?im)[a-z\s]+[!,]\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)(?:customer\s+)?(?:support|service|care)\s+team\s*\n+\s*`+signatureName+`\s*(?:\n|$)`,
	`(?im)(?:customer\s+)?(?:support|service|care)\s+team[,\s]+`+signatureName+`(?:\s*$|\s*\n)`,
	`(?im)(?:warm\s+)?regards[!,]*\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)(?:warm\s+)?regards[!,]*\s+`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)thanks[!,]*\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)cheers[!,]*\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)best[!,]*\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)sincerely[!,]*\s*\n+\s*(?:the\s+)?`+signatureName+`(?:\s+team)?\s*(?:\n|$)`,
	`(?im)\bthe\s+`+signatureName+`\s+team\b`,
)

var signatureSkipWords = []string{
	"customer", "support", "service", "team", "regards", "thanks", "best", "the", "shopping",
}

// genericInboxNames are display names that describe a mailbox, not a brand.
var genericInboxNames = []string{
	"noreply", "no-reply", "info", "deals", "offers", "team", "support",
}

// CompanyName resolves the store or brand behind an email.
//
// Mail relayed through the forwarding test domain carries no brand and
// returns "Unknown Store". Otherwise the chain is: a sign-off in the body;
// the Brands lexicon over sender, subject and body; the sender display
// name; the brand label of the sender domain; and finally "Store/Website".
func CompanyName(sender, subject, body string) Name {
	from := textnorm.ParseSender(sender)
	if isForwarded(from.Domain) {
		return named(models.UnknownStoreName, StageSkipped)
	}

	if name, ok := companyFromSignature(body); ok {
		return named(name, StageSignature)
	}

	if v, ok := lexicon.Brands.Lookup(sender + " " + subject + " " + body); ok {
		return named(v, StageLexicon)
	}

	if name, ok := companyFromDisplayName(from.Name); ok {
		return named(name, StageSender)
	}

	if name, ok := companyFromDomain(from.Domain); ok {
		return named(name, StageDomain)
	}
	return named(models.DefaultStoreName, StageDefault)
}

func isForwarded(domain string) bool {
	return domain == lexicon.ForwardingDomain || strings.HasSuffix(domain, "."+lexicon.ForwardingDomain)
}

// companyFromSignature returns the first plausible brand in a sign-off. A
// capture shaped like a personal name ("Jane Smith") is a person signing,
// not a brand, and is skipped unless the Brands lexicon knows it.
func companyFromSignature(body string) (string, bool) {
	if body == "" {
		return "", false
	}
	for _, re := range signatureRes {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		name := clean(m[1])
		if isOneOf(name, signatureSkipWords) || len(name) <= 2 || len(name) >= 50 {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
			continue
		}
		if v, ok := lexicon.Brands.Lookup(name); ok {
			return v, true
		}
		if textnorm.LooksLikePersonName(name) {
			continue
		}
		return name, true
	}
	return "", false
}

// companyFromDisplayName accepts a single word or a short phrase. Two or
// three words read as a person ("Linto Jomon", "John Q. Smith").
func companyFromDisplayName(name string) (string, bool) {
	if name == "" || isOneOf(name, genericInboxNames) {
		return "", false
	}
	words := strings.Fields(name)
	if len(words) >= 2 && len(words) <= 3 {
		return "", false
	}
	if len(words) == 1 || len(name) < 20 {
		return name, true
	}
	return "", false
}

func companyFromDomain(domain string) (string, bool) {
	label := lexicon.BrandLabel(domain)
	if label == "" || isOneOf(label, lexicon.WebmailLabels) {
		return "", false
	}
	if v, ok := lexicon.MultiWordBrands.Exact(label); ok {
		return v, true
	}
	return textnorm.Capitalize(label), true
}

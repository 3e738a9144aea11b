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

// Package classify assigns exactly one category to an email from its
// sender, subject and, where necessary, body.
//
// The domain classifier looks at the sender only, the text classifier runs
// the pattern libraries, and the resolver combines both under a fixed rule
// order. None of these steps keep state between emails.
package classify

import (
	"github.com/bcem/mailsift/internal/models"
)

// Classifier is the entry point used by the analyzer.
type Classifier struct {
	resolver *Resolver
}

// New returns a classifier using DefaultRules.
func New() *Classifier {
	return &Classifier{resolver: NewResolver(DefaultRules())}
}

// Evidence gathers the domain verdict and text signals for email. Inputs
// are expected to be normalised already. The subject and body of an
// excluded sender are never read.
func (c *Classifier) Evidence(email models.Email) Evidence {
	ev := Evidence{Domain: ClassifyDomain(email.Sender)}
	if ev.Domain.Excluded {
		return ev
	}
	ev.Text = EvaluateText(email.Subject, email.Body)
	return ev
}

// Classify returns the category decision for email.
func (c *Classifier) Classify(email models.Email) models.ClassificationResult {
	return c.resolver.Resolve(c.Evidence(email))
}

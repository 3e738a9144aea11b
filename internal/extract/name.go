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

// Package extract pulls structured entities out of classified emails:
// membership program names, credit card products, store names and gift
// card details.
//
// Every extractor is a fixed fallback chain. Each stage either produces a
// confident value or defers to the next, and the chain always ends in a
// documented default, so no extractor returns an error. Inputs are
// expected to be normalised with textnorm.Normalize.
package extract

import (
	"regexp"
	"strings"

	"github.com/bcem/mailsift/internal/textnorm"
)

// Stage identifies the step of a fallback chain that produced a Name.
type Stage string

const (
	StageBody      Stage = "body"
	StageAlias     Stage = "alias"
	StageLexicon   Stage = "lexicon"
	StagePattern   Stage = "pattern"
	StageSubject   Stage = "subject"
	StageSignature Stage = "signature"
	StageSender    Stage = "sender"
	StageDomain    Stage = "domain"
	StageSkipped   Stage = "skipped"
	StageDefault   Stage = "default"
)

// Name is an extracted display name together with the stage that found it.
type Name struct {
	Value string
	Stage Stage
}

// Resolved reports whether a chain stage found the name, as opposed to the
// fixed default or a deliberate skip.
func (n Name) Resolved() bool {
	return n.Stage != StageDefault && n.Stage != StageSkipped
}

func (n Name) String() string { return n.Value }

func named(value string, stage Stage) Name {
	return Name{Value: value, Stage: stage}
}

// firstCapture returns the trimmed first submatch of the first expression
// in res that matches text.
func firstCapture(res []*regexp.Regexp, text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func isOneOf(s string, list []string) bool {
	s = strings.ToLower(s)
	for _, v := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clean(s string) string {
	return textnorm.Squash(s)
}

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


package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"google.golang.org/api/gmail/v1"

	"github.com/bcem/mailsift/internal/models"
)

// parseMessage converts a full-format Gmail message into an Email. The
// body prefers the HTML part, flattened to text, over the plain part; the
// raw HTML is kept for image scanning.
func parseMessage(msg *gmail.Message) (*models.Email, error) {
	email := &models.Email{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}
	if msg.Payload == nil {
		return email, nil
	}

	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "subject":
			email.Subject = h.Value
		case "from":
			email.Sender = h.Value
		case "date":
			email.Date = h.Value
		}
	}

	htmlPart, plainPart := findParts(msg.Payload)
	if htmlPart != nil {
		doc, err := decodeBase64URL(htmlPart.Body.Data)
		if err != nil {
			return nil, fmt.Errorf("decode html part: %w", err)
		}
		email.HTML = doc
		text, err := html2text.FromString(doc, html2text.Options{OmitLinks: true})
		if err != nil {
			return nil, fmt.Errorf("convert html: %w", err)
		}
		email.Body = text
		return email, nil
	}
	if plainPart != nil {
		text, err := decodeBase64URL(plainPart.Body.Data)
		if err != nil {
			return nil, fmt.Errorf("decode text part: %w", err)
		}
		email.Body = text
	}
	return email, nil
}

// findParts returns the first text/html and text/plain parts with data,
// recursing into nested multipart containers.
func findParts(p *gmail.MessagePart) (htmlPart, plainPart *gmail.MessagePart) {
	if p == nil {
		return nil, nil
	}
	if p.Body != nil && p.Body.Data != "" {
		switch strings.ToLower(p.MimeType) {
		case "text/html":
			return p, nil
		case "text/plain":
			plainPart = p
		}
	}
	for _, part := range p.Parts {
		h, t := findParts(part)
		if h != nil {
			return h, firstPart(plainPart, t)
		}
		plainPart = firstPart(plainPart, t)
	}
	return nil, plainPart
}

func firstPart(a, b *gmail.MessagePart) *gmail.MessagePart {
	if a != nil {
		return a
	}
	return b
}

// decodeBase64URL accepts Gmail's URL-safe encoding with or without
// padding.
func decodeBase64URL(s string) (string, error) {
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return string(data), nil
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

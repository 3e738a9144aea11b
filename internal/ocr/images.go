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

// Package ocr recovers promotional text from the images embedded in an
// HTML email: it finds candidate <img> tags, downloads them, sends them to
// a text recognizer and parses offers out of what comes back.
package ocr

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// DefaultMaxImages bounds how many images are recognized per email.
const DefaultMaxImages = 10

// Image is a candidate <img> from an email.
type Image struct {
	URL string
	Alt string
}

var (
	trackingMarkers = []string{"open.aspx", "tracking", "pixel", "spacer"}
	promoMarkers    = []string{".jpg", ".png", ".jpeg", "image", "promo", "offer", "sale"}
)

// FindImages returns up to limit images that may carry promotional
// content, in document order. Tracking pixels and spacers are skipped, and
// an image must have meaningful alt text or a promotional-looking source.
// A non-positive limit means DefaultMaxImages.
func FindImages(doc string, limit int) []Image {
	if limit <= 0 {
		limit = DefaultMaxImages
	}
	var out []Image
	z := html.NewTokenizer(strings.NewReader(doc))
	for len(out) < limit {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "img" || !hasAttr {
			continue
		}

		var img Image
		for {
			key, val, more := z.TagAttr()
			switch string(key) {
			case "src":
				img.URL = strings.TrimSpace(string(val))
			case "alt":
				img.Alt = strings.TrimSpace(string(val))
			}
			if !more {
				break
			}
		}
		if candidate(img) {
			out = append(out, img)
		}
	}
	return out
}

func candidate(img Image) bool {
	if img.URL == "" {
		return false
	}
	src := strings.ToLower(img.URL)
	if lo.SomeBy(trackingMarkers, func(m string) bool { return strings.Contains(src, m) }) {
		return false
	}
	return len(img.Alt) > 3 || lo.SomeBy(promoMarkers, func(m string) bool { return strings.Contains(src, m) })
}

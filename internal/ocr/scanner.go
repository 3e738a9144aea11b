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

package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/models"
)

const (
	maxImageBytes = 10 << 20
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Scanner downloads an email's images and recognizes promotional text in
// them.
type Scanner struct {
	httpClient *http.Client
	recognizer Recognizer
	maxImages  int
}

// NewScanner creates a scanner. A nil httpClient uses http.DefaultClient;
// a non-positive maxImages uses DefaultMaxImages.
func NewScanner(httpClient *http.Client, recognizer Recognizer, maxImages int) *Scanner {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	return &Scanner{
		httpClient: httpClient,
		recognizer: recognizer,
		maxImages:  maxImages,
	}
}

// Scan finds candidate images in doc, recognizes each one and returns the
// offers and store names found. An image that cannot be downloaded is
// skipped; a recognizer failure aborts the scan.
func (s *Scanner) Scan(ctx context.Context, doc string) (*models.ImageScan, error) {
	scan := &models.ImageScan{}
	images := FindImages(doc, s.maxImages)
	if len(images) == 0 {
		return scan, nil
	}

	var stores []string
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if name, ok := StoreFromAlt(img.Alt); ok {
			stores = append(stores, name)
		}

		data, err := s.download(ctx, img.URL)
		if err != nil {
			slog.Warn("image download failed", "url", img.URL, "error", err)
			continue
		}
		text, err := s.recognizer.Recognize(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", img.URL, err)
		}
		text = strings.TrimSpace(text)
		if len(text) <= 5 {
			continue
		}

		if name, ok := StoreFromText(text); ok {
			stores = append(stores, name)
		}
		offer := ParseOffer(text)
		offer.ImageURL = img.URL
		if useful(offer) {
			scan.Offers = append(scan.Offers, offer)
		}
	}

	scan.StoreNames = lo.Uniq(stores)
	slog.Debug("images scanned",
		"images", len(images),
		"offers", len(scan.Offers),
		"stores", len(scan.StoreNames),
	)
	return scan, nil
}

func (s *Scanner) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image server returned HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

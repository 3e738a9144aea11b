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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// fakeRecognizer returns canned text keyed by the image bytes.
type fakeRecognizer struct {
	mu    sync.Mutex
	texts map[string]string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(_ context.Context, image []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.texts[string(image)], nil
}

// TestFindImages verifies tracking pixels are skipped and the limit holds.
func TestFindImages(t *testing.T) {
	doc := `<html><body>
<img src="https://t.example/open.aspx?u=1" width="1" height="1">
<img src="https://cdn.example/logo.gif" alt="">
<img src="https://cdn.example/hero.png">
<img src="https://cdn.example/banner.gif" alt="Spring event">
<img alt="no source">
</body></html>`

	got := FindImages(doc, 0)
	assert.Equal(t, []Image{
		{URL: "https://cdn.example/hero.png"},
		{URL: "https://cdn.example/banner.gif", Alt: "Spring event"},
	}, got)

	var many strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&many, `<img src="https://cdn.example/%d.jpg">`, i)
	}
	assert.Len(t, FindImages(many.String(), 0), DefaultMaxImages)
	assert.Len(t, FindImages(many.String(), 3), 3)
	assert.Empty(t, FindImages("", 0))
}

// TestParseOffer verifies discounts, codes, dates and keywords.
func TestParseOffer(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantDiscount string
		wantCode     string
		wantExpiry   string
		wantKeywords []string
	}{
		{
			name:         "percent with code and date",
			text:         "25% OFF everything\nUse code SPRING25 at checkout\nOffer ends 4/30/26",
			wantDiscount: "25%",
			wantCode:     "SPRING25",
			wantExpiry:   "4/30/26",
			wantKeywords: []string{},
		},
		{
			name:         "dollar beats percent",
			text:         "SAVE $20 TODAY ONLY",
			wantDiscount: "$20 OFF",
			wantKeywords: []string{"today only"},
		},
		{
			name:         "keywords only",
			text:         "Up to 60% off plus free shipping",
			wantDiscount: "60%",
			wantKeywords: []string{"free shipping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOffer(tt.text)
			assert.Equal(t, tt.wantDiscount, got.Discount)
			assert.Equal(t, tt.wantCode, got.PromoCode)
			assert.Equal(t, tt.wantExpiry, got.ExpiryDate)
			assert.Equal(t, tt.wantKeywords, got.Keywords)
			assert.Equal(t, tt.text, got.RawText)
		})
	}
}

// TestStoreHints verifies store names from OCR text and alt text.
func TestStoreHints(t *testing.T) {
	name, ok := StoreFromText("THE BIG SALE at Macy's this week")
	assert.True(t, ok)
	assert.Equal(t, "Macy's", name)

	_, ok = StoreFromText("sale")
	assert.False(t, ok)

	name, ok = StoreFromAlt("J.Crew Factory")
	assert.True(t, ok)
	assert.Equal(t, "J.Crew Factory", name)

	_, ok = StoreFromAlt("Hero banner")
	assert.False(t, ok)
}

// TestScannerScan verifies images are downloaded, recognized and parsed,
// and that a broken image does not stop the scan.
func TestScannerScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/promo.png":
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("promo-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rec := &fakeRecognizer{texts: map[string]string{
		"promo-bytes": "25% OFF everything\nUse code SPRING25 at checkout\nOffer ends 4/30/26",
	}}
	scanner := NewScanner(srv.Client(), rec, 0)

	doc := fmt.Sprintf(`<img src="%[1]s/promo.png" alt="J.Crew Factory">
<img src="%[1]s/open.aspx?id=9">
<img src="%[1]s/missing.png" alt="Spring offer">`, srv.URL)

	scan, err := scanner.Scan(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, scan.Offers, 1)
	assert.Equal(t, "25%", scan.Offers[0].Discount)
	assert.Equal(t, "SPRING25", scan.Offers[0].PromoCode)
	assert.Equal(t, "4/30/26", scan.Offers[0].ExpiryDate)
	assert.Equal(t, srv.URL+"/promo.png", scan.Offers[0].ImageURL)
	assert.Equal(t, []string{"J.Crew Factory"}, scan.StoreNames)
	assert.Equal(t, 1, rec.calls)
}

// TestScannerRecognizerError verifies a recognizer failure is returned.
func TestScannerRecognizerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	rec := &fakeRecognizer{err: errors.New("quota exceeded")}
	scanner := NewScanner(srv.Client(), rec, 0)

	_, err := scanner.Scan(context.Background(), `<img src="`+srv.URL+`/a.png">`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	scan, err := scanner.Scan(context.Background(), "<p>no images</p>")
	require.NoError(t, err)
	assert.Empty(t, scan.Offers)
}

// TestVisionRecognizer verifies the text detection request and response
// handling against a fake Vision endpoint.
func TestVisionRecognizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req vision.BatchAnnotateImagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, "TEXT_DETECTION", req.Requests[0].Features[0].Type)
		assert.Equal(t, "aW1n", req.Requests[0].Image.Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"SAVE 20%"},{"description":"SAVE"}]}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	rec, err := NewVisionRecognizer(ctx, option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	text, err := rec.Recognize(ctx, []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "SAVE 20%", text)
}

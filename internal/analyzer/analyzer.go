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


// Package analyzer runs the per-email pipeline: normalization,
// classification, footer and offer extraction, optional image OCR and
// strict mode, then the record for the final category. Emails are
// processed one at a time and share no state.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/bcem/mailsift/internal/classify"
	"github.com/bcem/mailsift/internal/extract"
	"github.com/bcem/mailsift/internal/footer"
	"github.com/bcem/mailsift/internal/models"
	"github.com/bcem/mailsift/internal/patterns"
	"github.com/bcem/mailsift/internal/textnorm"
)

// Rules applied after the resolver. They are persisted alongside the
// classify rule names.
const (
	RuleImageOffer = "image-offer"
	RuleStrictMode = "strict-demotion"
)

// ImageMatchTerm is the matched term recorded when image content turns a
// Normal email into a Coupon.
const ImageMatchTerm = "[IMAGE] Promotional offer detected"

// recategorizeKeywords are the image keywords strong enough to mark an
// otherwise plain email as a coupon.
var recategorizeKeywords = []string{"sale", "clearance", "limited time", "free shipping"}

// ImageScanner recognizes offers in the images of an HTML email.
type ImageScanner interface {
	Scan(ctx context.Context, doc string) (*models.ImageScan, error)
}

// Options tunes a run.
type Options struct {
	// StrictMode demotes Membership, Offer, GiftCard and Coupon emails from
	// non-commercial senders to Normal.
	StrictMode bool
	// OCR enables image scanning when the text leaves an offer incomplete.
	OCR bool
	// FooterWindow is the number of trailing body characters treated as
	// the footer. Zero means footer.DefaultWindow.
	FooterWindow int
}

// Analyzer classifies emails and builds their records.
type Analyzer struct {
	classifier *classify.Classifier
	scanner    ImageScanner
	opts       Options
	now        func() time.Time
}

// New creates an analyzer. scanner may be nil, which disables OCR
// regardless of opts.
func New(scanner ImageScanner, opts Options) *Analyzer {
	if opts.FooterWindow <= 0 {
		opts.FooterWindow = footer.DefaultWindow
	}
	return &Analyzer{
		classifier: classify.New(),
		scanner:    scanner,
		opts:       opts,
		now:        time.Now,
	}
}

// Run analyzes emails in order and collects them into a report under a
// fresh run ID.
func (a *Analyzer) Run(ctx context.Context, account string, emails []models.Email) *models.Report {
	return a.RunWithID(ctx, "", account, emails)
}

// RunWithID is Run with a caller-chosen run ID. An empty runID gets a
// fresh UUID.
func (a *Analyzer) RunWithID(ctx context.Context, runID, account string, emails []models.Email) *models.Report {
	if runID == "" {
		runID = uuid.NewString()
	}
	report := &models.Report{
		RunID:       runID,
		Account:     account,
		GeneratedAt: a.now().UTC(),
	}
	for _, email := range emails {
		report.Add(a.Analyze(ctx, email))
	}

	counts := report.Counts()
	slog.Info("analysis complete",
		"run_id", report.RunID,
		"account", account,
		"emails", report.Total(),
		"membership", counts[models.CategoryMembership],
		"offer", counts[models.CategoryOffer],
		"giftcard", counts[models.CategoryGiftCard],
		"coupon", counts[models.CategoryCoupon],
		"excluded", counts[models.CategoryExcluded],
	)
	return report
}

// Analyze runs the pipeline for a single email. It never fails: an image
// scan error is recorded on the result and the email keeps its text-only
// data.
func (a *Analyzer) Analyze(ctx context.Context, email models.Email) models.AnalyzedEmail {
	email.Sender = textnorm.Normalize(email.Sender)
	email.Subject = textnorm.Normalize(email.Subject)
	email.Body = textnorm.Normalize(email.Body)

	out := models.AnalyzedEmail{
		Email:          email,
		Classification: a.classifier.Classify(email),
	}
	if out.Category() == models.CategoryExcluded {
		return out
	}

	data := footer.Analyze(email.Body, email.Subject, a.opts.FooterWindow)

	var scan *models.ImageScan
	if a.wantsImages(email, out.Category(), data) {
		s, err := a.scanImages(ctx, email.HTML)
		if err != nil {
			slog.Warn("image scan failed", "id", email.ID, "error", err)
			out.ImageError = err.Error()
		} else {
			scan = s
			out.ImageOffers = s.Offers
		}
	}

	c := &out.Classification
	if c.Category == models.CategoryNormal && c.Rule == classify.RuleDefault && scan != nil &&
		lo.SomeBy(scan.Offers, func(o models.ImageOffer) bool { return o.HasPromotion(recategorizeKeywords...) }) {
		c.Category = models.CategoryCoupon
		c.MatchedTerms = []string{ImageMatchTerm}
		c.Rule = RuleImageOffer
	}

	if a.opts.StrictMode && !c.IsShoppingDomain && demotable(c.Category) {
		slog.Debug("strict mode demotion", "id", email.ID, "from", c.Category)
		c.Category = models.CategoryNormal
		c.Rule = RuleStrictMode
	}

	buildRecord(&out, data, scan)
	return out
}

// wantsImages reports whether an image scan could add anything: the
// category can use image data and the text left the offer incomplete.
func (a *Analyzer) wantsImages(email models.Email, category models.Category, data footer.Data) bool {
	if !a.opts.OCR || a.scanner == nil || email.HTML == "" {
		return false
	}
	switch category {
	case models.CategoryCoupon, models.CategoryGiftCard, models.CategoryNormal:
	default:
		return false
	}
	o := data.Offers
	complete := (len(o.DiscountDetails) > 0 || len(o.Discounts) > 0) &&
		len(o.PromoCodes) > 0 &&
		o.ExpiryDate != "" &&
		data.StoreName != ""
	return !complete
}

// scanImages calls the scanner, turning a panic into an error so one bad
// email cannot end the run.
func (a *Analyzer) scanImages(ctx context.Context, doc string) (scan *models.ImageScan, err error) {
	defer func() {
		if r := recover(); r != nil {
			scan, err = nil, fmt.Errorf("image scanner panic: %v", r)
		}
	}()
	scan, err = a.scanner.Scan(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}
	if scan == nil {
		scan = &models.ImageScan{}
	}
	return scan, nil
}

func demotable(c models.Category) bool {
	switch c {
	case models.CategoryMembership, models.CategoryOffer, models.CategoryGiftCard, models.CategoryCoupon:
		return true
	}
	return false
}

// buildRecord attaches the record for the email's final category.
func buildRecord(out *models.AnalyzedEmail, data footer.Data, scan *models.ImageScan) {
	e := out.Email
	switch out.Category() {
	case models.CategoryMembership:
		start, expiry := extract.MembershipDates(e.Body)
		if start == "" {
			start = e.Date
		}
		out.Membership = &models.MembershipRecord{
			Name:       extract.MembershipName(e.Subject, e.Body).Value,
			StartDate:  start,
			ExpiryDate: expiry,
			Benefits:   data.MembershipBenefits,
			FromSender: e.Sender,
		}
	case models.CategoryOffer:
		out.Card = &models.CardRecord{
			Name:       extract.CardName(e.Subject, e.Body).Value,
			FromSender: e.Sender,
			Date:       e.Date,
		}
	case models.CategoryGiftCard:
		rec := extract.GiftCardDetails(e.Subject, e.Body)
		rec.StoreName, _ = storeName(e, data, scan)
		out.GiftCard = &rec
	case models.CategoryCoupon:
		out.Coupon = couponRecord(e, data, scan)
	}
}

// storeName picks the footer store, then the first image store, then the
// company extractor. The source reports which one answered.
func storeName(e models.Email, data footer.Data, scan *models.ImageScan) (string, models.Source) {
	if data.StoreName != "" {
		return data.StoreName, models.SourceFooter
	}
	if scan != nil && len(scan.StoreNames) > 0 {
		return scan.StoreNames[0], models.SourceOCR
	}
	return extract.CompanyName(e.Sender, e.Subject, e.Body).Value, models.SourceBody
}

// couponRecord merges text and image data. Image values only fill fields
// the text left empty; codes fall back to a plain body scan last.
func couponRecord(e models.Email, data footer.Data, scan *models.ImageScan) *models.CouponRecord {
	o := data.Offers
	rec := &models.CouponRecord{
		Description:     extract.CouponDescription(e.Subject),
		DiscountDetails: o.DiscountDetails,
		CouponCodes:     o.PromoCodes,
		ExpiryDate:      o.ExpiryDate,
		ValidityTerms:   o.ValidityTerms,
		PointsRewards:   o.PointsRewards,
		FreeShipping:    o.FreeShipping,
	}
	if len(rec.DiscountDetails) == 0 {
		rec.DiscountDetails = o.Discounts
	}

	var store models.Source
	rec.StoreName, store = storeName(e, data, scan)
	fromFooter := store == models.SourceFooter ||
		len(rec.DiscountDetails) > 0 || len(rec.CouponCodes) > 0 ||
		rec.ExpiryDate != "" || rec.FreeShipping
	fromImage := store == models.SourceOCR

	if scan != nil {
		if len(rec.DiscountDetails) == 0 {
			rec.DiscountDetails = imageValues(scan.Offers, func(o models.ImageOffer) string { return o.Discount })
			fromImage = fromImage || len(rec.DiscountDetails) > 0
		}
		if len(rec.CouponCodes) == 0 {
			rec.CouponCodes = imageValues(scan.Offers, func(o models.ImageOffer) string { return o.PromoCode })
			fromImage = fromImage || len(rec.CouponCodes) > 0
		}
		if rec.ExpiryDate == "" {
			if dates := imageValues(scan.Offers, func(o models.ImageOffer) string { return o.ExpiryDate }); len(dates) > 0 {
				rec.ExpiryDate = dates[0]
				fromImage = true
			}
		}
	}
	if len(rec.CouponCodes) == 0 {
		rec.CouponCodes = patterns.CouponCodes(e.Body)
	}

	switch {
	case fromFooter:
		rec.Source = models.SourceFooter
	case fromImage:
		rec.Source = models.SourceOCR
	default:
		rec.Source = models.SourceBody
	}
	return rec
}

func imageValues(offers []models.ImageOffer, field func(models.ImageOffer) string) []string {
	return lo.Uniq(lo.FilterMap(offers, func(o models.ImageOffer, _ int) (string, bool) {
		v := field(o)
		return v, v != ""
	}))
}

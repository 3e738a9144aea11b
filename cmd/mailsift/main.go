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


// mailsift analyzes a Gmail inbox from the command line.
//
// It fetches recent messages, sorts them into Membership, Offer, GiftCard,
// Coupon, Excluded and Normal, extracts the details of each and prints a
// report. The report can also be written as CSV or JSON, uploaded to S3,
// or persisted to Postgres and the Redis results queue.
//
// Usage:
//
//	mailsift --authorize            # one-time OAuth consent
//	mailsift -n 100 -d 30 --stats
//	mailsift --json report.json --export report.csv --upload
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/config"
	"github.com/bcem/mailsift/internal/export"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/ocr"
	"github.com/bcem/mailsift/internal/queue"
	"github.com/bcem/mailsift/internal/store"
)

type options struct {
	NumEmails int    `short:"n" long:"num-emails" description:"Number of inbox emails to analyze (default: gmail.max_results, 50)"`
	Days      int    `short:"d" long:"days" description:"Only analyze emails newer than this many days"`
	Verbose   bool   `short:"v" long:"verbose" description:"Show matched terms and debug logging"`
	Export    string `long:"export" value-name:"FILE" description:"Write the report as CSV"`
	JSON      string `long:"json" value-name:"FILE" description:"Write the report as JSON"`
	NoOCR     bool   `long:"no-ocr" description:"Skip text recognition on email images"`
	Stats     bool   `long:"stats" description:"Show unique subscription sender counts"`
	Strict    bool   `long:"strict" description:"Demote commercial categories from non-commercial senders"`
	Upload    bool   `long:"upload" description:"Upload the JSON and CSV reports to S3"`
	Persist   bool   `long:"persist" description:"Save results to Postgres and publish them to Redis when configured"`
	Authorize bool   `long:"authorize" description:"Run the Gmail OAuth consent flow and save the token"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Gmail inbox analyzer"
	if _, err := parser.Parse(); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	setupLogging(opts.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			slog.Error("gmail is not authorized yet, run with --authorize first", "error", err)
		} else {
			slog.Error("mailsift failed", "error", err)
		}
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.Authorize {
		return authorize(ctx, cfg, os.Stdin, os.Stdout)
	}
	if err := cfg.CheckGmail(); err != nil {
		return err
	}

	httpClient, err := gmail.HTTPClient(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
	if err != nil {
		return fmt.Errorf("gmail auth: %w", err)
	}
	client, err := gmail.NewClient(ctx, cfg.Gmail.UserID, option.WithHTTPClient(httpClient))
	if err != nil {
		return err
	}
	account, _, err := client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("read gmail profile: %w", err)
	}

	useOCR := cfg.Analysis.OCREnabled && !opts.NoOCR
	a := analyzer.New(newScanner(ctx, cfg, useOCR), analyzer.Options{
		StrictMode:   cfg.Analysis.StrictMode || opts.Strict,
		OCR:          useOCR,
		FooterWindow: cfg.Analysis.FooterWindow,
	})

	runnerCfg := backfill.RunnerConfig{Source: client, Analyzer: a}
	if opts.Persist {
		closeSinks, err := attachSinks(ctx, cfg, &runnerCfg)
		if err != nil {
			return err
		}
		defer closeSinks()
	}

	maxResults := opts.NumEmails
	if maxResults <= 0 {
		maxResults = cfg.Gmail.MaxResults
	}
	days := opts.Days
	if days <= 0 {
		days = cfg.Gmail.Days
	}

	result, err := backfill.NewRunner(runnerCfg).Run(ctx, backfill.Request{
		Account:    account,
		MaxResults: maxResults,
		Days:       days,
	})
	if err != nil {
		return err
	}

	export.PrintReport(os.Stdout, result.Report, export.ConsoleOptions{
		Verbose: opts.Verbose,
		Stats:   opts.Stats,
	})
	return writeOutputs(ctx, cfg, opts, result.Report)
}

// newScanner builds the image scanner, or returns nil when OCR is off or
// the Vision client cannot be created.
func newScanner(ctx context.Context, cfg *config.Config, enabled bool) analyzer.ImageScanner {
	if !enabled {
		return nil
	}
	var visionOpts []option.ClientOption
	if cfg.OCR.CredentialsFile != "" {
		visionOpts = append(visionOpts, option.WithCredentialsFile(cfg.OCR.CredentialsFile))
	}
	rec, err := ocr.NewVisionRecognizer(ctx, visionOpts...)
	if err != nil {
		slog.Warn("image text recognition unavailable, continuing without it", "error", err)
		return nil
	}
	return ocr.NewScanner(&http.Client{Timeout: cfg.OCR.Timeout}, rec, cfg.Analysis.MaxImages)
}

// attachSinks connects whichever of Postgres and Redis are configured and
// adds them to rc. The returned func closes the connections.
func attachSinks(ctx context.Context, cfg *config.Config, rc *backfill.RunnerConfig) (func(), error) {
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		closers = append(closers, pool.Close)
		st, err := store.NewStore(ctx, pool)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("initialise result store: %w", err)
		}
		rc.Store = st
		slog.Debug("persisting results to postgres")
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		closers = append(closers, func() { _ = rdb.Close() })
		pub := queue.NewPublisher(rdb, cfg.ResultsQueue)
		if err := pub.Ping(ctx); err != nil {
			closeAll()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		rc.Publisher = pub
		slog.Debug("publishing results to redis", "queue", cfg.ResultsQueue)
	}

	if rc.Store == nil && rc.Publisher == nil {
		slog.Warn("--persist given but neither DATABASE_URL nor REDIS_URL is set")
	}
	return closeAll, nil
}

// authorize walks the user through the installed-app consent flow and
// saves the resulting token.
func authorize(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	oc, err := gmail.OAuthConfig(cfg.Gmail.CredentialsFile)
	if err != nil {
		return err
	}
	url := oc.AuthCodeURL("mailsift", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(out, "Open this link in your browser and approve read-only access:\n\n  %s\n\nPaste the authorization code: ", url)

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("no authorization code entered")
	}
	if err := gmail.Exchange(ctx, oc, code, cfg.Gmail.TokenFile); err != nil {
		return err
	}
	slog.Info("gmail token saved", "path", cfg.Gmail.TokenFile)
	return nil
}

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


// mailsift backfill
//
// Headless batch job that analyzes a mailbox's recent history and seeds
// Postgres and the Redis results queue. Messages already claimed in the
// dedup window are skipped, so the job is safe to re-run from cron.
//
// Usage:
//
//	go run ./cmd/backfill/ [--days 7] [--max 500] [--upload]
package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/config"
	"github.com/bcem/mailsift/internal/dedup"
	"github.com/bcem/mailsift/internal/export"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/ocr"
	"github.com/bcem/mailsift/internal/queue"
	"github.com/bcem/mailsift/internal/store"
)

type options struct {
	Days   int  `long:"days" default:"7" description:"Lookback in days (0 for the whole inbox)"`
	Max    int  `long:"max" default:"500" description:"Maximum number of messages to analyze"`
	Upload bool `long:"upload" description:"Upload the run's JSON report to S3"`
}

func main() {
	// Structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// --- CLI Flags ---
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	slog.Info("starting mailbox backfill", "days", opts.Days, "max", opts.Max)

	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.CheckGmail(); err != nil {
		slog.Error("gmail is not ready", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Redis ---
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	publisher := queue.NewPublisher(rdb, cfg.ResultsQueue)
	if err := publisher.Ping(ctx); err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to Redis")

	// --- Connect to PostgreSQL ---
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create Postgres pool", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	results, err := store.NewStore(ctx, pgPool)
	if err != nil {
		slog.Error("failed to initialise result store", "error", err)
		os.Exit(1)
	}

	// --- Gmail ---
	httpClient, err := gmail.HTTPClient(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
	if err != nil {
		slog.Error("failed to authorize gmail", "error", err)
		os.Exit(1)
	}
	mail, err := gmail.NewClient(ctx, cfg.Gmail.UserID, option.WithHTTPClient(httpClient))
	if err != nil {
		slog.Error("failed to create gmail client", "error", err)
		os.Exit(1)
	}
	account, _, err := mail.Profile(ctx)
	if err != nil {
		slog.Error("failed to read gmail profile", "error", err)
		os.Exit(1)
	}

	// --- Run Backfill ---
	var scanner analyzer.ImageScanner
	if cfg.Analysis.OCREnabled {
		var visionOpts []option.ClientOption
		if cfg.OCR.CredentialsFile != "" {
			visionOpts = append(visionOpts, option.WithCredentialsFile(cfg.OCR.CredentialsFile))
		}
		if rec, err := ocr.NewVisionRecognizer(ctx, visionOpts...); err != nil {
			slog.Warn("image text recognition disabled", "error", err)
		} else {
			scanner = ocr.NewScanner(&http.Client{Timeout: cfg.OCR.Timeout}, rec, cfg.Analysis.MaxImages)
		}
	}

	runner := backfill.NewRunner(backfill.RunnerConfig{
		Source: mail,
		Analyzer: analyzer.New(scanner, analyzer.Options{
			StrictMode:   cfg.Analysis.StrictMode,
			OCR:          scanner != nil,
			FooterWindow: cfg.Analysis.FooterWindow,
		}),
		Dedup:     dedup.NewFilter(rdb, cfg.DedupTTL),
		Store:     results,
		Publisher: publisher,
	})

	result, err := runner.Run(ctx, backfill.Request{
		Account:    account,
		MaxResults: opts.Max,
		Days:       opts.Days,
	})
	if err != nil {
		slog.Error("backfill failed", "error", err)
		os.Exit(1)
	}

	// --- Summary ---
	counts := result.Report.Counts()
	slog.Info("backfill complete",
		"account", result.Account,
		"run_id", result.RunID,
		"listed", result.Listed,
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"errors", result.Errors,
		"saved", result.Saved,
		"published", result.Published,
		"counts", counts,
		"elapsed", result.Elapsed,
	)

	if opts.Upload {
		uploader, err := export.NewS3Uploader(ctx, cfg.Export.S3Bucket, cfg.Export.S3Region, cfg.Export.S3Prefix)
		if err != nil {
			slog.Error("s3 upload unavailable", "error", err)
			os.Exit(1)
		}
		var buf bytes.Buffer
		if err := export.WriteJSON(&buf, result.Report); err != nil {
			slog.Error("render report failed", "error", err)
			os.Exit(1)
		}
		key, err := uploader.Upload(ctx, account, result.RunID, "json", buf.Bytes())
		if err != nil {
			slog.Error("report upload failed", "error", err)
			os.Exit(1)
		}
		slog.Info("report uploaded", "bucket", cfg.Export.S3Bucket, "key", key)
	}

	if result.Errors > 0 {
		os.Exit(1)
	}
}

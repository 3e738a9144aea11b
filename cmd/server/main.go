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


// mailsift server
//
// Long-running service for one Gmail mailbox. It:
//  1. Loads configuration from config.yaml and the environment
//  2. Connects to PostgreSQL and Redis
//  3. Authorizes against Gmail with the saved OAuth token
//  4. Serves the dashboard API (results, analyze trigger, health)
//  5. Runs a periodic history sync that analyzes newly arrived mail
//  6. Optionally registers a Gmail push watch and syncs on each push
//  7. Handles graceful shutdown on SIGTERM/SIGINT
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/bcem/mailsift/internal/analyzer"
	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/config"
	"github.com/bcem/mailsift/internal/dashboard"
	"github.com/bcem/mailsift/internal/dedup"
	"github.com/bcem/mailsift/internal/delta"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/ocr"
	"github.com/bcem/mailsift/internal/queue"
	"github.com/bcem/mailsift/internal/store"
	"github.com/bcem/mailsift/internal/subscription"
	"github.com/bcem/mailsift/internal/webhook"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("starting mailsift server",
		"port", cfg.Port,
		"poll_interval", cfg.PollInterval,
		"strict_mode", cfg.Analysis.StrictMode,
		"ocr", cfg.Analysis.OCREnabled,
	)

	if cfg.DatabaseURL == "" || cfg.RedisURL == "" {
		slog.Error("DATABASE_URL and REDIS_URL are required")
		os.Exit(1)
	}
	if err := cfg.CheckGmail(); err != nil {
		slog.Error("gmail is not ready, run `mailsift --authorize` first", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Connect to PostgreSQL ---
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create Postgres pool", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	if err := pgPool.Ping(ctx); err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to PostgreSQL")

	results, err := store.NewStore(ctx, pgPool)
	if err != nil {
		slog.Error("failed to initialise result store", "error", err)
		os.Exit(1)
	}

	// --- Connect to Redis ---
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(opt)

	publisher := queue.NewPublisher(rdb, cfg.ResultsQueue)
	if err := publisher.Ping(ctx); err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to Redis")

	filter := dedup.NewFilter(rdb, cfg.DedupTTL)

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
	slog.Info("gmail mailbox ready", "account", account)

	// --- Analysis ---
	scanner := newScanner(ctx, cfg)
	newAnalyzer := func(strict bool) *analyzer.Analyzer {
		return analyzer.New(scanner, analyzer.Options{
			StrictMode:   strict,
			OCR:          scanner != nil,
			FooterWindow: cfg.Analysis.FooterWindow,
		})
	}

	// Sync runs claim messages through the dedup filter so a message is
	// analyzed once per TTL window.
	syncRunner := backfill.NewRunner(backfill.RunnerConfig{
		Source:    mail,
		Analyzer:  newAnalyzer(cfg.Analysis.StrictMode),
		Dedup:     filter,
		Store:     results,
		Publisher: publisher,
	})

	// --- History Syncer ---
	syncer := delta.NewSyncer(delta.SyncerConfig{
		Source:       mail,
		Cursors:      results,
		Processor:    syncRunner,
		SyncInterval: cfg.PollInterval,
	})

	// --- Dashboard ---
	// Runs requested through the API re-analyze whatever they list; the
	// store upserts by message, so no dedup claim is taken.
	runAnalysis := func(ctx context.Context, req dashboard.AnalyzeRequest) (*backfill.Result, error) {
		runner := backfill.NewRunner(backfill.RunnerConfig{
			Source:    mail,
			Analyzer:  newAnalyzer(cfg.Analysis.StrictMode || req.StrictMode),
			Store:     results,
			Publisher: publisher,
		})
		return runner.Run(ctx, backfill.Request{
			RunID:      req.RunID,
			Account:    req.Account,
			MaxResults: req.MaxResults,
			Days:       req.Days,
		})
	}
	health := func(ctx context.Context) error {
		if err := publisher.Ping(ctx); err != nil {
			return errors.New("redis unhealthy")
		}
		if err := pgPool.Ping(ctx); err != nil {
			return errors.New("postgres unhealthy")
		}
		return nil
	}

	// --- Gmail Push (optional) ---
	var push http.Handler
	var watches *subscription.Manager
	if cfg.Gmail.PushTopic != "" {
		push = http.HandlerFunc(webhook.NewHandler(ctx, syncer, cfg.Gmail.PushToken, account).ServePush)
		watches = subscription.NewManager(subscription.ManagerConfig{
			Watcher: mail,
			Account: account,
			Topic:   cfg.Gmail.PushTopic,
		})
	}

	handler := dashboard.NewHandler(ctx, dashboard.Config{
		Store:          results,
		Run:            runAnalysis,
		Health:         health,
		Push:           push,
		DefaultAccount: account,
	})
	ready, done, err := dashboard.Serve(ctx, cfg.Port, handler.Router(cfg.CORSOrigins))
	if err != nil {
		slog.Error("failed to start dashboard server", "error", err)
		os.Exit(1)
	}
	<-ready
	slog.Info("dashboard server ready")

	// The push endpoint is live, so Gmail may start publishing now.
	if watches != nil {
		if err := watches.Start(ctx); err != nil {
			slog.Error("failed to register gmail watch, relying on polling", "error", err)
			watches = nil
		}
	}

	// An initial sync records the history cursor right away, so mail that
	// arrives before the first tick is not missed.
	if _, err := syncer.SyncMailbox(ctx, account); err != nil {
		slog.Warn("initial sync failed", "account", account, "error", err)
	}
	syncer.StartPeriodicSync(ctx, []string{account})

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh

	slog.Info("received shutdown signal", "signal", sig)
	cancel() // Stop all background goroutines and the HTTP server

	syncer.Stop()
	if watches != nil {
		watches.Stop()
	}
	<-done

	if err := rdb.Close(); err != nil {
		slog.Warn("redis close error", "error", err)
	}
	slog.Info("mailsift server stopped")
}

// newScanner builds the image scanner, or returns nil when OCR is disabled
// or Vision cannot be reached.
func newScanner(ctx context.Context, cfg *config.Config) analyzer.ImageScanner {
	if !cfg.Analysis.OCREnabled {
		return nil
	}
	var opts []option.ClientOption
	if cfg.OCR.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.OCR.CredentialsFile))
	}
	rec, err := ocr.NewVisionRecognizer(ctx, opts...)
	if err != nil {
		slog.Warn("image text recognition disabled", "error", err)
		return nil
	}
	return ocr.NewScanner(&http.Client{Timeout: cfg.OCR.Timeout}, rec, cfg.Analysis.MaxImages)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

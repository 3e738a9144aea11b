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


// Package dashboard serves the JSON API behind the results dashboard:
// stored analysis results per account and category, and a trigger that
// starts a mailbox run in the background.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/bcem/mailsift/internal/backfill"
	"github.com/bcem/mailsift/internal/export"
	"github.com/bcem/mailsift/internal/models"
)

const (
	defaultListLimit  = 100
	maxListLimit      = 1000
	defaultMaxResults = 50
	maxMaxResults     = 500
)

// ResultStore reads persisted results. Implemented by store.Store.
type ResultStore interface {
	Report(ctx context.Context, account string) (*models.Report, error)
	ListByCategory(ctx context.Context, account string, category models.Category, limit int) ([]models.AnalyzedEmail, error)
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	RunID      string `json:"-"`
	Account    string `json:"account,omitempty"`
	MaxResults int    `json:"max_results"`
	Days       int    `json:"days"`
	StrictMode bool   `json:"strict_mode"`
}

// RunFunc performs one analysis run to completion.
type RunFunc func(ctx context.Context, req AnalyzeRequest) (*backfill.Result, error)

// Config holds the handler's dependencies. Health and Push are optional.
type Config struct {
	Store          ResultStore
	Run            RunFunc
	Health         func(ctx context.Context) error
	// Push receives Gmail push notifications at POST /webhook/gmail.
	Push           http.Handler
	DefaultAccount string
}

// Handler serves the dashboard API.
type Handler struct {
	store          ResultStore
	run            RunFunc
	health         func(ctx context.Context) error
	push           http.Handler
	defaultAccount string
	runs           *runTracker

	// baseCtx bounds background runs; it is cancelled on shutdown.
	baseCtx context.Context
}

// NewHandler creates a handler. Background runs started through it stop
// when ctx is cancelled.
func NewHandler(ctx context.Context, cfg Config) *Handler {
	return &Handler{
		store:          cfg.Store,
		run:            cfg.Run,
		health:         cfg.Health,
		push:           cfg.Push,
		defaultAccount: cfg.DefaultAccount,
		runs:           newRunTracker(),
		baseCtx:        ctx,
	}
}

// Router builds the chi router with CORS for the given origins.
func (h *Handler) Router(origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.serveHealth)
	if h.push != nil {
		r.Method(http.MethodPost, "/webhook/gmail", h.push)
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/results", h.serveResults)
		r.Get("/results/{category}", h.serveCategory)
		r.Post("/analyze", h.serveAnalyze)
		r.Get("/runs/{id}", h.serveRun)
	})
	return r
}

func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) serveResults(w http.ResponseWriter, r *http.Request) {
	account := h.account(r.URL.Query().Get("account"))
	if account == "" {
		writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	report, err := h.store.Report(r.Context(), account)
	if err != nil {
		slog.Error("load report failed", "account", account, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	writeJSON(w, http.StatusOK, export.BuildView(report))
}

func (h *Handler) serveCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	account := h.account(r.URL.Query().Get("account"))
	if account == "" {
		writeError(w, http.StatusBadRequest, "account is required")
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.store.ListByCategory(r.Context(), account, category, limit)
	if err != nil {
		slog.Error("list results failed", "account", account, "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if results == nil {
		results = []models.AnalyzedEmail{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account":  account,
		"category": category,
		"count":    len(results),
		"results":  results,
	})
}

func (h *Handler) serveAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}
	if req.MaxResults > maxMaxResults {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("max_results must be at most %d", maxMaxResults))
		return
	}
	if req.Days < 0 {
		writeError(w, http.StatusBadRequest, "days must not be negative")
		return
	}
	req.Account = h.account(req.Account)
	req.RunID = uuid.NewString()

	status := h.runs.start(req)
	go h.execute(req)

	slog.Info("analysis run accepted",
		"run_id", req.RunID,
		"account", req.Account,
		"max_results", req.MaxResults,
		"days", req.Days,
		"strict_mode", req.StrictMode,
	)
	writeJSON(w, http.StatusAccepted, status)
}

func (h *Handler) execute(req AnalyzeRequest) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("analysis run panicked", "run_id", req.RunID, "panic", p)
			h.runs.finish(req.RunID, nil, fmt.Errorf("panic: %v", p))
		}
	}()
	res, err := h.run(h.baseCtx, req)
	if err != nil {
		slog.Error("analysis run failed", "run_id", req.RunID, "error", err)
	}
	h.runs.finish(req.RunID, res, err)
}

func (h *Handler) serveRun(w http.ResponseWriter, r *http.Request) {
	status, ok := h.runs.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) account(requested string) string {
	if requested != "" {
		return requested
	}
	return h.defaultAccount
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	return min(n, maxListLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve starts the dashboard server on port. It binds the port before
// returning and signals readiness on the returned channel. The server
// shuts down gracefully when ctx is cancelled; done is closed once it has
// stopped.
func Serve(ctx context.Context, port int, handler http.Handler) (ready, done <-chan struct{}, err error) {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, nil, fmt.Errorf("bind dashboard port %d: %w", port, err)
	}

	readyCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		<-ctx.Done()
		slog.Info("dashboard server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("dashboard shutdown error", "error", err)
		}
	}()

	go func() {
		defer close(doneCh)
		slog.Info("dashboard server listening", "addr", ln.Addr().String())
		close(readyCh)
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("dashboard server error", "error", err)
		}
	}()

	return readyCh, doneCh, nil
}

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


// Package config loads configuration from config.yaml and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken means the Gmail OAuth token has not been created yet.
var ErrMissingToken = errors.New("gmail token file not found")

// GmailConfig holds the mailbox source settings.
type GmailConfig struct {
	CredentialsFile string
	TokenFile       string
	UserID          string
	MaxResults      int
	Days            int
	// PushTopic enables push notifications through Cloud Pub/Sub when set.
	PushTopic string
	// PushToken must match the token query parameter on push requests.
	PushToken string
}

// AnalysisConfig tunes the per-email pipeline.
type AnalysisConfig struct {
	StrictMode   bool
	OCREnabled   bool
	FooterWindow int
	MaxImages    int
}

// OCRConfig holds the Vision API settings.
type OCRConfig struct {
	CredentialsFile string
	Timeout         time.Duration
}

// ExportConfig holds report output settings.
type ExportConfig struct {
	Dir      string
	S3Bucket string
	S3Region string
	S3Prefix string
}

// Config holds all configuration for mailsift.
type Config struct {
	Gmail    GmailConfig
	Analysis AnalysisConfig
	OCR      OCRConfig
	Export   ExportConfig

	// Redis
	RedisURL     string
	ResultsQueue string
	DedupTTL     time.Duration

	// Postgres
	DatabaseURL string

	// Server
	Port         int
	PollInterval time.Duration
	CORSOrigins  []string
	LogLevel     string
}

// rawConfig mirrors the YAML structure for unmarshalling.
type rawConfig struct {
	Gmail struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
		UserID          string `yaml:"user_id"`
		MaxResults      int    `yaml:"max_results"`
		Days            int    `yaml:"days"`
		PushTopic       string `yaml:"push_topic"`
		PushToken       string `yaml:"push_token"`
	} `yaml:"gmail"`
	Analysis struct {
		StrictMode   *bool `yaml:"strict_mode"`
		OCREnabled   *bool `yaml:"ocr_enabled"`
		FooterWindow int   `yaml:"footer_window"`
		MaxImages    int   `yaml:"max_images"`
	} `yaml:"analysis"`
	OCR struct {
		CredentialsFile string `yaml:"credentials_file"`
		Timeout         string `yaml:"timeout"`
	} `yaml:"ocr"`
	Redis struct {
		URL    string `yaml:"url"`
		Queues struct {
			Results string `yaml:"results"`
		} `yaml:"queues"`
		DedupTTL string `yaml:"dedup_ttl"`
	} `yaml:"redis"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Export struct {
		Dir string `yaml:"dir"`
		S3  struct {
			Bucket string `yaml:"bucket"`
			Region string `yaml:"region"`
			Prefix string `yaml:"prefix"`
		} `yaml:"s3"`
	} `yaml:"export"`
	Server struct {
		Port         int      `yaml:"port"`
		PollInterval string   `yaml:"poll_interval"`
		CORSOrigins  []string `yaml:"cors_origins"`
	} `yaml:"server"`
	LogLevel string `yaml:"log_level"`
}

// Load reads .env, then the YAML file named by CONFIG_PATH (with env var
// expansion), and fills anything the file leaves unset from environment
// variables and defaults. Without CONFIG_PATH a missing config.yaml is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "config.yaml"
	}

	var raw rawConfig
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		// Expand ${VAR} references in the YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No file; environment and defaults apply.
	default:
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	cfg := &Config{
		Gmail: GmailConfig{
			CredentialsFile: firstNonEmpty(raw.Gmail.CredentialsFile, envOrDefault("GMAIL_CREDENTIALS_FILE", "credentials.json")),
			TokenFile:       firstNonEmpty(raw.Gmail.TokenFile, envOrDefault("GMAIL_TOKEN_FILE", "token.json")),
			UserID:          firstNonEmpty(raw.Gmail.UserID, envOrDefault("GMAIL_USER_ID", "me")),
			MaxResults:      firstPositive(raw.Gmail.MaxResults, envOrDefaultInt("GMAIL_MAX_RESULTS", 50)),
			Days:            firstPositive(raw.Gmail.Days, envOrDefaultInt("GMAIL_DAYS", 0)),
			PushTopic:       firstNonEmpty(raw.Gmail.PushTopic, envOrDefault("GMAIL_PUSH_TOPIC", "")),
			PushToken:       firstNonEmpty(raw.Gmail.PushToken, envOrDefault("GMAIL_PUSH_TOKEN", "")),
		},
		Analysis: AnalysisConfig{
			StrictMode:   boolOr(raw.Analysis.StrictMode, envOrDefaultBool("STRICT_MODE", false)),
			OCREnabled:   boolOr(raw.Analysis.OCREnabled, envOrDefaultBool("OCR_ENABLED", true)),
			FooterWindow: firstPositive(raw.Analysis.FooterWindow, envOrDefaultInt("FOOTER_WINDOW", 2000)),
			MaxImages:    firstPositive(raw.Analysis.MaxImages, envOrDefaultInt("OCR_MAX_IMAGES", 10)),
		},
		OCR: OCRConfig{
			CredentialsFile: firstNonEmpty(raw.OCR.CredentialsFile, envOrDefault("GOOGLE_APPLICATION_CREDENTIALS", "")),
			Timeout:         durationOr(raw.OCR.Timeout, envOrDefaultDuration("OCR_TIMEOUT", 30*time.Second)),
		},
		Export: ExportConfig{
			Dir:      firstNonEmpty(raw.Export.Dir, envOrDefault("EXPORT_DIR", ".")),
			S3Bucket: firstNonEmpty(raw.Export.S3.Bucket, envOrDefault("S3_BUCKET", "")),
			S3Region: firstNonEmpty(raw.Export.S3.Region, envOrDefault("AWS_REGION", "us-east-1")),
			S3Prefix: firstNonEmpty(raw.Export.S3.Prefix, envOrDefault("S3_PREFIX", "mailsift")),
		},
		RedisURL:     firstNonEmpty(raw.Redis.URL, envOrDefault("REDIS_URL", "")),
		ResultsQueue: firstNonEmpty(raw.Redis.Queues.Results, envOrDefault("RESULTS_QUEUE", "mailsift:results")),
		DedupTTL:     durationOr(raw.Redis.DedupTTL, envOrDefaultDuration("DEDUP_TTL", 24*time.Hour)),
		DatabaseURL:  firstNonEmpty(raw.Database.URL, envOrDefault("DATABASE_URL", "")),
		Port:         firstPositive(raw.Server.Port, envOrDefaultInt("PORT", 8080)),
		PollInterval: durationOr(raw.Server.PollInterval, envOrDefaultDuration("POLL_INTERVAL", 15*time.Minute)),
		CORSOrigins:  raw.Server.CORSOrigins,
		LogLevel:     firstNonEmpty(raw.LogLevel, envOrDefault("LOG_LEVEL", "info")),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = splitList(envOrDefault("CORS_ORIGINS", "*"))
	}

	return cfg, nil
}

// CheckGmail verifies the OAuth files exist. A missing token wraps
// ErrMissingToken so callers can tell the user to authorize first.
func (c *Config) CheckGmail() error {
	if _, err := os.Stat(c.Gmail.CredentialsFile); err != nil {
		return fmt.Errorf("gmail credentials %s: %w", c.Gmail.CredentialsFile, err)
	}
	if _, err := os.Stat(c.Gmail.TokenFile); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingToken, c.Gmail.TokenFile)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDefaultBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

// durationOr parses a YAML duration string, falling back when it is empty
// or malformed.
func durationOr(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

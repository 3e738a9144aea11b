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


package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bcem/mailsift/internal/config"
	"github.com/bcem/mailsift/internal/export"
	"github.com/bcem/mailsift/internal/models"
)

// writeOutputs handles --export, --json and --upload.
func writeOutputs(ctx context.Context, cfg *config.Config, opts options, r *models.Report) error {
	var csvBuf, jsonBuf bytes.Buffer
	if err := export.WriteCSV(&csvBuf, r); err != nil {
		return err
	}
	if err := export.WriteJSON(&jsonBuf, r); err != nil {
		return err
	}

	if opts.Export != "" {
		if err := writeFile(cfg.Export.Dir, opts.Export, csvBuf.Bytes()); err != nil {
			return err
		}
	}
	if opts.JSON != "" {
		if err := writeFile(cfg.Export.Dir, opts.JSON, jsonBuf.Bytes()); err != nil {
			return err
		}
	}

	if !opts.Upload {
		return nil
	}
	uploader, err := export.NewS3Uploader(ctx, cfg.Export.S3Bucket, cfg.Export.S3Region, cfg.Export.S3Prefix)
	if err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}
	for ext, data := range map[string][]byte{"json": jsonBuf.Bytes(), "csv": csvBuf.Bytes()} {
		key, err := uploader.Upload(ctx, r.Account, r.RunID, ext, data)
		if err != nil {
			return err
		}
		slog.Info("report uploaded", "bucket", cfg.Export.S3Bucket, "key", key)
	}
	return nil
}

// writeFile writes data to name, relative to dir unless name is absolute.
func writeFile(dir, name string, data []byte) error {
	path := name
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("report written", "path", path, "bytes", len(data))
	return nil
}

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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcem/mailsift/internal/config"
	"github.com/bcem/mailsift/internal/gmail"
	"github.com/bcem/mailsift/internal/models"
)

func writeCredentials(t *testing.T, dir, tokenURL string) string {
	t.Helper()
	path := filepath.Join(dir, "credentials.json")
	creds := fmt.Sprintf(`{"installed":{"client_id":"cid","client_secret":"secret",`+
		`"auth_uri":"https://accounts.example/auth","token_uri":%q,"redirect_uris":["http://localhost"]}}`, tokenURL)
	require.NoError(t, os.WriteFile(path, []byte(creds), 0o600))
	return path
}

// TestAuthorize verifies the consent URL is printed and the exchanged
// token is saved.
func TestAuthorize(t *testing.T) {
	var gotCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotCode = r.PostForm.Get("code")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := &config.Config{Gmail: config.GmailConfig{
		CredentialsFile: writeCredentials(t, dir, srv.URL),
		TokenFile:       filepath.Join(dir, "token.json"),
	}}

	var out bytes.Buffer
	err := authorize(context.Background(), cfg, strings.NewReader("auth-code-123\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "https://accounts.example/auth?")
	assert.Contains(t, out.String(), "access_type=offline")
	assert.Equal(t, "auth-code-123", gotCode)

	tok, err := gmail.LoadToken(cfg.Gmail.TokenFile)
	require.NoError(t, err)
	assert.Equal(t, "at-1", tok.AccessToken)
	assert.Equal(t, "rt-1", tok.RefreshToken)
}

// TestAuthorizeEmptyCode verifies an empty answer is rejected.
func TestAuthorizeEmptyCode(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Gmail: config.GmailConfig{
		CredentialsFile: writeCredentials(t, dir, "http://127.0.0.1:1/token"),
		TokenFile:       filepath.Join(dir, "token.json"),
	}}

	err := authorize(context.Background(), cfg, strings.NewReader("\n"), &bytes.Buffer{})
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Gmail.TokenFile)
}

// TestWriteOutputs verifies CSV and JSON files land in the export dir.
func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Export: config.ExportConfig{Dir: dir}}
	r := &models.Report{Account: "me@example.com", RunID: "run-1"}
	r.Add(models.AnalyzedEmail{
		Email:          models.Email{ID: "1", Subject: "Hi"},
		Classification: models.ClassificationResult{Category: models.CategoryNormal},
	})

	abs := filepath.Join(t.TempDir(), "abs.json")
	err := writeOutputs(context.Background(), cfg, options{Export: "out.csv", JSON: abs}, r)
	require.NoError(t, err)

	csvData, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvData), "category,date,sender,subject,name,details\n"))
	assert.Contains(t, string(csvData), "Normal,,,Hi,,")

	jsonData, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"me@example.com"`)
	assert.Contains(t, string(jsonData), `"total_normal": 1`)
}

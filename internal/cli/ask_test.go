// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeranaias/converse-tui/internal/completion"
)

func newAskBackend(t *testing.T, reply string) *completion.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
	t.Cleanup(server.Close)
	return completion.NewClient(server.URL)
}

func TestAskPlainOutput(t *testing.T) {
	client := newAskBackend(t, "Paris.")

	var out strings.Builder
	if err := Ask(context.Background(), client, "capital of France?", &out, true); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Paris." {
		t.Errorf("output = %q", got)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	client := newAskBackend(t, "unused")

	var out strings.Builder
	err := Ask(context.Background(), client, "  ", &out, true)
	if !errors.Is(err, completion.ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestAskPropagatesBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()
	client := completion.NewClient(server.URL)

	var out strings.Builder
	err := Ask(context.Background(), client, "hello", &out, true)
	if !errors.Is(err, completion.ErrServerError) {
		t.Errorf("expected ErrServerError, got %v", err)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/converse-tui/internal/completion"
	"github.com/jeranaias/converse-tui/internal/session"
)

// historyLimit caps the number of prompt lines kept between runs.
const historyLimit = 500

// =============================================================================
// REPL
// =============================================================================

// REPL is a line-editing chat loop for terminals where the full-screen
// UI is unavailable. Arrow keys navigate input history.
type REPL struct {
	line        *liner.State
	historyFile string
	store       *session.Store
	client      *completion.Client
}

// NewREPL creates a REPL with input history under baseDir.
func NewREPL(store *session.Store, client *completion.Client, baseDir string) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if baseDir == "" {
		baseDir = os.TempDir()
	}

	r := &REPL{
		line:        line,
		historyFile: filepath.Join(baseDir, "chat_history"),
		store:       store,
		client:      client,
	}
	r.loadHistory()
	return r
}

// Close saves history and restores the terminal.
func (r *REPL) Close() error {
	r.saveHistory()
	return r.line.Close()
}

// Run reads prompts until EOF or interrupt. Each turn goes through the
// session store, so persistence and temporary-mode rules apply the same
// as in the full UI.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Println("converse - type a message, ctrl+d to exit")
	if r.store.IsTemporary() {
		fmt.Println("(temporary chat: nothing will be saved)")
	}

	for {
		text, err := r.line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		r.line.AppendHistory(text)

		if err := r.store.AppendUser(text); err != nil {
			continue
		}

		reply, err := r.client.Complete(ctx, text)
		if err != nil {
			r.store.AppendError("The model is unavailable right now. Please try again.")
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		r.store.AppendBot(reply)
		fmt.Println(reply)
	}
}

// loadHistory loads prompt history from file.
func (r *REPL) loadHistory() {
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.ReadHistory(f)
}

// saveHistory writes prompt history back to file.
func (r *REPL) saveHistory() {
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

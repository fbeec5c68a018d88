// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the converse CLI.
//
// Handles "converse ask", which sends one question to the chat backend
// and prints the rendered reply to stdout.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/converse-tui/internal/completion"
)

// Ask sends a single question and writes the rendered reply to out.
// plain skips markdown rendering, for pipes and scripts.
func Ask(ctx context.Context, client *completion.Client, question string, out io.Writer, plain bool) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return completion.ErrEmptyPrompt
	}

	reply, err := client.Complete(ctx, question)
	if err != nil {
		return err
	}

	if plain {
		fmt.Fprintln(out, reply)
		return nil
	}

	rendered, err := renderMarkdown(reply)
	if err != nil {
		// Rendering is cosmetic; fall back to the raw reply.
		fmt.Fprintln(out, reply)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// renderMarkdown formats a reply for terminal display.
func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

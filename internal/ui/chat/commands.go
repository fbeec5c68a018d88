// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/converse-tui/internal/cloud"
	"github.com/jeranaias/converse-tui/internal/completion"
	"github.com/jeranaias/converse-tui/internal/session"
)

// completionTimeout bounds a single turn end to end.
const completionTimeout = 90 * time.Second

// =============================================================================
// COMMANDS
// =============================================================================

// completeCmd sends the prompt to the completion backend. The result is
// tagged with the store generation at submit time so stale replies can
// be recognized.
func completeCmd(client *completion.Client, generation uint64, prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()

		reply, err := client.Complete(ctx, prompt)
		return CompletionResultMsg{
			Generation: generation,
			Reply:      reply,
			Err:        err,
		}
	}
}

// pushCmd pushes the given change to the sync backend in the background.
func pushCmd(syncer *cloud.SyncClient, change session.Change) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cloud.DefaultTimeout)
		defer cancel()

		return SyncResultMsg{Err: syncer.Push(ctx, change)}
	}
}

// syncProfileCmd pushes the signed-in user's profile once.
func syncProfileCmd(syncer *cloud.SyncClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cloud.DefaultTimeout)
		defer cancel()

		return ProfileSyncedMsg{Err: syncer.SyncProfile(ctx)}
	}
}

// welcomeExpiryCmd clears the welcome toast after its display window.
func welcomeExpiryCmd() tea.Cmd {
	return tea.Tick(welcomeDuration, func(time.Time) tea.Msg {
		return WelcomeExpiredMsg{}
	})
}

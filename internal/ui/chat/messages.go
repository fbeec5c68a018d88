// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for converse-tui.
//
// This file defines all Bubble Tea message types used by the chat
// interface. All message types follow Bubble Tea conventions and are
// immutable.
package chat

import "github.com/jeranaias/converse-tui/internal/ui/styles"

// =============================================================================
// COMPLETION MESSAGES
// =============================================================================

// CompletionResultMsg delivers the model's reply for a submitted turn.
// Generation is the store generation at submit time; results from an
// earlier generation are stale and dropped.
type CompletionResultMsg struct {
	Generation uint64
	Reply      string
	Err        error
}

// =============================================================================
// SYNC MESSAGES
// =============================================================================

// SyncResultMsg reports the outcome of a background conversation push.
type SyncResultMsg struct {
	Err error
}

// ProfileSyncedMsg reports the outcome of the one-time profile push.
type ProfileSyncedMsg struct {
	Err error
}

// =============================================================================
// THEME MESSAGES
// =============================================================================

// ThemeChangedMsg signals that the effective theme flipped, either by a
// user cycle or by the OS appearance monitor.
type ThemeChangedMsg struct {
	Mode styles.Mode
}

// =============================================================================
// NOTICE MESSAGES
// =============================================================================

// WelcomeExpiredMsg clears the one-shot welcome toast.
type WelcomeExpiredMsg struct{}

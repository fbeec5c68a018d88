// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import "errors"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrConversationNotFound is returned when an archive lookup misses.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrDatabaseError wraps underlying SQLite failures.
	ErrDatabaseError = errors.New("database error")
)

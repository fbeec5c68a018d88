// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// Error variables for edit operations.
var (
	// ErrNoActiveEdit indicates CommitEdit without a preceding BeginEdit.
	ErrNoActiveEdit = errors.New("no message is in edit mode")

	// ErrEmptyEdit indicates edit text that trims to nothing. The original
	// message text is left intact.
	ErrEmptyEdit = errors.New("edit text is empty")
)

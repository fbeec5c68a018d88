// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal fallbacks for converse-tui:
// a one-shot ask command and a line-editing REPL for environments where
// the full-screen UI is unavailable.
package cli

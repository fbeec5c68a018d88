// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package completion provides the chat model client for converse-tui.
//
// The backend exposes a single completion endpoint: POST /chat with a
// JSON body {"inputs": "..."} answered by {"response": "..."}. This
// package implements the client for that contract with pooled
// connections, a request rate limiter and size-limited reads.
package completion

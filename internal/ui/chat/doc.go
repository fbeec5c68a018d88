// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for converse-tui.
//
// The Model ties the session store, the completion client and the sync
// client together behind a Bubble Tea interface. One turn is in flight
// at a time: submitting is disabled while a completion is loading, and
// responses are tagged with the store's generation so a reply that
// arrives after the user started a new chat is dropped instead of
// landing in the wrong conversation.
package chat

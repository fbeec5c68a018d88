// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation data model shared by the session
// store, the local persistence layer, and the remote sync client.
//
// A Conversation is an append-only transcript of Messages, each tagged with
// a Sender (user, bot, or error). The only in-place mutation is ReplaceText,
// which backs the edit-in-place feature. Titles derive from the first user
// message.
package model

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud synchronizes the user profile and conversation transcript
// with the converse backend.
//
// Two endpoints make up the contract:
//
//	POST /api/save-user   {clerkid, name, email}                    -> 200
//	POST /api/save-convo  {conversationId, userId, title, messages} -> {conversationId}
//
// Both carry the session bearer token. The profile is pushed once per
// sign-in. Conversations are pushed after each local change; the first
// push sends a client-generated provisional id and the server's reply id
// is adopted for every later push, so a conversation keeps one identity
// for its whole life. Sync failures are logged and dropped, never
// retried: the next local change will push the full transcript again.
package cloud

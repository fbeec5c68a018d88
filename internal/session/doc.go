// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the authoritative in-memory state for the active
// chat: the transcript, the temporary/persistent mode switch, loading and
// error flags, and the edit-in-place protocol.
//
// Every committed content or mode mutation has two side effects, both run
// outside the store lock: a write through the local Persister (skipped while
// the session is temporary) and a Change delivered to the registered
// listener, which the remote sync client uses to mark the conversation
// dirty. Identity backfill (AdoptRemoteID) is deliberately not a Change, so
// a completed remote save never schedules another one.
package session

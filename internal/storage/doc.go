// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for converse-tui.
//
// Two stores live here:
//
//   - LocalStore keeps the active transcript, the theme setting, and the
//     temporary-chat flag as small files under a base directory. It is the
//     durable snapshot the session store writes through on every change.
//   - ArchiveStore keeps a browsable history of finished conversations in
//     a SQLite database.
//
// Both stores treat missing or malformed data as absent rather than as an
// error, so a damaged file never blocks startup.
package storage

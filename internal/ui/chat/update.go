// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/converse-tui/internal/session"
	"github.com/jeranaias/converse-tui/internal/ui/styles"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CompletionResultMsg:
		return m.handleCompletionResult(msg)

	case SyncResultMsg:
		// Failures are already logged by the sync client; the status bar
		// reads the client's state directly.
		return m, nil

	case ProfileSyncedMsg:
		return m, nil

	case ThemeChangedMsg:
		m.applyMode(msg.Mode)
		return m, nil

	case welcomeMsg:
		m.welcome = string(msg)
		return m, welcomeExpiryCmd()

	case WelcomeExpiredMsg:
		m.welcome = ""
		return m, nil

	case spinner.TickMsg:
		if !m.store.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var (
		inputCmd tea.Cmd
		vpCmd    tea.Cmd
	)
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.EditLast):
		return m.handleBeginEdit()

	case key.Matches(msg, m.keyMap.Cancel):
		if _, editing := m.store.EditingIndex(); editing {
			m.store.CancelEdit()
			m.input.Reset()
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.StartNew(false)
		m.input.Reset()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.TempChat):
		m.store.StartNew(true)
		m.input.Reset()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.CycleTheme):
		return m.handleCycleTheme()

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit sends the input as a new turn, or commits a pending edit.
// Submit is a no-op while a completion is in flight.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.store.IsLoading() {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())

	if _, editing := m.store.EditingIndex(); editing {
		if err := m.store.CommitEdit(text); err != nil {
			// Empty edit: keep the edit active, let the user fix it.
			return m, nil
		}
	} else {
		if err := m.store.AppendUser(text); err != nil {
			return m, nil
		}
	}

	m.input.Reset()
	m.store.SetLoading(true)
	m.refreshViewport()
	m.viewport.GotoBottom()

	cmds := []tea.Cmd{
		m.spinner.Tick,
		completeCmd(m.completer, m.store.Generation(), text),
	}
	if cmd := m.syncCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleBeginEdit loads the last user message into the input for editing.
func (m Model) handleBeginEdit() (tea.Model, tea.Cmd) {
	if m.store.IsLoading() {
		return m, nil
	}

	idx := m.store.LastUserIndex()
	if idx < 0 {
		return m, nil
	}
	if text, ok := m.store.BeginEdit(idx); ok {
		m.input.SetValue(text)
		m.input.CursorEnd()
	}
	return m, nil
}

// handleCycleTheme advances the theme setting and persists it.
func (m Model) handleCycleTheme() (tea.Model, tea.Cmd) {
	next := m.resolver.CycleSetting()
	if m.local != nil {
		if err := m.local.SaveThemeSetting(next.String()); err != nil {
			log.Printf("[chat] theme setting not saved: %v", err)
		}
	}
	m.applyMode(m.resolver.Mode())
	return m, nil
}

// =============================================================================
// COMPLETION RESULT
// =============================================================================

func (m Model) handleCompletionResult(msg CompletionResultMsg) (tea.Model, tea.Cmd) {
	// A reply for an abandoned conversation: drop it on the floor.
	if msg.Generation != m.store.Generation() {
		return m, nil
	}

	m.store.SetLoading(false)
	if msg.Err != nil {
		m.store.AppendError("The model is unavailable right now. Please try again.")
		m.store.SetError(msg.Err.Error())
	} else {
		m.store.AppendBot(msg.Reply)
		m.store.SetError("")
	}

	m.refreshViewport()
	m.viewport.GotoBottom()

	if cmd := m.syncCmd(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// syncCmd returns a background push for the current transcript, or nil
// when sync does not apply (disabled, signed out, or temporary chat).
func (m Model) syncCmd() tea.Cmd {
	if m.syncer == nil || m.authMgr == nil || !m.authMgr.SignedIn() {
		return nil
	}
	if m.store.IsTemporary() {
		return nil
	}

	change := session.Change{
		Revision:     m.store.Revision(),
		Temporary:    m.store.IsTemporary(),
		Conversation: m.store.Conversation(),
	}
	m.syncer.HandleChange(change)
	return pushCmd(m.syncer, change)
}

// applyMode rebuilds theme-dependent state for a new effective mode.
func (m *Model) applyMode(mode styles.Mode) {
	m.theme = styles.NewTheme(mode)
	m.renderer = newRenderer(mode, m.width)
	m.refreshViewport()
}

// handleResize recomputes layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Header, input box and status bar take fixed rows.
	vpHeight := msg.Height - 7
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.input.Width = msg.Width - 6
	m.renderer = newRenderer(m.theme.Mode, msg.Width)
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, textinput.Blink
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
}

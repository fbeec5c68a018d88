// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/converse-tui/internal/model"
)

// View renders the full conversation screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.theme.App.Render(b.String())
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.store.Conversation().GetTitle()

	var meta []string
	if m.store.IsTemporary() {
		meta = append(meta, m.theme.StatusTemp.Render("temporary"))
	}
	if m.syncer != nil && m.authMgr != nil && m.authMgr.SignedIn() && !m.store.IsTemporary() {
		meta = append(meta, m.theme.StatusSync.Render(m.syncer.ConvoState().String()))
	}

	line := m.theme.HeaderTitle.Render(title)
	if len(meta) > 0 {
		line += "  " + m.theme.HeaderMeta.Render(strings.Join(meta, " "))
	}
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the message log for the viewport.
func (m Model) renderTranscript() string {
	messages := m.store.Messages()
	if len(messages) == 0 {
		if m.store.IsTemporary() {
			return m.theme.NoticeText.Render("Temporary chat. Nothing here will be saved.")
		}
		return m.theme.NoticeText.Render("Start a conversation.")
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.store.IsLoading() {
		b.WriteString("\n")
		b.WriteString(m.theme.Spinner.Render(m.spinner.View()))
		b.WriteString(" ")
		b.WriteString(m.theme.Thinking.Render("thinking..."))
		b.WriteString("\n")
	}

	return b.String()
}

// renderMessage renders one transcript entry for its sender.
func (m Model) renderMessage(msg model.Message) string {
	switch msg.Sender {
	case model.SenderUser:
		bubble := m.theme.UserBubble.Render(msg.Text)
		return m.alignRight(bubble)

	case model.SenderError:
		return m.theme.ErrorBubble.Render(msg.Text)

	default:
		return m.theme.BotBubble.Render(m.renderMarkdown(msg.Text))
	}
}

// renderMarkdown formats bot replies through glamour. On renderer failure
// the raw text is shown instead.
func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// alignRight pads a block to the right edge of the viewport.
func (m Model) alignRight(block string) string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(stripANSI(line)); w > blockWidth {
			blockWidth = w
		}
	}

	pad := width - blockWidth - 1
	if pad < 0 {
		pad = 0
	}
	prefix := strings.Repeat(" ", pad)

	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// stripANSI removes escape sequences for width measurement.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) renderInput() string {
	var banner string
	if _, editing := m.store.EditingIndex(); editing {
		banner = m.theme.EditBanner.Render("editing message - Enter to resend, Esc to cancel") + "\n"
	}
	if m.welcome != "" {
		banner = m.theme.WelcomeBox.Render(fmt.Sprintf("Welcome, %s!", m.welcome)) + "\n"
	}

	return banner + m.theme.InputContainer.Width(m.width-2).Render(m.input.View())
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	shortcuts := []struct{ key, desc string }{
		{"Enter", "send"},
		{"C-e", "edit"},
		{"C-n", "new"},
		{"C-t", "temp"},
		{"C-y", "theme"},
		{"C-c", "quit"},
	}

	parts := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		parts[i] = m.theme.ShortcutKey.Render(s.key) + " " + m.theme.ShortcutDesc.Render(s.desc)
	}

	left := strings.Join(parts, "  ")
	right := m.theme.ShortcutDesc.Render(m.resolver.Setting().String())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

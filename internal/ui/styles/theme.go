// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds all the styled components for the application.
type Theme struct {
	Mode    Mode
	Palette Palette

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	EditBanner     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusTemp   lipgloss.Style
	StatusSync   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND NOTICE STYLES
	// ==========================================================================

	Spinner    lipgloss.Style
	Thinking   lipgloss.Style
	WelcomeBox lipgloss.Style
	NoticeText lipgloss.Style
}

// NewTheme builds the style set for an effective mode.
func NewTheme(mode Mode) *Theme {
	t := &Theme{
		Mode:    mode,
		Palette: PaletteFor(mode),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.Palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		Background(p.BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.SurfaceBright).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(p.Error).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Padding(0, 2)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.EditBanner = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim).
		Padding(0, 1)

	t.StatusTemp = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)

	t.StatusSync = lipgloss.NewStyle().
		Foreground(p.Success)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Spinner and notices
	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.Thinking = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	t.WelcomeBox = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Success).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Success).
		Padding(0, 2)

	t.NoticeText = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/converse-tui/internal/auth"
	"github.com/jeranaias/converse-tui/internal/cloud"
	"github.com/jeranaias/converse-tui/internal/completion"
	"github.com/jeranaias/converse-tui/internal/session"
	"github.com/jeranaias/converse-tui/internal/storage"
	"github.com/jeranaias/converse-tui/internal/ui/styles"
)

// welcomeDuration is how long the post-sign-in toast stays visible.
const welcomeDuration = 4 * time.Second

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	theme    *styles.Theme
	resolver *styles.Resolver

	store     *session.Store
	completer *completion.Client
	syncer    *cloud.SyncClient // nil when sync is disabled
	authMgr   *auth.Manager     // nil when running anonymously
	local     *storage.LocalStore

	// Bubbles
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// renderer formats bot markdown for the current theme and width.
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	// welcome holds the toast text after a fresh sign-in, empty otherwise.
	welcome string
}

// Deps bundles the collaborators the view needs.
type Deps struct {
	Resolver  *styles.Resolver
	Store     *session.Store
	Completer *completion.Client
	Syncer    *cloud.SyncClient
	Auth      *auth.Manager
	Local     *storage.LocalStore
}

// New creates the conversation view.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	mode := deps.Resolver.Mode()

	m := Model{
		theme:     styles.NewTheme(mode),
		resolver:  deps.Resolver,
		store:     deps.Store,
		completer: deps.Completer,
		syncer:    deps.Syncer,
		authMgr:   deps.Auth,
		local:     deps.Local,
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		keyMap:    DefaultKeyMap(),
	}
	m.renderer = newRenderer(mode, 80)

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	// One-shot welcome after a fresh sign-in, consumed exactly once.
	if m.authMgr != nil && m.authMgr.ConsumeWelcome() {
		if sess, err := m.authMgr.Current(); err == nil {
			name := sess.Name
			if name == "" {
				name = "back"
			}
			cmds = append(cmds, func() tea.Msg { return welcomeMsg(name) })
		}
	}

	if m.syncer != nil && m.authMgr != nil && m.authMgr.SignedIn() {
		cmds = append(cmds, syncProfileCmd(m.syncer))
	}

	return tea.Batch(cmds...)
}

// welcomeMsg carries the display name for the welcome toast.
type welcomeMsg string

// newRenderer builds a glamour renderer for the mode and wrap width.
func newRenderer(mode styles.Mode, width int) *glamour.TermRenderer {
	style := "light"
	if mode == styles.ModeDark {
		style = "dark"
	}

	wrap := width - 8
	if wrap < 20 {
		wrap = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

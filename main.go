// converse TUI - A terminal client for the converse chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/converse-tui/internal/auth"
	"github.com/jeranaias/converse-tui/internal/cli"
	"github.com/jeranaias/converse-tui/internal/cloud"
	"github.com/jeranaias/converse-tui/internal/completion"
	"github.com/jeranaias/converse-tui/internal/config"
	"github.com/jeranaias/converse-tui/internal/session"
	"github.com/jeranaias/converse-tui/internal/storage"
	"github.com/jeranaias/converse-tui/internal/ui/chat"
	"github.com/jeranaias/converse-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async theme notifications
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func main() {
	var (
		askFlag     = flag.String("ask", "", "send a single question and exit")
		plainFlag   = flag.Bool("plain", false, "skip markdown rendering (with -ask)")
		replFlag    = flag.Bool("repl", false, "force the line-mode REPL")
		tempFlag    = flag.Bool("temp", false, "start in a temporary chat")
		configFlag  = flag.String("config", "", "path to config.toml")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("converse %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	completer := completion.NewClient(cfg.Completion.URL,
		completion.WithRequestsPerMinute(cfg.Completion.RequestsPerMinute))

	// One-shot mode needs none of the session machinery.
	if *askFlag != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := cli.Ask(ctx, completer, *askFlag, os.Stdout, *plainFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	local, err := openLocalStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening local storage: %v\n", err)
		os.Exit(1)
	}

	authMgr := bootstrapAuth(local.BaseDir)

	store := session.NewStore(session.WithPersister(local))

	// Restore the last session unless the user left in temporary mode or
	// asked for one now. A prior temporary session left no snapshot.
	if *tempFlag || local.LoadTemporaryFlag() {
		store.StartNew(true)
	} else {
		msgs, err := local.LoadMessages()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not restore the last session: %v\n", err)
		}
		if len(msgs) > 0 {
			store.Restore(msgs)
		}
	}

	var syncer *cloud.SyncClient
	if cfg.Sync.URL != "" {
		syncer = cloud.NewSyncClient(cfg.Sync.URL, authMgr, store)
	}

	var archive *storage.ArchiveStore
	if cfg.Storage.ArchiveEnabled {
		if archive, err = storage.OpenArchive(filepath.Join(local.BaseDir, "archive.db")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: archive disabled: %v\n", err)
			archive = nil
		} else {
			defer archive.Close()
		}
	}

	if *replFlag || !term.IsTerminal(int(os.Stdin.Fd())) {
		runREPL(store, completer, local.BaseDir)
		archiveSession(archive, store)
		return
	}

	runTUI(cfg, store, completer, syncer, authMgr, local)
	archiveSession(archive, store)
}

// archiveSession files the finished conversation into the local archive.
// Temporary chats leave no trace here either.
func archiveSession(archive *storage.ArchiveStore, store *session.Store) {
	if archive == nil || store.IsTemporary() {
		return
	}
	conv := store.Conversation()
	if conv.IsEmpty() {
		return
	}
	if _, err := archive.Save(conv); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not archive conversation: %v\n", err)
	}
}

// loadConfig loads from the explicit path when given, else the default.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// openLocalStore opens the snapshot store at the configured directory.
func openLocalStore(cfg *config.Config) (*storage.LocalStore, error) {
	if cfg.Storage.Dir != "" {
		return storage.NewLocalStoreWithDir(cfg.Storage.Dir)
	}
	return storage.NewLocalStore()
}

// bootstrapAuth signs in from the environment. CONVERSE_TOKEN plus
// CONVERSE_USER_ID activate a session; the token is also accepted from
// the encrypted keystore cache when CONVERSE_PASSPHRASE is set.
func bootstrapAuth(baseDir string) *auth.Manager {
	mgr := auth.NewManager()

	token := os.Getenv("CONVERSE_TOKEN")
	passphrase := os.Getenv("CONVERSE_PASSPHRASE")

	ks, ksErr := auth.NewKeystore(baseDir)

	if token == "" && passphrase != "" && ksErr == nil {
		if cached, err := ks.Load(passphrase); err == nil {
			token = cached
		}
	}

	userID := os.Getenv("CONVERSE_USER_ID")
	if token == "" || userID == "" {
		return mgr
	}

	sess := auth.Session{
		Token:  token,
		UserID: userID,
		Name:   os.Getenv("CONVERSE_USER_NAME"),
		Email:  os.Getenv("CONVERSE_USER_EMAIL"),
	}
	if err := mgr.SignIn(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sign-in skipped: %v\n", err)
		return mgr
	}

	// Cache the token for the next launch.
	if passphrase != "" && ksErr == nil {
		if err := ks.Store(token, passphrase); err != nil {
			log.Printf("[auth] token not cached: %v", err)
		}
	}

	return mgr
}

// runREPL runs the line-mode fallback for non-interactive terminals.
func runREPL(store *session.Store, completer *completion.Client, baseDir string) {
	repl := cli.NewREPL(store, completer, baseDir)
	defer repl.Close()

	if err := repl.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI launches the full-screen interface.
func runTUI(cfg *config.Config, store *session.Store, completer *completion.Client,
	syncer *cloud.SyncClient, authMgr *auth.Manager, local *storage.LocalStore) {

	// The persisted theme setting wins over the config default.
	setting := styles.ParseSetting(cfg.UI.Theme)
	if local.HasThemeSetting() {
		setting = styles.ParseSetting(local.LoadThemeSetting())
	}

	// OS appearance flips land in the UI as theme messages.
	resolver := styles.NewResolver(setting, styles.WithModeListener(func(mode styles.Mode) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(chat.ThemeChangedMsg{Mode: mode})
		}
	}))
	defer resolver.Close()

	m := chat.New(chat.Deps{
		Resolver:  resolver,
		Store:     store,
		Completer: completer,
		Syncer:    syncer,
		Auth:      authMgr,
		Local:     local,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Live-reload the config file: an edited theme default takes effect
	// immediately, unless the user already picked a theme in-app.
	if path, err := config.ConfigPath(); err == nil {
		watcher, werr := config.NewWatcher(path, func(next *config.Config) {
			if local.HasThemeSetting() {
				return
			}
			resolver.SetSetting(styles.ParseSetting(next.UI.Theme))
		})
		if werr == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running converse: %v\n", err)
		os.Exit(1)
	}
}

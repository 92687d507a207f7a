package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"quotefeed/internal/ads"
	"quotefeed/internal/config"
	"quotefeed/internal/daily"
	"quotefeed/internal/favorites"
	"quotefeed/internal/feed"
	"quotefeed/internal/logging"
	"quotefeed/internal/platform"
	"quotefeed/internal/quotes"
	"quotefeed/internal/settings"
	"quotefeed/internal/store"
	"quotefeed/internal/submit"
	"quotefeed/internal/ui"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Data directory: ~/.quotefeed/
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(dataDir); err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.AutoPopulateFromEnv()
	cfg.Save()

	// Open the key-value store; fall back to in-memory when the disk
	// database cannot be opened so the session still works.
	var kv store.KV
	dbPath := filepath.Join(dataDir, "quotefeed.db")
	if st, err := store.Open(dbPath); err != nil {
		logging.Error("database unavailable, running without persistence", "err", err)
		kv = store.NewMemory()
	} else {
		kv = st
	}
	defer kv.Close()

	// Engine components
	syncer := quotes.NewSyncer(kv, cfg.SourceURL)
	ledger := favorites.NewLedger(kv)
	selector := daily.NewSelector(kv, syncer)
	settingsMgr := settings.NewManager(kv)
	submitter := submit.NewClient(cfg.SubmitURL)

	seq := feed.NewSequencer(settingsMgr.Current(ctx).HideNSFW)
	settingsMgr.Subscribe(func(s settings.Settings) {
		seq.SetContentFilter(s.HideNSFW)
	})

	services := platform.NewTerminal()
	adsCtx := ads.NewContext(services)

	model := ui.New(ctx, ui.Deps{
		Sequencer: seq,
		Syncer:    syncer,
		Ledger:    ledger,
		Daily:     selector,
		Settings:  settingsMgr,
		Ads:       adsCtx,
		Services:  services,
		Submitter: submitter,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	logging.Info("quotefeed starting", "source", cfg.SourceURL != "", "db", dbPath)
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}
	logging.Info("quotefeed exiting")
}

package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtakeda/editor-tab-sync/internal/backend"
	"github.com/mtakeda/editor-tab-sync/internal/editor"
	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/notify"
	"github.com/mtakeda/editor-tab-sync/internal/statusfile"
	"github.com/mtakeda/editor-tab-sync/internal/store"
	"github.com/mtakeda/editor-tab-sync/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	EditorID         string
	EventsFile       string
	OrderFile        string
	PollInterval     time.Duration
	ClickDebounce    time.Duration
	ResetDelay       time.Duration
	AutoDismissDelay time.Duration
	Notifications    bool
	ShowFooter       bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	editorCfg, ok := editor.ByID(cfg.EditorID)
	if !ok {
		return fmt.Errorf("unsupported editor %q", cfg.EditorID)
	}

	reader := statusfile.NewReader(cfg.EventsFile)
	// Stale entries from a previous run must not replay as fresh events.
	reader.Remove()

	client := editor.NewOSAClient(editorCfg)
	orders := store.NewFile(cfg.OrderFile)

	eng, initial, err := engine.New(orders, editorCfg.ID, engine.Options{
		ClickDebounce:    cfg.ClickDebounce,
		ResetDelay:       cfg.ResetDelay,
		AutoDismissDelay: cfg.AutoDismissDelay,
		Notifications:    cfg.Notifications,
	})
	if err != nil {
		return fmt.Errorf("initialise sync engine: %w", err)
	}

	focusInterval := cfg.PollInterval / 4
	if focusInterval < 100*time.Millisecond {
		focusInterval = 100 * time.Millisecond
	}
	watcher := backend.NewWatcher(client, reader, backend.Intervals{
		Snapshot: cfg.PollInterval,
		Focus:    focusInterval,
		Status:   300 * time.Millisecond,
	})
	defer watcher.Stop()

	model := ui.NewModel(eng, initial, client, notify.NewOSASender(), watcher, ui.Options{
		EditorName: editorCfg.DisplayName,
		ShowFooter: cfg.ShowFooter,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

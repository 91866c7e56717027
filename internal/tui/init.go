package tui

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/config"
	"github.com/studiowebux/popfocus/internal/journal"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/parser"
	"github.com/studiowebux/popfocus/internal/popoverlist"
	"github.com/studiowebux/popfocus/internal/store"
)

// Options configures a new TUI model
type Options struct {
	Items    popoverlist.Items
	Keybinds *keybinds.Registry // defaults when nil
	Logger   *slog.Logger
	Journal  *journal.Manager // nil disables journaling
	Debug    bool             // log every state change
}

// RunOptions configures Run
type RunOptions struct {
	ItemsPath string // defaults to config.GetItemsFilePath()
	Journal   bool
	Debug     bool
}

// New creates a new TUI model
func New(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if unique := opts.Items.Dedupe(); len(unique) != len(opts.Items) {
		return Model{}, fmt.Errorf("rows contain %d duplicate id(s)", len(opts.Items)-len(unique))
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	initial := app.State{}
	initial.Child.Items = opts.Items.Clone()
	s := app.NewStore(initial, logger)

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = MaxRowLength

	m := Model{
		store:     s,
		state:     s.State(),
		keybinds:  registry,
		logger:    logger,
		journal:   opts.Journal,
		mode:      ModeNormal,
		rowEdit:   NewRowEditState(),
		filter:    NewFilterState(),
		textInput: input,
	}

	if opts.Debug {
		m.unsubscribe = append(m.unsubscribe, s.Subscribe(store.PrintChanges[app.State, app.Action](logger)))
	}
	if opts.Journal != nil {
		sessionID := uuid.New()
		logger.Info("journal session started", "session", sessionID)
		m.unsubscribe = append(m.unsubscribe, s.Subscribe(opts.Journal.WithLogger(logger).Observer(sessionID)))
	}

	return m, nil
}

// Run starts the TUI
func Run(opts RunOptions) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	itemsPath := opts.ItemsPath
	if itemsPath == "" {
		itemsPath = config.GetItemsFilePath()
	}
	items, err := parser.ParseItems(itemsPath)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return fmt.Errorf("failed to load keybinds: %w", err)
	}

	var j *journal.Manager
	if opts.Journal {
		j, err = journal.Open(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
	}

	m, err := New(Options{
		Items:    items,
		Keybinds: registry,
		Logger:   logger,
		Journal:  j,
		Debug:    opts.Debug,
	})
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

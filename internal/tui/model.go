package tui

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/journal"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeRowEdit
	ModeFilter
)

func (m Mode) String() string {
	switch m {
	case ModeRowEdit:
		return "edit"
	case ModeFilter:
		return "filter"
	default:
		return "normal"
	}
}

// Model represents the TUI state
type Model struct {
	store    *store.Store[app.State, app.Action]
	state    app.State // last snapshot read from the store
	keybinds *keybinds.Registry
	logger   *slog.Logger
	journal  *journal.Manager

	unsubscribe []func()

	mode      Mode
	rowEdit   *RowEditState
	filter    *FilterState
	textInput textinput.Model

	// Clipboard writer, replaced in tests
	copyToClipboard func(string) error

	width  int
	height int

	statusMsg string
	errorMsg  string
}

// Messages
type clearStatusMsg struct{}
type clearErrorMsg struct{}

type copiedMsg struct {
	rows int
	err  error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Cleanup detaches store observers and closes the journal
func (m *Model) Cleanup() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil

	if m.journal != nil {
		if err := m.journal.Close(); err != nil {
			m.logger.Error("failed to close journal", "error", err)
		}
		m.journal = nil
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = m.popoverWidth() - RowPrefixWidth - ViewportPaddingHorizontal

	case copiedMsg:
		if msg.err != nil {
			m.logger.Error("failed to copy selection", "error", msg.err)
			return m, m.setErrorMessage("Copy failed: " + msg.err.Error())
		}
		return m, m.setStatusMessage(pluralRows(msg.rows) + " copied to clipboard")

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
	}

	return m, nil
}

// View renders the TUI
func (m *Model) View() string {
	return m.renderMain()
}

// dispatch sends an action to the store and refreshes the local snapshot
func (m *Model) dispatch(action app.Action) {
	m.store.Send(action)
	m.refresh()
}

// refresh re-reads the store and leaves modes that need an open session
func (m *Model) refresh() {
	m.state = m.store.State()

	if m.state.Child.Popover == nil {
		if m.mode != ModeNormal {
			m.exitTextMode()
		}
		m.filter.Reset()
	}
}

func (m *Model) exitTextMode() {
	m.mode = ModeNormal
	m.rowEdit.Reset()
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.errorMsg = ""
	m.statusMsg = truncateMessage(msg)
	return tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncateMessage(msg)
	return tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// truncateMessage shortens messages for footer display
func truncateMessage(msg string) string {
	return ansi.Truncate(msg, MaxStatusLength, "...")
}

// copyCmd writes text to the clipboard off the update loop
func (m *Model) copyCmd(text string, rows int) tea.Cmd {
	write := m.copyToClipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	return func() tea.Msg {
		return copiedMsg{rows: rows, err: write(text)}
	}
}

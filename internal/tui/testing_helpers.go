package tui

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

// CreateTestModel creates a Model instance for testing with minimal dependencies
func CreateTestModel(t *testing.T, texts ...string) *Model {
	t.Helper()

	items := make(popoverlist.Items, len(texts))
	for i, text := range texts {
		items[i] = popoverlist.NewItem(text)
	}

	m, err := New(Options{
		Items:  items,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.width = 100
	m.height = 30
	t.Cleanup(m.Cleanup)

	return &m
}

// PressKeys sends each key to the model in order and returns the last command
func PressKeys(t *testing.T, m *Model, keys ...string) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd
	for _, key := range keys {
		_, cmd = m.Update(keyMsg(key))
	}
	return cmd
}

// keyMsg builds the tea.KeyMsg whose String() is key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// AssertModelField is a helper to check model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/child"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

var popoverField = app.ChildField(child.EditingPopover)

func TestNew_InitializesStateCorrectly(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextNormal)
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)
	AssertModelField(t, "editing", m.state.Child.Editing, child.EditingNone)
	AssertModelField(t, "items", len(m.state.Child.Items), 2)

	if m.rowEdit == nil || m.filter == nil {
		t.Fatal("state objects should be initialized")
	}
}

func TestModel_GearOpensPopoverAndTakesFocus(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta")

	PressKeys(t, m, "g")

	AssertModelField(t, "editing", m.state.Child.Editing, child.EditingPopover)
	AssertModelField(t, "focus", m.state.Focus, popoverField)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextPopover)
	if m.state.Child.Popover == nil {
		t.Fatal("popover session should be open")
	}
}

func TestModel_BackgroundTapClosesEverything(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "g", "j", " ", "esc")

	AssertModelField(t, "editing", m.state.Child.Editing, child.EditingNone)
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextNormal)
	if m.state.Child.Popover != nil {
		t.Error("popover session should be closed")
	}
}

func TestModel_DismissFromInsideLeavesStaleFocus(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "g", "q")

	AssertModelField(t, "editing", m.state.Child.Editing, child.EditingNone)
	AssertModelField(t, "focus", m.state.Focus, popoverField)
	// No session, so keys fall back to the root view
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextNormal)

	if view := m.View(); !strings.Contains(view, "(stale)") {
		t.Errorf("view should flag the stale focus:\n%s", view)
	}

	// A background tap clears it
	PressKeys(t, m, "b")
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)
}

func TestModel_ToggleFocus(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "tab")
	AssertModelField(t, "focus", m.state.Focus, popoverField)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextNormal)
	if m.statusMsg == "" {
		t.Error("expected a status message when focusing a closed popover")
	}

	PressKeys(t, m, "tab")
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)

	// Focus can leave an open popover without closing it
	PressKeys(t, m, "g", "tab")
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)
	AssertModelField(t, "editing", m.state.Child.Editing, child.EditingPopover)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextNormal)

	PressKeys(t, m, "tab")
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextPopover)
}

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"q in normal view", []string{"q"}},
		{"ctrl+c in normal view", []string{"ctrl+c"}},
		{"ctrl+c while editing", []string{"g", "j", "e", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CreateTestModel(t, "alpha")
			cmd := PressKeys(t, m, tt.keys...)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}
}

func TestModel_QInPopoverDoesNotQuit(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	cmd := PressKeys(t, m, "g", "q")
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q inside the popover should close it, not quit")
		}
	}
}

func TestModel_SessionClosedExternallyLeavesTextMode(t *testing.T) {
	m := CreateTestModel(t, "alpha")
	PressKeys(t, m, "g", "j", "e")
	AssertModelField(t, "mode", m.mode, ModeRowEdit)

	m.dispatch(app.WholeViewTapped{})

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "rowEdit.IsActive()", m.rowEdit.IsActive(), false)
}

func TestModel_CopySelection(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta", "gamma")

	var copied string
	m.copyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	cmd := PressKeys(t, m, "g", "j", " ", "j", "j", " ", "y")
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m.Update(cmd())

	if copied != "alpha\ngamma" {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(m.statusMsg, "2 rows copied") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestModel_CopyErrors(t *testing.T) {
	m := CreateTestModel(t, "alpha")
	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }

	PressKeys(t, m, "g", "y")
	if m.errorMsg != "Nothing selected" {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}

	cmd := PressKeys(t, m, "j", " ", "y")
	m.Update(cmd())
	if !strings.Contains(m.errorMsg, "no clipboard") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestModel_StatusMessagesClear(t *testing.T) {
	m := CreateTestModel(t)

	m.setStatusMessage("hello")
	m.setErrorMessage(strings.Repeat("x", 150))

	if len(m.errorMsg) != MaxStatusLength || !strings.HasSuffix(m.errorMsg, "...") {
		t.Errorf("errorMsg not truncated: %q", m.errorMsg)
	}

	m.Update(clearStatusMsg{})
	m.Update(clearErrorMsg{})
	AssertModelField(t, "statusMsg", m.statusMsg, "")
	AssertModelField(t, "errorMsg", m.errorMsg, "")
}

func TestModel_StatusMessageKeepsRunesWhole(t *testing.T) {
	m := CreateTestModel(t)

	m.setErrorMessage(strings.Repeat("é", 150))

	if !utf8.ValidString(m.errorMsg) {
		t.Errorf("errorMsg split a rune: %q", m.errorMsg)
	}
	if w := ansi.StringWidth(m.errorMsg); w > MaxStatusLength {
		t.Errorf("errorMsg width = %d, want at most %d", w, MaxStatusLength)
	}
	if !strings.HasSuffix(m.errorMsg, "...") {
		t.Errorf("errorMsg not truncated: %q", m.errorMsg)
	}
}

func TestNew_RejectsDuplicateRowIDs(t *testing.T) {
	row := popoverlist.NewItem("alpha")

	_, err := New(Options{
		Items:  popoverlist.Items{row, {ID: row.ID, Text: "dup"}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("New() error = %v, want duplicate id error", err)
	}
}

func TestModel_View(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta")

	view := m.View()
	if !strings.Contains(view, "Rows") || !strings.Contains(view, "alpha") {
		t.Errorf("root view missing rows:\n%s", view)
	}
	if strings.Contains(view, "Popover") {
		t.Error("popover pane should be hidden before the gear is pressed")
	}

	PressKeys(t, m, "g", "j", " ")
	view = m.View()
	for _, want := range []string{"Popover (1 selected)", "[x]", "close popover", "focus:   child(popover)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_ViewTooSmall(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 4})

	if view := m.View(); !strings.Contains(view, "too small") {
		t.Errorf("view = %q", view)
	}
}

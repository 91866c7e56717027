package tui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/popoverlist"
	"github.com/studiowebux/popfocus/internal/store"
)

func sessionTexts(m *Model) []string {
	if m.state.Child.Popover == nil {
		return nil
	}
	return m.state.Child.Popover.Items.Texts()
}

func focusedText(t *testing.T, m *Model) string {
	t.Helper()
	row, ok := m.focusedRow()
	if !ok {
		t.Fatal("no focused row")
	}
	return row.Text
}

func TestKeys_NavigateWraps(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta", "gamma")

	PressKeys(t, m, "g", "j")
	AssertModelField(t, "focused", focusedText(t, m), "alpha")

	PressKeys(t, m, "down", "down", "down")
	AssertModelField(t, "focused after wrap", focusedText(t, m), "alpha")

	PressKeys(t, m, "k")
	AssertModelField(t, "focused after up", focusedText(t, m), "gamma")
}

func TestKeys_RowKeysIgnoredOutsidePopover(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	// Popover bindings mean nothing in the root view
	PressKeys(t, m, "j", " ", "d")
	if m.state.Child.Popover != nil {
		t.Fatal("no session expected")
	}
	AssertModelField(t, "items", len(m.state.Child.Items), 1)
}

func TestKeys_EditRowCommitsOnBackgroundTap(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta")

	PressKeys(t, m, "g", "j", "e")
	AssertModelField(t, "mode", m.mode, ModeRowEdit)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextTextInput)

	// Typing q while editing is text, not a command
	PressKeys(t, m, "backspace", "q", "enter")
	AssertModelField(t, "mode", m.mode, ModeNormal)

	if diff := cmp.Diff([]string{"alphq", "beta"}, sessionTexts(m)); diff != "" {
		t.Errorf("session rows mismatch (-want +got):\n%s", diff)
	}
	// Not committed until the session ends
	AssertModelField(t, "committed", m.state.Child.Items[0].Text, "alpha")

	PressKeys(t, m, "esc")
	if diff := cmp.Diff([]string{"alphq", "beta"}, m.state.Child.Items.Texts()); diff != "" {
		t.Errorf("committed rows mismatch (-want +got):\n%s", diff)
	}
}

func TestKeys_EditRowCancel(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "g", "j", "e", "x", "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "text", sessionTexts(m)[0], "alpha")
	if m.state.Child.Popover == nil {
		t.Error("cancelling the edit should leave the popover open")
	}
}

func TestKeys_EditWithoutFocusedRow(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "g", "e")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "errorMsg", m.errorMsg, "No row focused")
}

func TestKeys_AddRow(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	PressKeys(t, m, "g", "a")
	AssertModelField(t, "mode", m.mode, ModeRowEdit)

	PressKeys(t, m, "n", "e", "w", "enter")

	if diff := cmp.Diff([]string{"alpha", "new"}, sessionTexts(m)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "focused", focusedText(t, m), "new")
}

func TestKeys_DeleteMovesFocusAndPrunesSelection(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta", "gamma")

	PressKeys(t, m, "g", "j", " ", "d")

	if diff := cmp.Diff([]string{"beta", "gamma"}, sessionTexts(m)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "focused", focusedText(t, m), "beta")
	AssertModelField(t, "selected", len(m.state.Child.Popover.SelectedIDs), 0)
}

func TestKeys_FilterNarrowsRows(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta", "gamma")

	PressKeys(t, m, "g", "/")
	AssertModelField(t, "mode", m.mode, ModeFilter)
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextFilter)

	PressKeys(t, m, "b", "e", "t")
	if diff := cmp.Diff([]string{"beta"}, m.visibleRows().Texts()); diff != "" {
		t.Errorf("visible rows mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "focused", focusedText(t, m), "beta")

	// Submitting keeps the filter and returns keys to the popover
	PressKeys(t, m, "enter")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "filter.GetQuery()", m.filter.GetQuery(), "bet")
	AssertModelField(t, "keyContext", m.keyContext(), keybinds.ContextPopover)

	// Selection goes to the filtered row
	PressKeys(t, m, " ")
	AssertModelField(t, "selected", len(m.state.Child.Popover.SelectedIDs), 1)

	// Closing the session drops the filter
	PressKeys(t, m, "esc")
	AssertModelField(t, "filter.IsActive()", m.filter.IsActive(), false)
}

func TestKeys_FilterCancelClearsQuery(t *testing.T) {
	m := CreateTestModel(t, "alpha", "beta")

	PressKeys(t, m, "g", "/", "z", "z", "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "filter.IsActive()", m.filter.IsActive(), false)
	AssertModelField(t, "visible", len(m.visibleRows()), 2)
	if m.state.Child.Popover == nil {
		t.Error("cancelling the filter should leave the popover open")
	}
}

func TestKeys_CustomBindings(t *testing.T) {
	registry := keybinds.NewDefaultRegistry()
	registry.Unregister(keybinds.ContextPopover, keybinds.ActionToggleSelect)
	registry.Register(keybinds.ContextPopover, "x", keybinds.ActionToggleSelect)
	registry.Register(keybinds.ContextNormal, "o", keybinds.ActionOpenPopover)

	m, err := New(Options{
		Items:    popoverlist.Items{popoverlist.NewItem("alpha")},
		Keybinds: registry,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}

	PressKeys(t, &m, "o", "j", " ")
	AssertModelField(t, "selected after space", len(m.state.Child.Popover.SelectedIDs), 0)

	PressKeys(t, &m, "x")
	AssertModelField(t, "selected after x", len(m.state.Child.Popover.SelectedIDs), 1)
}

func TestKeys_DispatchesStoreActions(t *testing.T) {
	m := CreateTestModel(t, "alpha")

	var names []string
	unsubscribe := m.store.Subscribe(func(c store.Change[app.State, app.Action]) {
		names = append(names, c.Action.ActionName())
	})
	defer unsubscribe()

	PressKeys(t, m, "g", "j", "esc")

	want := []string{"child.gear_tapped", "child.popover.set_focused_item_id", "whole_view_tapped"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("dispatched actions mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "seq", m.store.Seq(), uint64(3))
	AssertModelField(t, "focus", m.state.Focus, app.FieldNone)
}

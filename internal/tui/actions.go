package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/child"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

// openPopover presses the gear button
func (m *Model) openPopover() {
	m.filter.Reset()
	m.dispatch(app.Child{Action: child.GearTapped{}})
}

// backgroundTap taps the empty area of the root view
func (m *Model) backgroundTap() {
	m.dispatch(app.WholeViewTapped{})
}

// dismissPopover closes the session through the child. Root focus is not
// touched here, so the footer keeps showing the stale field.
func (m *Model) dismissPopover() {
	m.dispatch(app.Child{Action: child.PopoverDismissed{}})
}

// toggleFocus moves root focus to the popover field or clears it
func (m *Model) toggleFocus() tea.Cmd {
	if m.state.Focus.IsNone() {
		m.dispatch(app.SetFocus{Field: app.ChildField(child.EditingPopover)})
		if m.state.Child.Popover == nil {
			return m.setStatusMessage("Focus set on popover field, but no popover is open")
		}
		return nil
	}
	m.dispatch(app.SetFocus{Field: app.FieldNone})
	return nil
}

// sendPopover wraps a popover list action for the root store
func (m *Model) sendPopover(action popoverlist.Action) {
	m.dispatch(app.Child{Action: child.Popover{Action: action}})
}

// visibleRows returns the session rows after the filter is applied
func (m *Model) visibleRows() popoverlist.Items {
	if m.state.Child.Popover == nil {
		return nil
	}
	return m.filter.Apply(m.state.Child.Popover.Items)
}

// focusedRow returns the focused session row, if any
func (m *Model) focusedRow() (popoverlist.Item, bool) {
	p := m.state.Child.Popover
	if p == nil || p.FocusedItemID == nil {
		return popoverlist.Item{}, false
	}
	idx := p.Items.Index(*p.FocusedItemID)
	if idx < 0 {
		return popoverlist.Item{}, false
	}
	return p.Items[idx], true
}

// moveRowFocus moves row focus through the visible rows, wrapping
func (m *Model) moveRowFocus(delta int) {
	p := m.state.Child.Popover
	if p == nil {
		return
	}
	rows := m.visibleRows()

	current := p.FocusedItemID
	if current != nil && !rows.Contains(*current) {
		current = nil
	}

	next := popoverlist.NextID(rows, current)
	if delta < 0 {
		next = popoverlist.PrevID(rows, current)
	}
	if next == nil {
		return
	}
	m.sendPopover(popoverlist.SetFocusedItemID{ID: next})
}

func (m *Model) toggleFocusedRow() {
	row, ok := m.focusedRow()
	if !ok {
		return
	}
	m.sendPopover(popoverlist.ToggleSelected{ID: row.ID})
}

// startRowEdit opens the text input on the focused row
func (m *Model) startRowEdit() tea.Cmd {
	row, ok := m.focusedRow()
	if !ok {
		return m.setErrorMessage("No row focused")
	}

	m.rowEdit.Initialize(row.ID, row.Text)
	m.textInput.SetValue(row.Text)
	m.textInput.CursorEnd()
	m.mode = ModeRowEdit
	return m.textInput.Focus()
}

// submitRowEdit commits the text input to the session row
func (m *Model) submitRowEdit() tea.Cmd {
	id := m.rowEdit.GetID()
	text := strings.TrimSpace(m.textInput.Value())
	changed := text != m.rowEdit.GetOriginal()
	m.exitTextMode()

	if !changed {
		return nil
	}
	m.sendPopover(popoverlist.SetItemText{ID: id, Text: text})
	return m.setStatusMessage("Row updated")
}

// addRow appends an empty row, focuses it and starts editing
func (m *Model) addRow() tea.Cmd {
	p := m.state.Child.Popover
	if p == nil {
		return nil
	}

	m.filter.Reset()
	item := popoverlist.NewItem("")
	items := append(p.Items.Clone(), item)
	m.sendPopover(popoverlist.SetItems{Items: items})
	m.sendPopover(popoverlist.SetFocusedItemID{ID: &item.ID})
	return m.startRowEdit()
}

// deleteFocusedRow removes the focused row and moves focus to the next one
func (m *Model) deleteFocusedRow() tea.Cmd {
	row, ok := m.focusedRow()
	if !ok {
		return m.setErrorMessage("No row focused")
	}

	rows := m.visibleRows()
	var next *popoverlist.Item
	if len(rows) > 1 {
		id := popoverlist.NextID(rows, &row.ID)
		if idx := rows.Index(*id); idx >= 0 {
			next = &rows[idx]
		}
	}

	m.sendPopover(popoverlist.SetItems{Items: m.state.Child.Popover.Items.Without(row.ID)})
	if next != nil {
		m.sendPopover(popoverlist.SetFocusedItemID{ID: &next.ID})
	}
	return m.setStatusMessage("Row deleted")
}

// copySelection copies the selected rows' text, one per line
func (m *Model) copySelection() tea.Cmd {
	p := m.state.Child.Popover
	if p == nil {
		return nil
	}
	selected := p.Selected()
	if len(selected) == 0 {
		return m.setErrorMessage("Nothing selected")
	}
	return m.copyCmd(strings.Join(selected.Texts(), "\n"), len(selected))
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

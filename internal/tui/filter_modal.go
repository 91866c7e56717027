package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

// openFilter starts typing a fuzzy query over the session rows
func (m *Model) openFilter() tea.Cmd {
	m.mode = ModeFilter
	m.textInput.SetValue(m.filter.GetQuery())
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// handleFilterKeys handles keys while the filter query is being typed
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextFilter, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			// Keep the query applied and hand keys back to the popover
			m.mode = ModeNormal
			m.textInput.Blur()
			m.textInput.SetValue("")
			m.focusFirstVisible()
			return nil

		case keybinds.ActionTextCancel:
			m.filter.Reset()
			m.exitTextMode()
			return nil

		case keybinds.ActionNavigateUp:
			m.moveRowFocus(-1)
			return nil

		case keybinds.ActionNavigateDown:
			m.moveRowFocus(1)
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.filter.SetQuery(m.textInput.Value())
	m.focusFirstVisible()
	return cmd
}

// focusFirstVisible moves row focus onto the best match when the focused
// row has been filtered out
func (m *Model) focusFirstVisible() {
	p := m.state.Child.Popover
	if p == nil {
		return
	}
	rows := m.visibleRows()
	if len(rows) == 0 {
		return
	}
	if p.FocusedItemID != nil && rows.Contains(*p.FocusedItemID) {
		return
	}
	id := rows[0].ID
	m.sendPopover(popoverlist.SetFocusedItemID{ID: &id})
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/child"
	"github.com/studiowebux/popfocus/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	// Mode-specific handling
	switch m.mode {
	case ModeRowEdit:
		return m.handleRowEditKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	}

	if m.keyContext() == keybinds.ContextPopover {
		return m.handlePopoverKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// popoverHasFocus reports whether keyboard input belongs to the popover
func (m *Model) popoverHasFocus() bool {
	return m.state.Child.Popover != nil && m.state.Focus == app.ChildField(child.EditingPopover)
}

// keyContext returns the keybinding context for the current mode and focus
func (m *Model) keyContext() keybinds.Context {
	switch m.mode {
	case ModeRowEdit:
		return keybinds.ContextTextInput
	case ModeFilter:
		return keybinds.ContextFilter
	}
	if m.popoverHasFocus() {
		return keybinds.ContextPopover
	}
	return keybinds.ContextNormal
}

// handleNormalKeys handles keys for the root view
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionOpenPopover:
		m.openPopover()

	case keybinds.ActionBackgroundTap:
		m.backgroundTap()

	case keybinds.ActionToggleFocus:
		return m.toggleFocus()
	}

	return nil
}

// handlePopoverKeys handles keys while the popover holds focus
func (m *Model) handlePopoverKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextPopover, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionDismissPopover:
		m.dismissPopover()

	case keybinds.ActionBackgroundTap:
		m.backgroundTap()

	case keybinds.ActionToggleFocus:
		return m.toggleFocus()

	case keybinds.ActionNavigateUp:
		m.moveRowFocus(-1)

	case keybinds.ActionNavigateDown:
		m.moveRowFocus(1)

	case keybinds.ActionToggleSelect:
		m.toggleFocusedRow()

	case keybinds.ActionEditRow:
		return m.startRowEdit()

	case keybinds.ActionAddItem:
		return m.addRow()

	case keybinds.ActionDeleteItem:
		return m.deleteFocusedRow()

	case keybinds.ActionOpenFilter:
		return m.openFilter()

	case keybinds.ActionCopySelection:
		return m.copySelection()
	}

	return nil
}

// handleRowEditKeys handles keys while editing a row's text
func (m *Model) handleRowEditKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.submitRowEdit()
		case keybinds.ActionTextCancel:
			m.exitTextMode()
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

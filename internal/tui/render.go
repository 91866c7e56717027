package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/popfocus/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// footerActions lists the hints shown per keybinding context
var footerActions = map[keybinds.Context][]keybinds.Action{
	keybinds.ContextNormal: {
		keybinds.ActionOpenPopover,
		keybinds.ActionBackgroundTap,
		keybinds.ActionToggleFocus,
		keybinds.ActionQuit,
	},
	keybinds.ContextPopover: {
		keybinds.ActionNavigateDown,
		keybinds.ActionToggleSelect,
		keybinds.ActionEditRow,
		keybinds.ActionAddItem,
		keybinds.ActionDeleteItem,
		keybinds.ActionOpenFilter,
		keybinds.ActionCopySelection,
		keybinds.ActionDismissPopover,
		keybinds.ActionBackgroundTap,
		keybinds.ActionToggleFocus,
	},
	keybinds.ContextTextInput: {
		keybinds.ActionTextSubmit,
		keybinds.ActionTextCancel,
	},
	keybinds.ContextFilter: {
		keybinds.ActionTextSubmit,
		keybinds.ActionTextCancel,
		keybinds.ActionNavigateDown,
	},
}

// renderMain renders the rows pane, the popover pane when a session is
// open, and the status bar
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}
	if m.width < MinWidth || m.height < MinHeight {
		return styleWarning.Render("Terminal too small")
	}

	popoverFocused := m.popoverHasFocus()
	leftColor, rightColor := colorGray, colorGray
	if m.state.Focus.IsNone() {
		leftColor = colorGreen
	}
	if popoverFocused {
		rightColor = colorGreen
	}

	view := renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:       m.width - ModalWidthMargin,
		ModalHeight:      m.height - ModalHeightMargin,
		IsSplitView:      m.state.Child.Popover != nil,
		LeftTitle:        "Rows",
		LeftContent:      m.renderRows(),
		LeftBorderColor:  leftColor,
		LeftIsFocused:    m.state.Focus.IsNone(),
		RightTitle:       m.popoverTitle(),
		RightContent:     m.renderPopover(),
		RightBorderColor: rightColor,
		RightIsFocused:   popoverFocused,
		Footer:           m.renderFooter(),
		LeftWidthRatio:   SplitViewRatio,
	}, m.width, m.height-1)

	return lipgloss.JoinVertical(lipgloss.Left, view, m.renderStatusBar())
}

// renderRows renders the committed rows and the root state
func (m Model) renderRows() string {
	var b strings.Builder

	gear := "[⚙ " + m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenPopover) + "]"
	if m.state.Child.IsEditing() {
		b.WriteString(styleSuccess.Render(gear) + "\n\n")
	} else {
		b.WriteString(styleTitle.Render(gear) + "\n\n")
	}

	if len(m.state.Child.Items) == 0 {
		b.WriteString(styleSubtle.Render("No rows") + "\n")
	}
	for _, it := range m.state.Child.Items {
		b.WriteString("  " + displayText(it.Text) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("editing: ") + m.state.Child.Editing.String() + "\n")

	focus := m.state.Focus.String()
	if !m.state.Focus.IsNone() && m.state.Child.Popover == nil {
		// Focus still names the popover after it was dismissed from inside
		focus = styleWarning.Render(focus + " (stale)")
	}
	b.WriteString(styleSubtle.Render("focus:   ") + focus + "\n")

	return b.String()
}

func (m Model) popoverTitle() string {
	p := m.state.Child.Popover
	if p == nil {
		return "Popover"
	}
	return fmt.Sprintf("Popover (%d selected)", len(p.SelectedIDs))
}

// renderPopover renders the session rows with selection and row focus
func (m Model) renderPopover() string {
	p := m.state.Child.Popover
	if p == nil {
		return ""
	}

	var b strings.Builder

	switch {
	case m.mode == ModeFilter:
		b.WriteString("/" + m.textInput.View() + "\n")
	case m.filter.IsActive():
		b.WriteString(styleWarning.Render("filter: "+m.filter.GetQuery()) + "\n")
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		if m.filter.IsActive() {
			b.WriteString(styleSubtle.Render("No matches") + "\n")
		} else {
			b.WriteString(styleSubtle.Render("No rows") + "\n")
		}
	}

	for _, it := range rows {
		cursor := " "
		if p.IsFocused(it.ID) {
			cursor = ">"
		}
		mark := "[ ]"
		if p.IsSelected(it.ID) {
			mark = styleSuccess.Render("[x]")
		}

		text := displayText(it.Text)
		if m.mode == ModeRowEdit && m.rowEdit.GetID() == it.ID {
			text = m.textInput.View()
		} else if p.IsFocused(it.ID) {
			text = styleSelected.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, mark, text))
	}

	return b.String()
}

// renderFooter renders keybinding hints for the current context
func (m Model) renderFooter() string {
	ctx := m.keyContext()

	var hints []string
	for _, action := range footerActions[ctx] {
		keys := m.keybinds.GetBindingString(ctx, action)
		if keys == "unbound" {
			continue
		}
		hints = append(hints, keys+": "+strings.ToLower(keybinds.GetActionInfo(action).Description))
	}
	return strings.Join(hints, " • ")
}

// renderStatusBar renders the mode on the left and messages on the right
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("Mode: %s", m.mode)

	right := ""
	if m.errorMsg != "" {
		right = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		right = styleSuccess.Render(m.statusMsg)
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// popoverWidth returns the inner width of the popover pane
func (m Model) popoverWidth() int {
	_, right := splitWidths(SplitPaneConfig{
		ModalWidth:     m.width - ModalWidthMargin,
		IsSplitView:    true,
		LeftWidthRatio: SplitViewRatio,
	})
	return right
}

func displayText(text string) string {
	if text == "" {
		return styleSubtle.Render("(empty)")
	}
	return text
}

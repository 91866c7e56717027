package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// SplitPaneConfig defines the configuration for the split-pane layout
type SplitPaneConfig struct {
	// Dimensions
	ModalWidth  int
	ModalHeight int

	// Split view control
	IsSplitView bool // If false, shows only left pane at full width

	// Left pane
	LeftTitle       string
	LeftContent     string
	LeftBorderColor lipgloss.AdaptiveColor
	LeftIsFocused   bool

	// Right pane (only used if IsSplitView is true)
	RightTitle       string
	RightContent     string
	RightBorderColor lipgloss.AdaptiveColor
	RightIsFocused   bool

	// Footer
	Footer string

	// Width ratio for split view (0.0 to 1.0, default 0.5 for equal split)
	LeftWidthRatio float64
}

// splitWidths returns the left and right pane widths for a config
func splitWidths(cfg SplitPaneConfig) (int, int) {
	if !cfg.IsSplitView {
		return cfg.ModalWidth, 0
	}

	ratio := cfg.LeftWidthRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	left := int(float64(cfg.ModalWidth-SplitPaneBorderWidth) * ratio)
	return left, cfg.ModalWidth - left - SplitPaneBorderWidth
}

// renderSplitPaneModal renders the rows pane and, when open, the popover pane
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := cfg.ModalHeight - 4 // Account for borders and footer
	leftWidth, rightWidth := splitWidths(cfg)

	titleStyle := func(focused bool) lipgloss.Style {
		if focused {
			return styleTitleFocused
		}
		return styleTitleUnfocused
	}

	leftPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cfg.LeftBorderColor).
		Width(leftWidth).
		Height(paneHeight).
		Padding(0, 1).
		Render(titleStyle(cfg.LeftIsFocused).Render(cfg.LeftTitle) + "\n" + cfg.LeftContent)

	mainView := leftPane
	if cfg.IsSplitView {
		rightPane := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cfg.RightBorderColor).
			Width(rightWidth).
			Height(paneHeight).
			Padding(0, 1).
			Render(titleStyle(cfg.RightIsFocused).Render(cfg.RightTitle) + "\n" + cfg.RightContent)

		mainView = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		styleSubtle.Render(cfg.Footer),
	)

	return lipgloss.Place(
		totalWidth,
		totalHeight,
		lipgloss.Center,
		lipgloss.Top,
		content,
	)
}

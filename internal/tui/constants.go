package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins around the split-pane view
	ModalWidthMargin  = 4 // m.width - 4
	ModalHeightMargin = 3 // m.height - 3 (status bar + breathing room)

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 2 // Horizontal padding (left + right)

	// Split Pane Layout
	SplitPaneBorderWidth = 3    // Border width between split panes
	SplitViewRatio       = 0.45 // Rows pane share when the popover is open

	// Row rendering
	RowPrefixWidth = 6 // "> [x] "

	// Minimum size before the view gives up rendering panes
	MinWidth  = 30
	MinHeight = 8
)

const (
	// MaxStatusLength is the footer message limit before truncation
	MaxStatusLength = 100

	// StatusMessageTimeout clears status and error messages
	StatusMessageTimeout = 4 * time.Second

	// MaxRowLength limits the text input while editing a row
	MaxRowLength = 256
)

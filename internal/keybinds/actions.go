package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // Main view, no editing surface focused
	ContextPopover   Context = "popover"    // Popover session holds focus
	ContextTextInput Context = "text_input" // Editing a row's text
	ContextFilter    Context = "filter"     // Typing a fuzzy filter query
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Root view actions
	ActionOpenPopover   Action = "open_popover"   // Gear button
	ActionBackgroundTap Action = "background_tap" // Tap outside any editing surface
	ActionToggleFocus   Action = "toggle_focus"   // Move focus to or away from the popover

	// Popover actions
	ActionDismissPopover Action = "dismiss_popover" // Close the popover and commit edits
	ActionNavigateUp     Action = "navigate_up"     // Focus previous row
	ActionNavigateDown   Action = "navigate_down"   // Focus next row
	ActionToggleSelect   Action = "toggle_select"   // Toggle selection of focused row
	ActionEditRow        Action = "edit_row"        // Edit focused row's text
	ActionAddItem        Action = "add_item"        // Append a new row
	ActionDeleteItem     Action = "delete_item"     // Remove focused row
	ActionOpenFilter     Action = "open_filter"     // Fuzzy filter rows
	ActionCopySelection  Action = "copy_selection"  // Copy selected rows to clipboard

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:           {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:      {ActionQuitForce, "Force quit", "Global"},
	ActionOpenPopover:    {ActionOpenPopover, "Open popover", "View"},
	ActionBackgroundTap:  {ActionBackgroundTap, "Tap background", "View"},
	ActionToggleFocus:    {ActionToggleFocus, "Toggle focus", "View"},
	ActionDismissPopover: {ActionDismissPopover, "Close popover", "Popover"},
	ActionNavigateUp:     {ActionNavigateUp, "Move up", "Popover"},
	ActionNavigateDown:   {ActionNavigateDown, "Move down", "Popover"},
	ActionToggleSelect:   {ActionToggleSelect, "Toggle selection", "Popover"},
	ActionEditRow:        {ActionEditRow, "Edit row", "Popover"},
	ActionAddItem:        {ActionAddItem, "Add row", "Popover"},
	ActionDeleteItem:     {ActionDeleteItem, "Delete row", "Popover"},
	ActionOpenFilter:     {ActionOpenFilter, "Filter rows", "Popover"},
	ActionCopySelection:  {ActionCopySelection, "Copy selection", "Popover"},
	ActionTextSubmit:     {ActionTextSubmit, "Submit", "Text Input"},
	ActionTextCancel:     {ActionTextCancel, "Cancel", "Text Input"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the application handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// AllContexts lists every context in lookup order
func AllContexts() []Context {
	return []Context{ContextGlobal, ContextNormal, ContextPopover, ContextTextInput, ContextFilter}
}

/*
Package tui implements the terminal user interface for popfocus.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern, but
the domain state does not live in the Model. Every user intent becomes an
app.Action sent to the application store, and the Model keeps only the
latest snapshot for rendering:

  - model.go: Model struct, Update loop and status messages
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Translates key actions into store actions
  - filter_modal.go: Fuzzy filtering of the popover rows
  - render.go: Rows pane, popover pane and status bar

# Focus

Keys are routed by keybinding context. The popover context is active only
while the root focus names the popover field and a session is open, so a
stale focus left behind by closing the popover from inside falls back to
the normal context.

# State Management

View-local state that never reaches the store is held in small objects
guarded by sync.RWMutex:
  - RowEditState: the row being edited
  - FilterState: the fuzzy query applied to the popover rows
*/
package tui

package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerPopoverBindings(r)
	registerTextInputBindings(r)
	registerFilterBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings sets up keybindings for the main view
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)
	r.RegisterMultiple(ContextNormal, []string{"g", "enter"}, ActionOpenPopover)
	r.RegisterMultiple(ContextNormal, []string{"esc", "b"}, ActionBackgroundTap)
	r.Register(ContextNormal, "tab", ActionToggleFocus)
}

// registerPopoverBindings sets up keybindings while the popover holds focus
func registerPopoverBindings(r *Registry) {
	r.Register(ContextPopover, "q", ActionDismissPopover)
	r.Register(ContextPopover, "esc", ActionBackgroundTap)
	r.Register(ContextPopover, "tab", ActionToggleFocus)
	r.RegisterMultiple(ContextPopover, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextPopover, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextPopover, " ", ActionToggleSelect)
	r.RegisterMultiple(ContextPopover, []string{"enter", "e"}, ActionEditRow)
	r.Register(ContextPopover, "a", ActionAddItem)
	r.Register(ContextPopover, "d", ActionDeleteItem)
	r.Register(ContextPopover, "/", ActionOpenFilter)
	r.Register(ContextPopover, "y", ActionCopySelection)
}

// registerTextInputBindings sets up bindings while editing a row
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

// registerFilterBindings sets up bindings while typing a filter query
func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionTextSubmit)
	r.Register(ContextFilter, "esc", ActionTextCancel)
	r.Register(ContextFilter, "up", ActionNavigateUp)
	r.Register(ContextFilter, "down", ActionNavigateDown)
}

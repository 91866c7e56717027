/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within a context. The TUI picks the context from the
current focus: normal when nothing is focused, popover when the popover
session holds focus, and text_input or filter while a text field is open.
Lookup checks the specific context first, then global.

# Components

Registry (registry.go):
  - Central storage for keybindings
  - Context-aware key matching with global fallback

Validator (validator.go):
  - Rejects unknown action names
  - Reports contexts the user could not leave
  - Warns about shadowed global keys and rebound reserved keys

Defaults (defaults.go):
  - Default keybinding configuration used when no custom config exists

# Configuration File Format

Keybindings live in keybinds.jsonc. Comments and trailing commas are
allowed. Each section maps a key to an action; "space" names the space
bar and an empty action unbinds a default key:

	{
	  "version": "1.0",
	  // swap selection and editing
	  "popover": {
	    "space": "edit_row",
	    "x": "toggle_select",
	  },
	}

# Example Usage

	registry, err := LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if action, ok := registry.Match(ContextPopover, msg.String()); ok {
		// Handle action
	}

# Thread Safety

Registries are built during startup and only read afterwards.
*/
package keybinds

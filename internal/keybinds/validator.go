package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "missing", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool

	// contextHierarchy defines context inheritance
	contextHierarchy map[Context]Context

	// exits lists, per context, the actions of which at least one must be
	// bound so the user can leave that context
	exits map[Context][]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			"ctrl+c": true, // Force quit should always work
		},
		contextHierarchy: map[Context]Context{
			ContextNormal:    ContextGlobal,
			ContextPopover:   ContextGlobal,
			ContextTextInput: ContextGlobal,
			ContextFilter:    ContextGlobal,
		},
		exits: map[Context][]Action{
			ContextNormal:    {ActionQuit},
			ContextPopover:   {ActionBackgroundTap, ActionDismissPopover, ActionToggleFocus},
			ContextTextInput: {ActionTextCancel, ActionTextSubmit},
			ContextFilter:    {ActionTextCancel, ActionTextSubmit},
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkUnknownActions(registry, result)
	v.checkReservedKeys(registry, result)
	v.checkExits(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration before applying it on top of the
// defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkDuplicateBindings(config, result)
	if result.HasErrors() {
		return result
	}

	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Message: err.Error(),
		})
		return result
	}

	return v.ValidateRegistry(registry)
}

// checkDuplicateBindings finds keys that collide once aliases are resolved,
// such as "space" and " " in the same section
func (v *Validator) checkDuplicateBindings(config *Config, result *ValidationResult) {
	for context, bindings := range config.sections() {
		seen := make(map[string][]string)
		for key := range bindings {
			n := normalizeKey(key)
			seen[n] = append(seen[n], key)
		}

		for key, spellings := range seen {
			if len(spellings) > 1 {
				sort.Strings(spellings)
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     displayKey(key),
					Message: fmt.Sprintf("key bound %d times (%s)", len(spellings), strings.Join(spellings, ", ")),
				})
			}
		}
	}
}

func (v *Validator) checkUnknownActions(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if !IsKnownAction(action) {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     displayKey(key),
					Message: fmt.Sprintf("unknown action %q", action),
				})
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if v.reservedKeys[key] && action != ActionQuitForce {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkExits reports contexts the user could not leave with the current
// bindings
func (v *Validator) checkExits(registry *Registry, result *ValidationResult) {
	for context, actions := range v.exits {
		found := false
		for _, action := range actions {
			if len(registry.keysFor(context, action)) > 0 || len(registry.keysFor(v.contextHierarchy[context], action)) > 0 {
				found = true
				break
			}
		}
		if !found {
			names := make([]string, len(actions))
			for i, a := range actions {
				names[i] = string(a)
			}
			result.Errors = append(result.Errors, ValidationError{
				Type:    "missing",
				Context: context,
				Message: "no key bound to any of " + strings.Join(names, ", "),
			})
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		parent, ok := v.contextHierarchy[context]
		if !ok {
			continue
		}
		parentBindings := registry.bindings[parent]

		for key, action := range bindings {
			if parentAction, hasParent := parentBindings[key]; hasParent && action != parentAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     displayKey(key),
					Message: fmt.Sprintf("shadows %s binding (%s -> %s)", parent, parentAction, action),
				})
			}
		}
	}
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

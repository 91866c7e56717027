package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	for _, ctx := range AllContexts() {
		if ctx == ContextGlobal {
			continue
		}
		if parent, ok := v.contextHierarchy[ctx]; !ok || parent != ContextGlobal {
			t.Errorf("context %s should inherit from global, got %q", ctx, parent)
		}
		if len(v.exits[ctx]) == 0 {
			t.Errorf("context %s has no exit actions", ctx)
		}
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextPopover,
				Key:     "space",
				Message: "key bound 2 times",
			},
			expected: "[conflict] space in context 'popover': key bound 2 times",
		},
		{
			name: "missing error",
			err: ValidationError{
				Type:    "missing",
				Context: ContextFilter,
				Message: "no key bound",
			},
			expected: "[missing]  in context 'filter': no key bound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "empty",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "errors and warnings",
			result: &ValidationResult{
				Errors:   []ValidationError{{Type: "invalid", Context: ContextNormal, Key: "x", Message: "bad"}},
				Warnings: []ValidationError{{Type: "warning", Context: ContextPopover, Key: "q", Message: "shadow"}},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "[invalid] x", "[warning] q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestValidateRegistry_Defaults(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry should be clean:\n%s", result.String())
	}
}

func TestCheckUnknownActions(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextPopover, "z", Action("launch_rocket"))

	result := NewValidator().ValidateRegistry(r)
	if !result.HasErrors() {
		t.Fatal("expected unknown action error")
	}
	if result.Errors[0].Type != "invalid" || result.Errors[0].Key != "z" {
		t.Errorf("unexpected error: %+v", result.Errors[0])
	}
}

func TestCheckReservedKeys(t *testing.T) {
	tests := []struct {
		name     string
		context  Context
		action   Action
		wantWarn bool
	}{
		{"force quit in global", ContextGlobal, ActionQuitForce, false},
		{"rebound in global", ContextGlobal, ActionQuit, true},
		{"rebound in popover", ContextPopover, ActionDismissPopover, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(tt.context, "ctrl+c", tt.action)

			result := &ValidationResult{}
			NewValidator().checkReservedKeys(r, result)

			if result.HasWarnings() != tt.wantWarn {
				t.Errorf("HasWarnings() = %v, want %v", result.HasWarnings(), tt.wantWarn)
			}
		})
	}
}

func TestCheckExits(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unregister(ContextPopover, ActionBackgroundTap)
	r.Unregister(ContextPopover, ActionDismissPopover)

	result := &ValidationResult{}
	NewValidator().checkExits(r, result)
	if result.HasErrors() {
		t.Fatalf("toggle_focus still exits the popover: %s", result.String())
	}

	r.Unregister(ContextPopover, ActionToggleFocus)
	NewValidator().checkExits(r, result)
	if len(result.Errors) != 1 || result.Errors[0].Context != ContextPopover {
		t.Errorf("expected one missing exit for popover, got %s", result.String())
	}
}

func TestCheckExits_InheritsFromGlobal(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unregister(ContextNormal, ActionQuit)
	r.Register(ContextGlobal, "ctrl+q", ActionQuit)

	result := &ValidationResult{}
	NewValidator().checkExits(r, result)
	if result.HasErrors() {
		t.Errorf("global quit should satisfy normal: %s", result.String())
	}
}

func TestCheckShadowing(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextPopover, "q", ActionDismissPopover)
	r.Register(ContextNormal, "q", ActionQuit)

	result := &ValidationResult{}
	NewValidator().checkShadowing(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %s", len(result.Warnings), result.String())
	}
	w := result.Warnings[0]
	if w.Context != ContextPopover || w.Key != "q" {
		t.Errorf("unexpected warning: %+v", w)
	}
	if !strings.Contains(w.Message, "quit -> dismiss_popover") {
		t.Errorf("Message = %q", w.Message)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantErr   bool
		wantType  string
		wantWarns bool
	}{
		{
			name:   "empty config keeps defaults",
			config: &Config{Version: "1.0"},
		},
		{
			name:   "rebinding a popover key",
			config: &Config{Popover: map[string]string{"x": "toggle_select"}},
		},
		{
			name:     "alias collision",
			config:   &Config{Popover: map[string]string{"space": "toggle_select", " ": "edit_row"}},
			wantErr:  true,
			wantType: "conflict",
		},
		{
			name:     "unknown action",
			config:   &Config{Normal: map[string]string{"x": "explode"}},
			wantErr:  true,
			wantType: "invalid",
		},
		{
			name:     "unbinding every exit",
			config:   &Config{TextInput: map[string]string{"enter": "", "esc": ""}},
			wantErr:  true,
			wantType: "missing",
		},
		{
			name:      "shadowing force quit",
			config:    &Config{Filter: map[string]string{"ctrl+c": "text_cancel"}},
			wantWarns: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)

			if result.HasErrors() != tt.wantErr {
				t.Fatalf("HasErrors() = %v, want %v\n%s", result.HasErrors(), tt.wantErr, result.String())
			}
			if tt.wantErr && result.Errors[0].Type != tt.wantType {
				t.Errorf("error type = %q, want %q", result.Errors[0].Type, tt.wantType)
			}
			if tt.wantWarns && !result.HasWarnings() {
				t.Error("expected warnings")
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"", true},
		{"ctrl+", true},
		{"alt+", true},
		{"ctrl+c", false},
		{"q", false},
		{"space", false},
		{" ", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// a key to an action name; an empty action removes the key.
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	Normal    map[string]string `json:"normal,omitempty"`
	Popover   map[string]string `json:"popover,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
	Filter    map[string]string `json:"filter,omitempty"`
}

const configHeader = `// popfocus keybindings
// Each section maps a key to an action. Use "space" for the space bar and
// an empty string to unbind a default key.
`

// keyAliases lets config files name keys that are awkward in JSON
var keyAliases = map[string]string{
	"space": " ",
}

func normalizeKey(key string) string {
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

func displayKey(key string) string {
	for alias, k := range keyAliases {
		if k == key {
			return alias
		}
	}
	return key
}

// LoadConfig loads keybinding configuration from a JSON file. Comments and
// trailing commas are accepted.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", filepath.Base(path), err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	out := append([]byte(configHeader), data...)
	out = append(out, '\n')
	return os.WriteFile(path, out, 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextPopover:   c.Popover,
		ContextTextInput: c.TextInput,
		ContextFilter:    c.Filter,
	}
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("context %s: %w", context, err)
			}
			key = normalizeKey(key)

			if actionStr == "" {
				delete(registry.bindings[context], key)
				continue
			}

			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("context %s: unknown action %q for key %q", context, actionStr, key)
			}
			registry.Register(context, key, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults exports default keybindings as a config file
func ExportDefaults() *Config {
	return ExportRegistry(NewDefaultRegistry())
}

// ExportRegistry converts a registry back into config form
func ExportRegistry(registry *Registry) *Config {
	config := &Config{
		Version:   "1.0",
		Global:    map[string]string{},
		Normal:    map[string]string{},
		Popover:   map[string]string{},
		TextInput: map[string]string{},
		Filter:    map[string]string{},
	}

	for context, section := range config.sections() {
		for key, action := range registry.bindings[context] {
			section[displayKey(key)] = string(action)
		}
	}

	return config
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "POPFOCUS_HOME"

	localItemsFile = "items.yaml"
)

var (
	// ConfigDir is the global configuration directory (~/.popfocus)
	ConfigDir string

	// DatabasePath is the SQLite database file for the action journal
	DatabasePath string

	// KeybindsFile holds user keybinding overrides (JSON with comments)
	KeybindsFile string

	// ItemsFile is the default seed list for the editor rows
	ItemsFile string

	// LogFile receives structured logs while the TUI owns the terminal
	LogFile string
)

const defaultItems = `# Rows shown in the editor. Ids are generated when omitted.
items:
  - text: First row
  - text: Second row
  - text: Third row
`

// Initialize sets up the configuration directories and files
// It creates ~/.popfocus/ (or $POPFOCUS_HOME) if it doesn't exist
func Initialize() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".popfocus")
	}

	expanded, err := ExpandPath(dir)
	if err != nil {
		return err
	}

	// Set global paths
	ConfigDir = expanded
	DatabasePath = filepath.Join(ConfigDir, "popfocus.db")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	ItemsFile = filepath.Join(ConfigDir, "items.yaml")
	LogFile = filepath.Join(ConfigDir, "popfocus.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default items file if it doesn't exist
	if _, err := os.Stat(ItemsFile); os.IsNotExist(err) {
		if err := os.WriteFile(ItemsFile, []byte(defaultItems), FilePermissions); err != nil {
			return fmt.Errorf("failed to create items file: %w", err)
		}
	}

	return nil
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// GetItemsFilePath returns the items file path (local or global)
func GetItemsFilePath() string {
	if _, err := os.Stat(localItemsFile); err == nil {
		return localItemsFile
	}
	return ItemsFile
}

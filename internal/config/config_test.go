package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize_UsesHomeOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pf")
	t.Setenv(HomeEnv, dir)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", ConfigDir, dir)
	}
	for name, path := range map[string]string{
		"DatabasePath": DatabasePath,
		"KeybindsFile": KeybindsFile,
		"ItemsFile":    ItemsFile,
		"LogFile":      LogFile,
	} {
		if filepath.Dir(path) != dir {
			t.Errorf("%s = %q, want it inside %q", name, path, dir)
		}
	}

	data, err := os.ReadFile(ItemsFile)
	if err != nil {
		t.Fatalf("default items file not created: %v", err)
	}
	if !strings.Contains(string(data), "items:") {
		t.Errorf("default items file = %q", data)
	}
}

func TestInitialize_KeepsExistingItems(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	custom := []byte("items:\n  - text: mine\n")
	if err := os.WriteFile(filepath.Join(dir, "items.yaml"), custom, FilePermissions); err != nil {
		t.Fatal(err)
	}

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	data, _ := os.ReadFile(ItemsFile)
	if string(data) != string(custom) {
		t.Errorf("items file overwritten: %q", data)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/x", filepath.Join(home, "x")},
		{"/abs/x", "/abs/x"},
		{"rel", "rel"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Errorf("ExpandPath(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "xamlrt") {
		t.Errorf("GetConfigDir() = %v, should contain 'xamlrt'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "xamlrt"); got != want {
		t.Errorf("GetConfigDir() = %v, want %v", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("NewConfig().Version = %v, want %v", cfg.Version, CurrentVersion)
	}
	if cfg.Methods == nil {
		t.Error("NewConfig().Methods should not be nil")
	}
	p := cfg.Preferences
	if p == nil {
		t.Fatal("NewConfig().Preferences should not be nil")
	}
	if p.Listen != DefaultListen {
		t.Errorf("Listen = %v, want %v", p.Listen, DefaultListen)
	}
	if !p.AnnounceEnabled() {
		t.Error("Announce should be enabled by default")
	}
	if p.DefaultWidth != 320 || p.DefaultHeight != 200 {
		t.Errorf("default size = %dx%d, want 320x200", p.DefaultWidth, p.DefaultHeight)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	announce := false
	cfg := NewConfig()
	cfg.Preferences.LogLevel = "debug"
	cfg.Preferences.Announce = &announce
	cfg.SetMethod("OnGo", &Action{Kind: ActionSet, Target: "node-2", Key: "Text", Value: "Went"})
	cfg.SetMethod("OnQuit", &Action{Kind: ActionQuit})

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if loaded.Preferences.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", loaded.Preferences.LogLevel)
	}
	if loaded.Preferences.AnnounceEnabled() {
		t.Error("Announce should round-trip as false")
	}
	m := loaded.GetMethod("OnGo")
	if m == nil {
		t.Fatal("OnGo should exist in loaded config")
	}
	if m.Kind != ActionSet || m.Target != "node-2" || m.Key != "Text" || m.Value != "Went" {
		t.Errorf("OnGo = %+v", m)
	}
	if loaded.GetMethod("OnQuit") == nil {
		t.Error("OnQuit should exist in loaded config")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "version: 1\npreferences:\n  listen: 0.0.0.0:9000\n  theme:\n    accent: \"205\"\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	p := cfg.Preferences
	if p.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %v, want 0.0.0.0:9000", p.Listen)
	}
	if p.InstanceName != DefaultInstanceName || !p.AnnounceEnabled() {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.Theme.Accent != "205" || p.Theme.Muted != DefaultMuted {
		t.Errorf("Theme = %+v", p.Theme)
	}
	if cfg.Methods == nil {
		t.Error("Methods should be initialized")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "version: [1", "failed to parse"},
		{"wrong version", "version: 2\n", "unsupported config version"},
		{"unknown action", "version: 1\nmethods:\n  OnGo:\n    action: explode\n", "unknown action"},
		{"set without target", "version: 1\nmethods:\n  OnGo:\n    action: set\n    key: Text\n", "requires target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFrom() on a missing file should fail")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	cfg, err := loadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %v, want %v", cfg.Version, CurrentVersion)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	got, err := CreateDefaultConfig(path, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("path = %v, want %v", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# xamlrt Configuration File") {
		t.Error("config file should start with the header comment")
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	for _, name := range []string{"OnGo", "OnRename", "OnQuit"} {
		if cfg.GetMethod(name) == nil {
			t.Errorf("example method %s missing", name)
		}
	}

	if _, err := CreateDefaultConfig(path, false); err == nil {
		t.Error("CreateDefaultConfig() should refuse to overwrite without force")
	}
	if _, err := CreateDefaultConfig(path, true); err != nil {
		t.Errorf("CreateDefaultConfig(force) error = %v", err)
	}
}

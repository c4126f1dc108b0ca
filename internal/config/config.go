package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "xamlrt"
	configFile = "config.yaml"
)

var (
	// Global config instance (loaded lazily)
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/xamlrt or $HOME/.config/xamlrt
//   - macOS: $HOME/.config/xamlrt (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\xamlrt
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load loads the configuration from the default path.
// If the file doesn't exist, returns a new default config.
// Thread-safe - multiple calls will return the same instance.
func Load() (*Config, error) {
	globalConfigOnce.Do(func() {
		var path string
		path, globalConfigErr = GetConfigPath()
		if globalConfigErr != nil {
			globalConfigErr = fmt.Errorf("failed to get config path: %w", globalConfigErr)
			return
		}
		globalConfig, globalConfigErr = loadFromFile(path)
	})
	return globalConfig, globalConfigErr
}

// LoadFrom loads the configuration from an explicit path. Unlike Load, a
// missing file is an error.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return loadFromFile(path)
}

// Reload reloads the global configuration from disk, discarding any
// in-memory changes.
func Reload() (*Config, error) {
	fileMutex.Lock()
	globalConfigOnce = sync.Once{}
	fileMutex.Unlock()
	return Load()
}

// loadFromFile performs the actual file loading.
func loadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// marshalConfig renders cfg with the file header.
func marshalConfig(cfg *Config, path string) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# xamlrt Configuration File
# Preferences for the markup runtime and the methods that markup event
# attributes (Click="OnGo") are bound to.
#
# Location: ` + path + `

`)
	return append(header, data...), nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshalConfig(c, path)
	if err != nil {
		return err
	}

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a configuration with example method bindings
// to path, or to the default location when path is empty. An existing file
// is left alone unless force is set.
func CreateDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return "", fmt.Errorf("failed to get config path: %w", err)
		}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	cfg := NewConfig()
	cfg.Preferences.LogLevel = "info"
	cfg.SetMethod("OnGo", &Action{Kind: ActionLog, Message: "Go pressed"})
	cfg.SetMethod("OnRename", &Action{
		Kind:   ActionSet,
		Target: "node-2",
		Key:    "Text",
		Value:  "Renamed",
	})
	cfg.SetMethod("OnQuit", &Action{Kind: ActionQuit})

	return path, cfg.SaveTo(path)
}

// Package config handles configuration loading and validation for taskr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Themes.
const (
	ThemeTokyoNight = "tokyo-night"
	ThemeGruvbox    = "gruvbox"
)

// Config holds the application configuration.
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Database      DatabaseConfig      `yaml:"database"`
	Notifications NotificationsConfig `yaml:"notifications"`
	TUI           TUIConfig           `yaml:"tui"`
	DataDir       string              `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the task list is mirrored.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, sqlite, badger or memory
	Key     string `yaml:"key"`     // slot key for key-value backends
}

// DatabaseConfig tunes the sqlite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// NotificationsConfig controls toast expiry.
type NotificationsConfig struct {
	FadeAfter  time.Duration `yaml:"fade_after"`
	ClearAfter time.Duration `yaml:"clear_after"`
}

// TUIConfig holds interactive view settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "tasks",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
		Notifications: NotificationsConfig{
			FadeAfter:  2700 * time.Millisecond,
			ClearAfter: 3000 * time.Millisecond,
		},
		TUI: TUIConfig{
			Theme: ThemeTokyoNight,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Notifications.FadeAfter == 0 {
		c.Notifications.FadeAfter = defaults.Notifications.FadeAfter
	}
	if c.Notifications.ClearAfter == 0 {
		c.Notifications.ClearAfter = defaults.Notifications.ClearAfter
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// TasksFile returns the path of the JSON file used by the file backend.
func (c *Config) TasksFile() string {
	return filepath.Join(c.DataDir, "tasks.json")
}

// BadgerDir returns the directory used by the badger backend.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.DataDir, "badger")
}

// LogFile returns the default log file location.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "taskr.log")
}

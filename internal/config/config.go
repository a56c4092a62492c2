package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tmux-layout configuration
type Config struct {
	// SessionFile is where the layout is saved (default: ~/.tmux-session)
	SessionFile   string             `mapstructure:"session_file"`
	Backup        BackupConfig       `mapstructure:"backup"`
	Tmux          TmuxConfig         `mapstructure:"tmux"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Output        OutputConfig       `mapstructure:"output"`
}

// BackupConfig controls backups of the session file
type BackupConfig struct {
	// Keep is the number of timestamped backups retained after each save (default: 2)
	Keep int `mapstructure:"keep"`
}

// TmuxConfig controls how tmux is invoked
type TmuxConfig struct {
	// Binary is the tmux executable (default: "tmux")
	Binary string `mapstructure:"binary"`
	// Socket is a tmux socket name passed as -L; empty uses the default server
	Socket string `mapstructure:"socket"`
	// CommandTimeoutMs bounds each tmux invocation in milliseconds (default: 5000)
	CommandTimeoutMs int `mapstructure:"command_timeout_ms"`
}

// NotificationConfig controls tmux status-line messages after save and restore
type NotificationConfig struct {
	// Enabled shows "saved sessions"/"restored sessions" via display-message (default: true)
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level"`
	// File is a log file path; empty logs to stderr
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// OutputConfig controls human-readable command output
type OutputConfig struct {
	// Color is "auto" (color when stdout is a terminal), "always", or "never" (default: "auto")
	Color string `mapstructure:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		SessionFile: "~/.tmux-session",
		Backup: BackupConfig{
			Keep: 2,
		},
		Tmux: TmuxConfig{
			Binary:           "tmux",
			Socket:           "",
			CommandTimeoutMs: 5000,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			File:       "",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// CommandTimeout returns the tmux command timeout as a time.Duration
func (c *TmuxConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMs) * time.Millisecond
}

// ResolveSessionFile returns the session file path with ~ expanded.
func (c *Config) ResolveSessionFile() string {
	return ExpandPath(c.SessionFile)
}

// ResolveLogFile returns the log file path with ~ expanded, or "" for stderr.
func (c *LoggingConfig) ResolveLogFile() string {
	if c.File == "" {
		return ""
	}
	return ExpandPath(c.File)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("session_file", defaults.SessionFile)

	// Backup defaults
	viper.SetDefault("backup.keep", defaults.Backup.Keep)

	// Tmux defaults
	viper.SetDefault("tmux.binary", defaults.Tmux.Binary)
	viper.SetDefault("tmux.socket", defaults.Tmux.Socket)
	viper.SetDefault("tmux.command_timeout_ms", defaults.Tmux.CommandTimeoutMs)

	// Notification defaults
	viper.SetDefault("notifications.enabled", defaults.Notifications.Enabled)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Output defaults
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded values do not validate.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tmux-layout")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tmux-layout"
	}
	return filepath.Join(home, ".config", "tmux-layout")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

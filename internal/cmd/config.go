package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/tmux-layout/internal/config"
	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify tmux-layout configuration",
	Long: `View or modify tmux-layout configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  tmux-layout config set backup.keep 5
  tmux-layout config set tmux.socket work
  tmux-layout config set notifications.enabled false

Valid keys:
  session_file             - Where the layout is saved
  backup.keep              - Backups retained after each save
  tmux.binary              - tmux executable
  tmux.socket              - tmux socket name (-L)
  tmux.command_timeout_ms  - Timeout for each tmux call
  notifications.enabled    - Status-line message after save/restore (true/false)
  logging.level            - debug, info, warn, error
  logging.file             - Log file (empty logs to stderr)
  logging.max_size_mb      - Log size before rotation
  logging.max_backups      - Rotated log files kept
  output.color             - auto, always, never`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/tmux-layout/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// configKeys maps every settable key to its value type.
var configKeys = map[string]string{
	"session_file":            "string",
	"backup.keep":             "int",
	"tmux.binary":             "string",
	"tmux.socket":             "string",
	"tmux.command_timeout_ms": "int",
	"notifications.enabled":   "bool",
	"logging.level":           "string",
	"logging.file":            "string",
	"logging.max_size_mb":     "int",
	"logging.max_backups":     "int",
	"output.color":            "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" && configErr == nil {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}

	settings := viper.AllSettings()
	delete(settings, "config")

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'tmux-layout config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = b
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = n
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" || configErr != nil {
		configFile = config.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigTemplate is written by "config init".
const defaultConfigTemplate = `# tmux-layout configuration

# Where the layout is saved. "~" is expanded.
session_file: ~/.tmux-session

backup:
  # Timestamped backups of the session file kept after each save
  keep: 2

tmux:
  # tmux executable
  binary: tmux
  # Socket name passed as -L; empty uses the default server
  socket: ""
  # Timeout for each tmux call in milliseconds
  command_timeout_ms: 5000

notifications:
  # Show "saved sessions" / "restored sessions" in the tmux status line
  enabled: true

logging:
  # Options: debug, info, warn, error
  level: warn
  # Log file; empty logs to stderr
  file: ""
  max_size_mb: 5
  max_backups: 3

output:
  # Options: auto, always, never
  color: auto
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'tmux-layout config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" && configErr == nil {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, "TMUX_LAYOUT_"+strings.ToUpper(strings.ReplaceAll(k, ".", "_")))
	}
	slices.Sort(keys)
	fmt.Fprintf(out, "\nEnvironment variables:\n  %s\n", strings.Join(keys, "\n  "))
	return nil
}

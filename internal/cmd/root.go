package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tmux-layout/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// unknownCommandMessage is printed, with a zero exit status, for input that
// names no command.
const unknownCommandMessage = "no known command. Use -h/--help for usage."

var rootCmd = &cobra.Command{
	Use:   "tmux-layout",
	Short: "Save and restore tmux sessions, windows and working directories",
	Long: `tmux-layout records every tmux window together with its session and
current directory in a plain text session file, and later recreates whatever
is missing from the running server.

Restore is additive: windows that already exist are left alone and nothing
is ever closed. Every save keeps timestamped backups of the previous file.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var (
	// dryRun is threaded into save and restore; it is never consulted elsewhere.
	dryRun bool

	// configErr records a config file that exists but could not be read.
	configErr error
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/tmux-layout/config.yaml)")
	rootCmd.PersistentFlags().StringP("session-file", "f", "", "session file (default is ~/.tmux-session)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "show what would happen without touching tmux or the session file")
	bindFlags()
}

// bindFlags connects persistent flags to their configuration keys.
func bindFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("session_file", rootCmd.PersistentFlags().Lookup("session-file"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()
	configErr = nil

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TMUX_LAYOUT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TMUX_LAYOUT_BACKUP_KEEP for backup.keep
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// A missing file in the search path just means defaults apply.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			configErr = fmt.Errorf("reading config file: %w", err)
		}
	}
}

// runRoot handles input that names no subcommand. A bare --dry-run performs
// a dry-run save; anything else prints a hint and succeeds.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && dryRun {
		return runSaveWith(cmd, true)
	}
	fmt.Fprintln(cmd.OutOrStdout(), unknownCommandMessage)
	return nil
}

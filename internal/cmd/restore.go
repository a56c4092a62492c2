package cmd

import (
	"github.com/Iron-Ham/tmux-layout/internal/restore"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recreate saved sessions and windows that are missing",
	Long: `Compare the session file with the running tmux server and create every
saved window that is missing. A missing session is created with the saved
window as its first window. Existing sessions and windows are never changed
or closed, so running restore twice is harmless.

With --dry-run the planned creations are printed and tmux is only read.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "restore", dryRun)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	var mux restore.Multiplexer = a.mux
	if dryRun {
		mux = restore.NewDryRun(a.mux)
	}

	result, err := restore.NewEngine(mux, a.logger).Restore(ctx, a.store)
	if err != nil {
		// Creations made before the failure stay in place; show them.
		if !result.Empty() {
			a.printer.Restore(result, dryRun)
		}
		a.logger.Error("restore failed", "created", len(result.Actions), "error", err.Error())
		return err
	}

	a.printer.Restore(result, dryRun)
	restore.NotifyBestEffort(ctx, a.notifier, restore.MessageRestored, a.logger)
	return nil
}

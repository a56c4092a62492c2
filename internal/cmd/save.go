package cmd

import (
	"github.com/Iron-Ham/tmux-layout/internal/layout"
	"github.com/Iron-Ham/tmux-layout/internal/restore"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the live tmux layout to the session file",
	Long: `Record every window of every tmux session, with its current directory,
in the session file. The previous file is kept as a timestamped backup next
to it; only the most recent backups are retained (backup.keep).

With --dry-run the layout is printed and nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	return runSaveWith(cmd, dryRun)
}

func runSaveWith(cmd *cobra.Command, dry bool) error {
	a, err := newApp(cmd, "save", dry)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	if dry {
		live, err := layout.ReadLive(ctx, a.mux)
		if err != nil {
			return err
		}
		a.printer.SavePlan(a.store.Path, live)
		return nil
	}

	saved, err := layout.Save(ctx, a.mux, a.store)
	if err != nil {
		return err
	}
	a.printer.Saved(a.store.Path, saved)
	restore.NotifyBestEffort(ctx, a.notifier, restore.MessageSaved, a.logger)
	return nil
}

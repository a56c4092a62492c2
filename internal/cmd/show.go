package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tmux-layout/internal/layout"
	"github.com/Iron-Ham/tmux-layout/internal/report"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved layout",
	Long: `Print the layout stored in the session file, grouped by session.

Examples:
  # Saved layout as text
  tmux-layout show

  # Saved layout as YAML
  tmux-layout show --output yaml

  # What tmux is running right now
  tmux-layout show --live

  # Backups of the session file, newest first
  tmux-layout show --backups`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var (
	showOutput  string
	showLive    bool
	showBackups bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "text", "output format: text or yaml")
	showCmd.Flags().BoolVar(&showLive, "live", false, "show the running tmux layout instead of the saved one")
	showCmd.Flags().BoolVar(&showBackups, "backups", false, "list backups of the session file")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showOutput != "text" && showOutput != "yaml" {
		return fmt.Errorf("invalid output format %q: must be text or yaml", showOutput)
	}

	a, err := newApp(cmd, "show", true)
	if err != nil {
		return err
	}
	defer a.close()

	if showBackups {
		backups, err := a.store.Backups()
		if err != nil {
			return err
		}
		a.printer.Backups(backups)
		return nil
	}

	var (
		topo   topology.Topology
		source = a.store.Path
	)
	if showLive {
		topo, err = layout.ReadLive(cmd.Context(), a.mux)
		source = "live"
	} else {
		topo, err = a.store.ReadSaved()
	}
	if err != nil {
		return err
	}

	if showOutput == "yaml" {
		return report.WriteYAML(cmd.OutOrStdout(), source, topo)
	}
	a.printer.Topology(source, topo)
	return nil
}
